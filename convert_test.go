// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorconv

import (
	"encoding/binary"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nervestream/tensorconv/container"
	"github.com/nervestream/tensorconv/elemtype"
)

type testTensor struct {
	name  string
	typ   elemtype.ElementType
	shape [RankLimit]uint32
	data  []byte
}

func encodeContainer(rate Fraction, tensors ...testTensor) []byte {
	buf := []byte(container.Magic)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tensors)))
	buf = binary.LittleEndian.AppendUint32(buf, rate.Num)
	buf = binary.LittleEndian.AppendUint32(buf, rate.Den)
	for _, t := range tensors {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(t.name)))
		buf = append(buf, t.name...)
		buf = append(buf, byte(t.typ))
		for _, d := range t.shape {
			buf = binary.LittleEndian.AppendUint32(buf, d)
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.data)))
		buf = append(buf, t.data...)
	}
	return buf
}

func TestDecode(t *testing.T) {
	conv := New()

	t.Run("concrete two-tensor scenario", func(t *testing.T) {
		in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1},
			testTensor{name: "a", typ: elemtype.Uint8, shape: [RankLimit]uint32{1, 1, 1, 1}, data: []byte{1, 2, 3, 4}},
			testTensor{typ: elemtype.Float32, shape: [RankLimit]uint32{1, 1, 1, 1}, data: []byte{5, 6, 7, 8}},
		))

		var cfg Config
		out, err := conv.Decode(in, &cfg)
		require.NoError(t, err)

		assert.Equal(t, uint32(2), cfg.NumTensors)
		assert.Equal(t, Fraction{Num: 30, Den: 1}, cfg.Rate)
		assert.Equal(t, TensorInfo{Name: "a", Type: elemtype.Uint8, Shape: [RankLimit]uint32{1, 1, 1, 1}}, cfg.Tensors[0])
		assert.Equal(t, TensorInfo{Type: elemtype.Float32, Shape: [RankLimit]uint32{1, 1, 1, 1}}, cfg.Tensors[1])

		views := out.Views()
		require.Len(t, views, 2)
		assert.Equal(t, []byte{1, 2, 3, 4}, views[0].Bytes())
		assert.Equal(t, []byte{5, 6, 7, 8}, views[1].Bytes())
		assert.Equal(t, 8, out.TotalSize())
	})

	t.Run("round-trip shape fidelity", func(t *testing.T) {
		tensors := []testTensor{
			{name: "input", typ: elemtype.Int16, shape: [RankLimit]uint32{3, 224, 224, 1}, data: make([]byte, 6)},
			{name: "boxes", typ: elemtype.Float32, shape: [RankLimit]uint32{4, 100, 1, 1}, data: make([]byte, 16)},
			{typ: elemtype.Uint64, shape: [RankLimit]uint32{1, 1, 1, 1}, data: make([]byte, 8)},
		}
		in := NewBuffer(encodeContainer(Fraction{Num: 25, Den: 2}, tensors...))

		var cfg Config
		_, err := conv.Decode(in, &cfg)
		require.NoError(t, err)

		require.Equal(t, uint32(len(tensors)), cfg.NumTensors)
		assert.Equal(t, Fraction{Num: 25, Den: 2}, cfg.Rate)
		for i, want := range tensors {
			assert.Equal(t, want.name, cfg.Tensors[i].Name, "tensor %d", i)
			assert.Equal(t, want.typ, cfg.Tensors[i].Type, "tensor %d", i)
			assert.Equal(t, want.shape, cfg.Tensors[i].Shape, "tensor %d", i)
		}
	})

	t.Run("zero tensors", func(t *testing.T) {
		in := NewBuffer(encodeContainer(Fraction{Num: 0, Den: 1}))

		var cfg Config
		out, err := conv.Decode(in, &cfg)
		require.NoError(t, err)
		assert.Equal(t, uint32(0), cfg.NumTensors)
		assert.Empty(t, out.Views())
		assert.Equal(t, 0, out.TotalSize())
	})

	t.Run("trailing config entries are zeroed", func(t *testing.T) {
		var cfg Config
		for i := range cfg.Tensors {
			cfg.Tensors[i] = TensorInfo{Name: "stale", Type: elemtype.Float64}
		}

		in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1},
			testTensor{name: "only", typ: elemtype.Uint8, shape: [RankLimit]uint32{1, 1, 1, 1}, data: []byte{0}},
		))
		_, err := conv.Decode(in, &cfg)
		require.NoError(t, err)

		assert.Equal(t, "only", cfg.Tensors[0].Name)
		for i := 1; i < TensorLimit; i++ {
			assert.Equal(t, TensorInfo{}, cfg.Tensors[i], "tensor %d", i)
		}
	})

	t.Run("byte conservation", func(t *testing.T) {
		tensors := make([]testTensor, 5)
		wantTotal := 0
		for i := range tensors {
			data := make([]byte, (i+1)*3)
			for j := range data {
				data[j] = byte(i*31 + j)
			}
			tensors[i] = testTensor{
				name:  fmt.Sprintf("t%d", i),
				typ:   elemtype.Uint8,
				shape: [RankLimit]uint32{uint32(len(data)), 1, 1, 1},
				data:  data,
			}
			wantTotal += len(data)
		}

		in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1}, tensors...))
		var cfg Config
		out, err := conv.Decode(in, &cfg)
		require.NoError(t, err)

		gotTotal := 0
		for i, v := range out.Views() {
			gotTotal += v.Len()
			assert.Equal(t, tensors[i].data, v.Bytes(), "tensor %d", i)
		}
		assert.Equal(t, wantTotal, gotTotal)
		assert.Equal(t, wantTotal, out.TotalSize())
	})

	t.Run("views alias the input storage", func(t *testing.T) {
		raw := encodeContainer(Fraction{Num: 30, Den: 1},
			testTensor{name: "a", typ: elemtype.Uint8, shape: [RankLimit]uint32{4, 1, 1, 1}, data: []byte{1, 2, 3, 4}},
		)
		in := NewBuffer(raw)

		var cfg Config
		out, err := conv.Decode(in, &cfg)
		require.NoError(t, err)

		view := out.Views()[0]
		raw[view.Offset()] = 99
		assert.Equal(t, []byte{99, 2, 3, 4}, view.Bytes())
	})

	t.Run("idempotence", func(t *testing.T) {
		in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1},
			testTensor{name: "a", typ: elemtype.Int32, shape: [RankLimit]uint32{2, 2, 1, 1}, data: make([]byte, 16)},
		))

		var cfg1, cfg2 Config
		out1, err := conv.Decode(in, &cfg1)
		require.NoError(t, err)
		out2, err := conv.Decode(in, &cfg2)
		require.NoError(t, err)

		assert.Equal(t, cfg1, cfg2)
		require.Len(t, out2.Views(), len(out1.Views()))
		for i := range out1.Views() {
			assert.Equal(t, out1.Views()[i].Offset(), out2.Views()[i].Offset())
			assert.Equal(t, out1.Views()[i].Len(), out2.Views()[i].Len())
		}
		assert.Equal(t, out1.TotalSize(), out2.TotalSize())
	})

	t.Run("metadata is copied, not aliased", func(t *testing.T) {
		in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1}))
		in.Meta.Timestamp = time.Unix(1700000000, 0)
		in.Meta.Duration = 33 * time.Millisecond
		in.Meta.Seq = 42
		in.Meta.TraceID = "trace-42"

		var cfg Config
		out, err := conv.Decode(in, &cfg)
		require.NoError(t, err)
		assert.Equal(t, in.Meta, out.Meta)

		in.Meta.Seq = 43
		assert.Equal(t, uint64(42), out.Meta.Seq)
	})
}

func TestDecode_TensorLimit(t *testing.T) {
	conv := New()

	makeTensors := func(n int) []testTensor {
		tensors := make([]testTensor, n)
		for i := range tensors {
			tensors[i] = testTensor{
				typ:   elemtype.Uint8,
				shape: [RankLimit]uint32{1, 1, 1, 1},
				data:  []byte{byte(i)},
			}
		}
		return tensors
	}

	t.Run("at the limit", func(t *testing.T) {
		in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1}, makeTensors(TensorLimit)...))

		var cfg Config
		out, err := conv.Decode(in, &cfg)
		require.NoError(t, err)
		assert.Equal(t, uint32(TensorLimit), cfg.NumTensors)
		assert.Len(t, out.Views(), TensorLimit)
	})

	t.Run("over the limit", func(t *testing.T) {
		in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1}, makeTensors(TensorLimit+1)...))

		var cfg Config
		out, err := conv.Decode(in, &cfg)
		assert.ErrorIs(t, err, ErrTooManyTensors)
		assert.Nil(t, out)
	})
}

func TestDecode_Failure(t *testing.T) {
	conv := New()

	t.Run("nil config", func(t *testing.T) {
		in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1}))
		_, err := conv.Decode(in, nil)
		assert.ErrorIs(t, err, ErrNilConfig)
	})

	t.Run("nil input buffer", func(t *testing.T) {
		var cfg Config
		_, err := conv.Decode(nil, &cfg)
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("released input buffer", func(t *testing.T) {
		in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1}))
		in.Release()

		var cfg Config
		_, err := conv.Decode(in, &cfg)
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("malformed container", func(t *testing.T) {
		in := NewBuffer([]byte("not a container"))

		var cfg Config
		_, err := conv.Decode(in, &cfg)
		assert.ErrorIs(t, err, container.ErrMalformed)
	})

	t.Run("payload overruns buffer", func(t *testing.T) {
		raw := encodeContainer(Fraction{Num: 30, Den: 1},
			testTensor{name: "a", typ: elemtype.Uint8, shape: [RankLimit]uint32{4, 1, 1, 1}, data: []byte{1, 2, 3, 4}},
		)
		// Inflate the declared payload length past the buffer's end.
		binary.LittleEndian.PutUint32(raw[len(raw)-8:], 1<<20)

		in := NewBuffer(raw)
		var cfg Config
		out, err := conv.Decode(in, &cfg)
		assert.ErrorIs(t, err, container.ErrBounds)
		assert.Nil(t, out)
	})
}

func TestDecode_ViewLifetime(t *testing.T) {
	conv := New()
	in := NewBuffer(encodeContainer(Fraction{Num: 30, Den: 1},
		testTensor{name: "a", typ: elemtype.Uint8, shape: [RankLimit]uint32{4, 1, 1, 1}, data: []byte{1, 2, 3, 4}},
	))

	var cfg Config
	out, err := conv.Decode(in, &cfg)
	require.NoError(t, err)

	// The input ending does not invalidate the output's views.
	in.Release()
	assert.Equal(t, []byte{1, 2, 3, 4}, out.Views()[0].Bytes())

	// Only once the output is released too is the storage dropped.
	view := out.Views()[0]
	out.Release()
	assert.Nil(t, view.Bytes())
}
