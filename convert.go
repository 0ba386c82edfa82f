// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorconv

import (
	"fmt"
	"log/slog"

	"github.com/nervestream/tensorconv/container"
	"github.com/nervestream/tensorconv/elemtype"
)

const converterName = "container"

// Converter decodes binary tensor containers into tensor streams. It
// holds no state across calls; concurrent Decode calls on independent
// buffers are safe as long as each call gets its own Config.
type Converter struct {
	log *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger routes the converter's diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// New returns a ready-to-register Converter.
func New(opts ...Option) *Converter {
	c := &Converter{log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the converter's registry key.
func (c *Converter) Name() string { return converterName }

// QueryAcceptedType returns the media-type descriptor this converter
// accepts. The host uses it for stream negotiation before any data
// flows.
func (c *Converter) QueryAcceptedType() string { return acceptedCaps }

// BuildInitial produces the placeholder configuration used by the
// host until the first frame arrives: a single anonymous uint8 tensor
// of shape [1,1,1,1]. The frame rate is taken from caps when present,
// (0, 1) otherwise. It fails only when caps is nil.
func (c *Converter) BuildInitial(caps *StreamCaps) (Config, error) {
	if caps == nil {
		return Config{}, ErrNilCaps
	}
	cfg := Config{
		NumTensors: 1,
		Rate:       Fraction{Num: 0, Den: 1},
	}
	cfg.Tensors[0] = TensorInfo{
		Type:  elemtype.Uint8,
		Shape: [RankLimit]uint32{1, 1, 1, 1},
	}
	if caps.Rate != nil {
		cfg.Rate = *caps.Rate
	}
	return cfg, nil
}

// Decode converts one container buffer into an output buffer of
// zero-copy tensor views, refreshing cfg in place.
//
// The views alias in's backing storage; they keep it alive until the
// returned buffer is released. On failure no output buffer is
// produced, the frame is simply lost and cfg may hold a partial
// update.
func (c *Converter) Decode(in *Buffer, cfg *Config) (*Buffer, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	data, err := in.Map()
	if err != nil {
		c.log.Error("cannot map input buffer", "converter", converterName, "err", err)
		return nil, err
	}
	defer in.Unmap()

	cont, err := container.Parse(data)
	if err != nil {
		c.log.Error("container rejected", "converter", converterName, "err", err)
		return nil, err
	}

	if cont.Count() > TensorLimit {
		c.log.Error("tensor count over limit",
			"converter", converterName, "count", cont.Count(), "limit", TensorLimit)
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyTensors, cont.Count(), TensorLimit)
	}

	cfg.NumTensors = cont.Count()
	cfg.Rate = cont.Rate()

	records, err := cont.Records()
	if err != nil {
		c.log.Error("container rejected", "converter", converterName, "err", err)
		return nil, err
	}

	out := newAssembler(in, len(records))
	for i := range records {
		rec := &records[i]
		cfg.Tensors[i] = TensorInfo{
			Name:  rec.Name,
			Type:  rec.Type,
			Shape: rec.Shape,
		}

		// The reader already checked these ranges, but they are about
		// to become live aliases of the host's storage: re-derive the
		// bounds from the integers actually handed downstream.
		if rec.Payload.Off < cont.HeaderSize() || rec.Payload.End() > len(data) {
			out.discard()
			c.log.Error("payload range out of bounds",
				"converter", converterName, "tensor", i,
				"offset", rec.Payload.Off, "length", rec.Payload.Len, "buffer", len(data))
			return nil, fmt.Errorf("%w: tensor %d range [%d,%d) in %d-byte buffer",
				ErrPayloadBounds, i, rec.Payload.Off, rec.Payload.End(), len(data))
		}
		out.appendView(rec.Payload)
	}
	for i := int(cfg.NumTensors); i < TensorLimit; i++ {
		cfg.Tensors[i] = TensorInfo{}
	}

	return out.finish(in), nil
}
