// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorconv

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is refcounted backing storage. An input buffer holds one
// reference; every zero-copy view assembled from it holds another, so
// the storage outlives the input buffer for as long as any output
// built from it survives.
type Memory struct {
	mu   sync.Mutex
	data []byte
	refs int
	maps int
}

func newMemory(data []byte) *Memory {
	return &Memory{data: data, refs: 1}
}

func (m *Memory) ref() {
	m.mu.Lock()
	m.refs++
	m.mu.Unlock()
}

func (m *Memory) unref() {
	m.mu.Lock()
	if m.refs > 0 {
		m.refs--
		if m.refs == 0 {
			m.data = nil
		}
	}
	m.mu.Unlock()
}

func (m *Memory) mapRead() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refs == 0 {
		return nil, fmt.Errorf("storage already released")
	}
	m.maps++
	return m.data, nil
}

func (m *Memory) unmap() {
	m.mu.Lock()
	if m.maps > 0 {
		m.maps--
	}
	m.mu.Unlock()
}

func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// View is a zero-copy reference to a byte range of a Memory. It
// aliases the backing storage rather than duplicating it.
type View struct {
	mem    *Memory
	off    int
	length int
}

// Offset returns the view's byte offset within the backing storage.
func (v View) Offset() int { return v.off }

// Len returns the view's length in bytes.
func (v View) Len() int { return v.length }

// Bytes returns the aliased byte range, or nil if the backing storage
// has been released. Callers must treat the slice as read-only.
func (v View) Bytes() []byte {
	if v.mem == nil {
		return nil
	}
	v.mem.mu.Lock()
	defer v.mem.mu.Unlock()
	if v.mem.data == nil {
		return nil
	}
	return v.mem.data[v.off : v.off+v.length]
}

// Meta is a buffer's structural metadata. Decode copies it by value
// from the input buffer to the output buffer; it never aliases it.
type Meta struct {
	// Timestamp is the frame's capture time.
	Timestamp time.Time
	// Duration is the frame's presentation duration, zero if unknown.
	Duration time.Duration
	// Seq is the frame's sequence number within the stream.
	Seq uint64
	// TraceID correlates the frame across pipeline stages.
	TraceID string
}

// Buffer is one frame's worth of bytes flowing through the pipeline.
//
// An input buffer wraps a single contiguous backing storage. An
// output buffer produced by Decode instead carries an ordered list of
// views into the input's storage. Buffers are not safe for concurrent
// mutation; the pipeline hands each instance to one stage at a time.
type Buffer struct {
	mem   *Memory
	views []View
	total int

	// Meta travels with the buffer and is copied, not aliased, across
	// conversions.
	Meta Meta

	released bool
}

// NewBuffer wraps data in a fresh input buffer. The buffer takes
// ownership of data: the caller must not modify it afterwards. The
// capture timestamp and a new trace ID are assigned here, so every
// frame is correlatable from the moment it enters the pipeline.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{
		mem: newMemory(data),
		Meta: Meta{
			Timestamp: time.Now(),
			TraceID:   uuid.NewString(),
		},
	}
}

// Len returns the byte length of the buffer's backing storage, or the
// summed view length for an output buffer.
func (b *Buffer) Len() int {
	if b.mem != nil {
		return b.mem.size()
	}
	return b.total
}

// Map acquires a read-only mapping of the buffer's backing storage.
// Every successful Map must be paired with an Unmap.
func (b *Buffer) Map() ([]byte, error) {
	if b == nil || b.mem == nil {
		return nil, fmt.Errorf("%w: no backing storage", ErrNoInput)
	}
	data, err := b.mem.mapRead()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoInput, err)
	}
	return data, nil
}

// Unmap releases a mapping previously acquired with Map.
func (b *Buffer) Unmap() {
	if b != nil && b.mem != nil {
		b.mem.unmap()
	}
}

// Views returns the buffer's zero-copy views in declaration order.
// It is empty for input buffers.
func (b *Buffer) Views() []View { return b.views }

// TotalSize returns the summed byte length of all views. Hosts may
// use it to size downstream allocations.
func (b *Buffer) TotalSize() int { return b.total }

// Release drops the buffer's references to its backing storage. The
// storage itself is reclaimed once every buffer and view referencing
// it has been released. Release is idempotent.
func (b *Buffer) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	if b.mem != nil {
		b.mem.unref()
	}
	for _, v := range b.views {
		v.mem.unref()
	}
	b.views = nil
}
