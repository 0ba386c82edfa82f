// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"encoding/binary"
	"fmt"

	"github.com/nervestream/tensorconv/elemtype"
)

// Parse validates and decodes the fixed header of a container,
// returning a Container view over buf.
//
// Parse reads only the header; the tensor records are walked later by
// Records. It fails if the buffer is too short to hold a header, if
// the magic signature is not recognized, or if the frame rate
// denominator is zero. Parse is stateless and safe to call
// concurrently on independent buffers.
func Parse(buf []byte) (Container, error) {
	if len(buf) < headerSize {
		return Container{}, fmt.Errorf("%w: buffer too short for header: %d bytes", ErrMalformed, len(buf))
	}
	if string(buf[:4]) != Magic {
		return Container{}, fmt.Errorf("%w: unrecognized magic %q", ErrMalformed, buf[:4])
	}
	rate := Fraction{
		Num: binary.LittleEndian.Uint32(buf[8:12]),
		Den: binary.LittleEndian.Uint32(buf[12:16]),
	}
	if rate.Den == 0 {
		return Container{}, fmt.Errorf("%w: zero frame rate denominator", ErrMalformed)
	}
	return Container{
		buf:   buf,
		count: binary.LittleEndian.Uint32(buf[4:8]),
		rate:  rate,
	}, nil
}

// Records walks the container body and returns its tensor records in
// declaration order. Every payload range is checked against the
// backing buffer's bounds before being reported; the payload bytes
// are never copied.
func (c Container) Records() ([]Record, error) {
	count := int(c.count)
	if count == 0 {
		return nil, nil
	}

	// Each record occupies at least minRecordSize bytes, so a count
	// the body cannot possibly hold is rejected before allocating.
	if body := len(c.buf) - headerSize; count > body/minRecordSize {
		return nil, fmt.Errorf("%w: %d records cannot fit in %d body bytes", ErrMalformed, count, body)
	}

	cur := cursor{buf: c.buf, pos: headerSize}
	records := make([]Record, count)
	for i := range records {
		if err := cur.readRecord(&records[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}

// cursor tracks a read position while walking the container body.
// All offsets are derived from the declared layout as integers, never
// from pointer arithmetic.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) readRecord(rec *Record) error {
	nameLen, err := c.uint16()
	if err != nil {
		return err
	}
	name, err := c.take(int(nameLen))
	if err != nil {
		return err
	}
	rec.Name = string(name)

	tag, err := c.uint8()
	if err != nil {
		return err
	}
	rec.Type = elemtype.ElementType(tag)
	if err := rec.Type.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for j := range rec.Shape {
		if rec.Shape[j], err = c.uint32(); err != nil {
			return err
		}
	}

	payLen, err := c.uint32()
	if err != nil {
		return err
	}
	off := c.pos
	if _, err := c.take(int(payLen)); err != nil {
		return err
	}
	rec.Payload = Range{Off: off, Len: int(payLen)}
	return nil
}

// take returns the next n bytes and advances the cursor, failing with
// ErrBounds if the buffer does not hold them.
func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, buffer is %d", ErrBounds, n, c.pos, len(c.buf))
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) uint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
