// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package container implements a zero-copy, read-only view over the
// binary tensor container format.
//
// A container encodes one frame's worth of tensors. All integers are
// little-endian. The layout is:
//
//	header (16 bytes):
//	  [0:4)   magic "TNSC"
//	  [4:8)   tensor count, uint32
//	  [8:12)  frame rate numerator, uint32
//	  [12:16) frame rate denominator, uint32
//	body (count records, back to back):
//	  nameLen  uint16  (0 means anonymous)
//	  name     nameLen bytes
//	  elemType uint8
//	  shape    RankLimit x uint32
//	  payLen   uint32
//	  payload  payLen bytes
//
// Parsing never duplicates payload bytes: every payload is reported as
// a Range of integer offsets into the caller's buffer, recorded from
// the cursor position while walking the declared layout and checked
// against the buffer's true bounds before being returned.
package container

import "errors"

// RankLimit is the fixed number of shape dimensions carried per tensor
// record. Unused trailing ranks are padded with 1 by encoders.
const RankLimit = 4

// Magic is the four-byte signature opening every container.
const Magic = "TNSC"

const (
	headerSize = 16

	// A record with an empty name and an empty payload still carries
	// nameLen, elemType, shape and payLen.
	minRecordSize = 2 + 1 + 4*RankLimit + 4
)

var (
	// ErrMalformed reports a structurally invalid container: truncated
	// header, unrecognized magic, or a record that cannot be decoded.
	ErrMalformed = errors.New("container: malformed")

	// ErrBounds reports a declared byte range falling outside the
	// backing buffer.
	ErrBounds = errors.New("container: range out of bounds")
)

// Fraction is a frame rate expressed as numerator/denominator.
// The pair (0, 1) means "rate unknown".
type Fraction struct {
	Num uint32
	Den uint32
}

// Container is a read-only view of one parsed container. It keeps a
// reference to the caller's buffer and owns no bytes of its own; it
// must not outlive the buffer it was parsed from.
type Container struct {
	buf   []byte
	count uint32
	rate  Fraction
}

// Count returns the declared tensor count. The value is reported as
// encoded; callers enforce their own capacity limits before walking
// the records.
func (c Container) Count() uint32 { return c.count }

// Rate returns the container's frame rate pair.
func (c Container) Rate() Fraction { return c.rate }

// HeaderSize returns the byte length of the fixed container header.
func (c Container) HeaderSize() int { return headerSize }
