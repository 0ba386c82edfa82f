// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"github.com/nervestream/tensorconv/elemtype"
)

// Range describes the "[Off, Off+Len)" byte range of a tensor's
// payload within the container's backing buffer.
type Range struct {
	// Off is the byte index of the payload's first byte.
	Off int
	// Len is the payload length in bytes.
	Len int
}

// End returns the exclusive upper bound of the range.
func (r Range) End() int { return r.Off + r.Len }

// Record is one tensor's descriptor inside a container: its optional
// name, element type, fixed-rank shape, and payload byte range.
//
// The payload itself is not held here; callers slice their own buffer
// with Payload when they need the bytes.
type Record struct {
	// Name of the tensor. Empty means anonymous.
	Name string
	// Type of the tensor's elements.
	Type elemtype.ElementType
	// Shape of the tensor, padded with 1 past its true rank.
	Shape [RankLimit]uint32
	// Payload is the tensor's byte range within the backing buffer.
	Payload Range
}
