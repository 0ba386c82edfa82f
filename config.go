// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorconv

import (
	"github.com/nervestream/tensorconv/elemtype"
)

// TensorInfo describes one tensor of the negotiated stream.
type TensorInfo struct {
	// Name of the tensor. Empty means anonymous.
	Name string
	// Type of the tensor's elements.
	Type elemtype.ElementType
	// Shape of the tensor, padded with 1 past its true rank.
	Shape [RankLimit]uint32
}

// Config is the negotiated tensor-stream configuration shared between
// the converter and its host. Decode refreshes it in place on every
// successful call; the host reads it back afterwards.
//
// A Config instance must not be shared between concurrent Decode
// calls without external serialization.
type Config struct {
	// NumTensors is the number of valid leading entries in Tensors.
	NumTensors uint32
	// Rate is the stream's frame rate. (0, 1) means unknown.
	Rate Fraction
	// Tensors holds per-tensor descriptors; entries past NumTensors
	// are zero.
	Tensors [TensorLimit]TensorInfo
}

// StreamCaps carries the input media-type parameters handed over by
// the host after capability negotiation.
type StreamCaps struct {
	// MediaType is the negotiated media-type descriptor.
	MediaType string
	// Rate is the negotiated frame rate, nil when the caps carry none.
	Rate *Fraction
}
