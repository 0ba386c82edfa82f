// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensorconv converts self-describing binary tensor containers
// into negotiated tensor streams.
//
// One call to Decode turns one container buffer into a refreshed
// stream Config plus an output Buffer whose views alias the input's
// backing storage. The container bytes come from an external,
// uncontrolled encoder, so every payload range is validated against
// the buffer's true bounds before a view over it is handed out.
//
// The package holds no state between calls: the host owns the Config
// and the buffers, and serializes calls that share a Config.
package tensorconv

import (
	"github.com/nervestream/tensorconv/container"
)

// TensorLimit is the maximum number of tensors permitted in one
// container. Containers declaring more fail with ErrTooManyTensors.
const TensorLimit = 16

// RankLimit mirrors the container wire format's fixed shape rank.
const RankLimit = container.RankLimit

// Fraction is re-exported from the container package; frame rates move
// between the wire format and the negotiated Config unchanged.
type Fraction = container.Fraction

// MediaType is the media-type descriptor of the binary tensor
// container format, the single input type this converter accepts.
const MediaType = "other/tensor-container"

// acceptedCaps is the full capability string advertised to the host
// during stream negotiation.
const acceptedCaps = MediaType + ", framerate=(fraction)[0/1,2147483647/1]"
