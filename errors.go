// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorconv

import "errors"

var (
	// ErrTooManyTensors reports a container declaring more tensors
	// than TensorLimit. The records are not walked in this case.
	ErrTooManyTensors = errors.New("tensorconv: tensor count exceeds limit")

	// ErrPayloadBounds reports a tensor payload range falling outside
	// the input buffer.
	ErrPayloadBounds = errors.New("tensorconv: payload range out of bounds")

	// ErrNoInput reports a nil input buffer or a buffer whose backing
	// storage can no longer be mapped.
	ErrNoInput = errors.New("tensorconv: input buffer unavailable")

	// ErrNilConfig reports a missing negotiated-config structure.
	ErrNilConfig = errors.New("tensorconv: nil config")

	// ErrNilCaps reports a missing media-type parameter structure.
	ErrNilCaps = errors.New("tensorconv: nil stream caps")
)
