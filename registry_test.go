// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	conv := New()

	require.NoError(t, Register(conv))
	defer Unregister(conv.Name())

	t.Run("lookup", func(t *testing.T) {
		d, ok := Lookup(conv.Name())
		require.True(t, ok)
		assert.Same(t, conv, d)
		assert.Contains(t, Names(), conv.Name())
	})

	t.Run("duplicate registration", func(t *testing.T) {
		assert.ErrorContains(t, Register(New()), "already registered")
	})

	t.Run("unregister", func(t *testing.T) {
		assert.True(t, Unregister(conv.Name()))
		assert.False(t, Unregister(conv.Name()))

		_, ok := Lookup(conv.Name())
		assert.False(t, ok)

		// Re-register so the deferred cleanup has something to remove.
		require.NoError(t, Register(conv))
	})
}

func TestRegister_Invalid(t *testing.T) {
	assert.Error(t, Register(nil))
}

// Converter must satisfy the host-facing callback surface.
var _ Decoder = (*Converter)(nil)
