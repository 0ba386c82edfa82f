// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorconv

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Decoder is the callback surface a stream host binds at plugin load
// time: capability query, provisional configuration, and per-frame
// decoding.
type Decoder interface {
	// Name returns the registry key.
	Name() string
	// QueryAcceptedType returns the accepted media-type descriptor.
	QueryAcceptedType() string
	// BuildInitial produces the pre-first-frame configuration.
	BuildInitial(caps *StreamCaps) (Config, error)
	// Decode converts one input buffer, refreshing cfg in place.
	Decode(in *Buffer, cfg *Config) (*Buffer, error)
}

var registry = struct {
	mu sync.RWMutex
	m  map[string]Decoder
}{m: make(map[string]Decoder)}

// Register binds d under its name. The host's plugin loader calls
// this at load time; there are no registration side effects before
// that point. Registering a nil decoder, an empty name, or a name
// already taken is an error.
func Register(d Decoder) error {
	if d == nil {
		return fmt.Errorf("tensorconv: register nil decoder")
	}
	name := d.Name()
	if name == "" {
		return fmt.Errorf("tensorconv: register decoder with empty name")
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.m[name]; exists {
		return fmt.Errorf("tensorconv: decoder %q already registered", name)
	}
	registry.m[name] = d
	slog.Debug("decoder registered", "name", name)
	return nil
}

// Unregister removes the decoder bound under name, reporting whether
// it was present. The host calls this at plugin unload time.
func Unregister(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.m[name]; !exists {
		return false
	}
	delete(registry.m, name)
	slog.Debug("decoder unregistered", "name", name)
	return true
}

// Lookup returns the decoder bound under name. The boolean flag
// reports whether it was found.
func Lookup(name string) (Decoder, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	d, ok := registry.m[name]
	return d, ok
}

// Names returns the names of all registered decoders, sorted.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.m))
	for name := range registry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
