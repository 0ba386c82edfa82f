// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorconv

import (
	"github.com/nervestream/tensorconv/container"
)

// assembler builds the ordered list of zero-copy views that becomes an
// output buffer. Each appended view takes its own reference on the
// input's backing storage; discard returns them all if the decode
// fails midway, so no half-built output ever escapes.
type assembler struct {
	mem   *Memory
	views []View
	total int
}

func newAssembler(in *Buffer, n int) *assembler {
	return &assembler{
		mem:   in.mem,
		views: make([]View, 0, n),
	}
}

func (a *assembler) appendView(r container.Range) {
	a.mem.ref()
	a.views = append(a.views, View{mem: a.mem, off: r.Off, length: r.Len})
	a.total += r.Len
}

func (a *assembler) discard() {
	for range a.views {
		a.mem.unref()
	}
	a.views = nil
	a.total = 0
}

// finish wraps the assembled views into an output buffer, copying the
// input's structural metadata by value. Payload bytes stay where they
// are.
func (a *assembler) finish(in *Buffer) *Buffer {
	return &Buffer{
		views: a.views,
		total: a.total,
		Meta:  in.Meta,
	}
}
