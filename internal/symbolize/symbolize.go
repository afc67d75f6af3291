// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package symbolize resolves the raw addresses captured by internal/frame
// into names, files, and line numbers. Resolution is deferred until report
// construction, since it is comparatively expensive and the hot path never
// needs it.
package symbolize

import (
	"runtime"
	"strings"

	"github.com/heapprof/heapprof/internal/frame"
)

// Symbol is one resolved stack entry.
type Symbol struct {
	Name       string
	SystemName string
	File       string
	Line       int64
}

// DropPrefixes lists the function-name prefixes considered part of the
// profiler's own bookkeeping; frames whose resolved name starts with one of
// these are elided so only the caller's stack appears in a report. This
// mirrors the source's filtering of its own `alloc::alloc::*` frames.
var DropPrefixes = []string{
	"github.com/heapprof/heapprof.OnAllocEvent",
	"github.com/heapprof/heapprof.OnAlloc",
	"github.com/heapprof/heapprof.OnFree",
	"github.com/heapprof/heapprof/internal/accum.",
}

// Resolve maps captured frames to zero or more symbols, in stack order,
// dropping any frame that resolves into the profiler's own hot path.
func Resolve(frames []frame.Frame) []Symbol {
	out := make([]Symbol, 0, len(frames))
	for _, f := range frames {
		fn := runtime.FuncForPC(f.PC)
		if fn == nil {
			continue
		}
		name := fn.Name()
		if dropped(name) {
			continue
		}
		file, line := fn.FileLine(f.PC)
		out = append(out, Symbol{
			Name:       name,
			SystemName: name,
			File:       file,
			Line:       int64(line),
		})
	}
	return out
}

func dropped(name string) bool {
	for _, p := range DropPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
