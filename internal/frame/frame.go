// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package frame implements the fixed-capacity call-stack capture used on the
// hot allocation path. Capture is cheap: it allocates one fixed-size Buffer
// and records raw addresses only; resolving the captured addresses into
// names is deferred to report construction (see internal/symbolize).
package frame

import (
	"runtime"
	"time"
)

// MaxDepth is the fixed capacity of a Buffer. Chosen empirically (mirroring
// the source) to cover deep stacks without wasting cache lines on the hot
// path.
const MaxDepth = 32

// Frame is a single captured program counter, pre-resolution.
type Frame struct {
	PC uintptr
	// SymbolAddress is the entry address of the function containing PC. It
	// is stable for the lifetime of the process and is what Buffer identity
	// is computed over; the full PC is kept only so symbolize can recover an
	// exact line number later.
	SymbolAddress uintptr
}

// Key is the hashable/comparable identity of a Buffer: the ordered sequence
// of captured frames' symbol addresses, zero-padded to MaxDepth. Because this
// is a plain comparable array, it can be used directly as a Go map key with
// no custom Hash/Equal implementation.
type Key [MaxDepth]uintptr

// Buffer is a fixed-capacity capture of a single call stack.
type Buffer struct {
	frames     [MaxDepth]Frame
	n          int
	capturedAt time.Time
}

// NewBuffer returns an empty Buffer stamped with the current time.
func NewBuffer() *Buffer {
	return &Buffer{capturedAt: time.Now()}
}

// Push appends frame to the buffer. It panics if the buffer is already full;
// callers must check Len against MaxDepth (or the bool this method itself
// returns) before pushing again. It returns false once the buffer has
// reached capacity, signaling the caller to stop walking.
func (b *Buffer) Push(f Frame) bool {
	if b.n >= MaxDepth {
		panic("frame: push on full buffer")
	}
	b.frames[b.n] = f
	b.n++
	return b.n < MaxDepth
}

// Len returns the number of frames captured so far.
func (b *Buffer) Len() int { return b.n }

// Frames returns the captured frames in capture order. The returned slice
// aliases the buffer's internal array and must not be retained past a call
// that mutates b.
func (b *Buffer) Frames() []Frame { return b.frames[:b.n] }

// CapturedAt returns the time this buffer was created.
func (b *Buffer) CapturedAt() time.Time { return b.capturedAt }

// Key computes the buffer's hash/equality identity.
func (b *Buffer) Key() Key {
	var k Key
	for i := 0; i < b.n; i++ {
		k[i] = b.frames[i].SymbolAddress
	}
	return k
}

// Clone returns an independent copy of b. Frames are plain values, so this
// is a cheap struct copy.
func (b *Buffer) Clone() *Buffer {
	c := *b
	return &c
}

// Capture walks the calling goroutine's stack (skipping skip additional
// frames beyond Capture itself) into a fresh Buffer, stopping at MaxDepth
// frames. Stack capture never fails observably: if the walk terminates
// early (e.g. because the runtime's internal buffer was exhausted), the
// Buffer simply ends up truncated.
func Capture(skip int) *Buffer {
	buf := NewBuffer()
	var pcs [MaxDepth]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	for i := 0; i < n; i++ {
		pc := pcs[i]
		addr := pc
		if fn := runtime.FuncForPC(pc); fn != nil {
			addr = fn.Entry()
		}
		if !buf.Push(Frame{PC: pc, SymbolAddress: addr}) {
			break
		}
	}
	return buf
}
