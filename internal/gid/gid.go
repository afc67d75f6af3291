// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package gid recovers the calling goroutine's numeric ID. Go has no public
// API for this and no native thread-local storage; this package stands in
// for the "thread-local" half of the Thread-Local Accumulator by giving
// internal/accum a stable per-goroutine key.
package gid

import (
	"bytes"

	"github.com/DataDog/gostackparse"
)

// dumpBufSize is generous enough to hold the single-goroutine header line
// gostackparse needs ("goroutine 123 [running]:") plus a couple of stack
// frames; it does not need the full stack.
const dumpBufSize = 256

var stackBufPool = newBufPool(dumpBufSize)

// Current returns the calling goroutine's ID. It costs a small runtime
// stack dump plus a parse on every call; see DESIGN.md for the trade-off.
func Current() int64 {
	buf := stackBufPool.get()
	defer stackBufPool.put(buf)

	n := runtimeStack(buf)
	goroutines, _ := gostackparse.Parse(bytes.NewReader(buf[:n]))
	if len(goroutines) == 0 {
		return fallbackID
	}
	return int64(goroutines[0].ID)
}
