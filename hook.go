// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package heapprof

import "github.com/heapprof/heapprof/internal/accum"

// OnAllocEvent is the hot path spec.md §4.3 describes: sizeSigned is
// positive for an allocation, negative for a free. It is infallible from
// the caller's standpoint (the Propagation policy of spec.md §7 forbids the
// hot path from surfacing errors), never blocks, and is safe to call
// reentrantly — a call made while already inside this function on the same
// goroutine (e.g. because stack resolution itself allocates) is a no-op.
func OnAllocEvent(sizeSigned int64) {
	if !enabled.Load() {
		return
	}
	st := state.Load()
	if st == nil {
		return
	}
	accum.Track(sizeSigned, st.period, st)
}

// OnAlloc is a convenience wrapper over OnAllocEvent for an allocation of
// size bytes.
func OnAlloc(size uintptr) {
	OnAllocEvent(int64(size))
}

// OnFree is a convenience wrapper over OnAllocEvent for a deallocation of
// size bytes.
func OnFree(size uintptr) {
	OnAllocEvent(-int64(size))
}
