// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package accum implements the Thread-Local Accumulator and the hot
// allocation path described by spec.md §4.3: a per-goroutine running tally,
// a reentrance guard, and the threshold logic that decides when to hand a
// sample off to the Collector.
//
// Go has no native thread-local storage, so "per-thread" here means
// per-goroutine, keyed by internal/gid. Each table entry is touched by
// exactly one goroutine at a time (the hot path never shares an
// accumulator across goroutines), so no per-entry lock is needed; only the
// table itself (a sync.Map, optimized for exactly this stable-key,
// read-mostly-after-warmup access pattern) is shared.
package accum

import (
	"sync"

	"github.com/heapprof/heapprof/internal/frame"
	"github.com/heapprof/heapprof/internal/gid"
)

// Totals is the four-counter snapshot of a goroutine's tallies that a flush
// hands to the Flusher. The root package's Flusher ignores it: the Profiler
// State keeps no running totals, only the per-stack records in its
// Collector.
type Totals struct {
	AllocObjects int64
	AllocBytes   int64
	FreedObjects int64
	FreedBytes   int64
}

// Flusher receives the result of a crossed sampling threshold. Begin is
// called synchronously, on the calling goroutine, before any background
// work is scheduled, so a caller can track outstanding work (e.g. with a
// sync.WaitGroup) without racing a later barrier wait. Flush itself runs on
// a separate goroutine.
type Flusher interface {
	Begin()
	Flush(key frame.Key, buf *frame.Buffer, net int64, totals Totals)
}

type accumulator struct {
	allocObjects int64
	allocBytes   int64
	freedObjects int64
	freedBytes   int64
	allocNext    int64
	freedNext    int64
	period       int64
}

func newAccumulator(period uint64) *accumulator {
	p := int64(period)
	if p <= 0 {
		p = 1
	}
	return &accumulator{allocNext: p, freedNext: p, period: p}
}

func (a *accumulator) track(size int64) {
	if size > 0 {
		a.allocObjects++
		a.allocBytes += size
	} else if size < 0 {
		a.freedObjects++
		a.freedBytes += -size
	}
}

// shouldFlush reports a threshold crossing on the alloc side or the free
// side independently: alloc and free activity on a goroutine are otherwise
// unrelated bursts, and a sampling decision for one must never depend on
// how much of the other happened since the last flush.
func (a *accumulator) shouldFlush() bool {
	return a.allocBytes >= a.allocNext || a.freedBytes >= a.freedNext
}

// snapshotAndReset clones the current tallies, advances each side's
// next_sample independently per the adaptive rule (spec.md §9: "advance by
// max(value, period) on each flush"), and zeroes the running counters.
//
// The two sides are advanced off their own accumulated bytes, never off the
// net of the two: advancing a shared threshold by a burst's net magnitude
// lets one very large alloc push next_sample so high that a comparably
// sized free on the same goroutine can never cross it again, silently
// dropping the free side of what should be a single matched sample.
func (a *accumulator) snapshotAndReset() Totals {
	snap := Totals{
		AllocObjects: a.allocObjects,
		AllocBytes:   a.allocBytes,
		FreedObjects: a.freedObjects,
		FreedBytes:   a.freedBytes,
	}

	if a.allocBytes >= a.allocNext {
		a.allocNext = a.allocBytes + a.period
	} else {
		a.allocNext += a.period
	}
	if a.freedBytes >= a.freedNext {
		a.freedNext = a.freedBytes + a.period
	} else {
		a.freedNext += a.period
	}

	a.allocObjects, a.allocBytes = 0, 0
	a.freedObjects, a.freedBytes = 0, 0
	return snap
}

type threadState struct {
	entered bool
	acc     *accumulator
}

var states sync.Map // int64 (goroutine id) -> *threadState

func stateFor(id int64, period uint64) *threadState {
	if v, ok := states.Load(id); ok {
		return v.(*threadState)
	}
	v, _ := states.LoadOrStore(id, &threadState{acc: newAccumulator(period)})
	return v.(*threadState)
}

// Reset drops every goroutine's accumulator state. spec.md §3 specifies
// that a Thread-Local Accumulator's period is "copied from controller at
// session start", so Start calls this once it holds the session mutex: the
// next Track call on any goroutine then builds a fresh accumulator seeded
// with the new period, rather than keeping a stale threshold left over from
// a prior session. Guard.Report waits for the previous session's flushes
// before releasing the mutex; Guard.Close does not, and a flush still in
// flight after Close writes only into the Flusher it was handed, never into
// the new session's.
func Reset() {
	states.Range(func(key, _ any) bool {
		states.Delete(key)
		return true
	})
}

// Track is the hot path: spec.md's on_alloc_event(size_signed). sizeSigned
// is positive for an allocation, negative for a free. It never blocks and is
// safe to call reentrantly (the reentrant call is a silent no-op). It is not
// allocation-free: every call resolves the goroutine ID through gid.Current,
// and a call that crosses a threshold also captures a fresh frame.Buffer and
// starts a goroutine for the flush.
func Track(sizeSigned int64, period uint64, fl Flusher) {
	id := gid.Current()
	ts := stateFor(id, period)

	if ts.entered {
		return
	}
	ts.entered = true
	defer func() { ts.entered = false }()

	ts.acc.track(sizeSigned)
	if !ts.acc.shouldFlush() {
		return
	}

	// spec.md §4.3 step 4 captures the stack as part of the synchronous
	// flush sequence, at the call site that crossed the threshold — so
	// capture happens here, still on the caller's goroutine, before any
	// work is handed off.
	buf := frame.Capture(0)
	snap := ts.acc.snapshotAndReset()
	net := snap.AllocBytes - snap.FreedBytes

	fl.Begin()
	go flush(buf, net, snap, fl)
}

// flush hands an already-captured sample off to the Flusher on its own
// goroutine, so the hot path never awaits the Collector's write lock
// (mirroring the source's tokio::spawn offload of the Collector handoff).
func flush(buf *frame.Buffer, net int64, snap Totals, fl Flusher) {
	if net == 0 {
		fl.Flush(frame.Key{}, nil, 0, snap)
		return
	}
	fl.Flush(buf.Key(), buf, net, snap)
}
