// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package heapprof

import (
	"sync"
	"sync/atomic"

	"github.com/heapprof/heapprof/internal/accum"
	"github.com/heapprof/heapprof/internal/collector"
	"github.com/heapprof/heapprof/internal/frame"
	"github.com/heapprof/heapprof/internal/log"
	"github.com/heapprof/heapprof/internal/telemetry"
)

// sessionMu is the singleton session mutex of spec.md §4.4/§5: taken for
// the lifetime of a session, enforcing at most one Active session process
// wide. TryLock gives the exact non-blocking "fail with ConcurrentSession
// if already held" semantics Start needs, rather than a blocking acquire
// that would need a separate compare step.
var sessionMu sync.Mutex

// enabled is the global enable flag every OnAllocEvent call consults
// first. Sequentially-consistent reads on the hot path, sequentially
// consistent writes on Start/Close/Report.
var enabled atomic.Bool

// state holds the current Profiler State. Replaced wholesale by Start, read
// (never written) by OnAllocEvent.
var state atomic.Pointer[profilerState]

// profilerState is spec.md §3's Profiler State: the active Collector and
// the session's period. wg tracks outstanding scheduled flushes so Report
// can wait for them to drain before taking a final snapshot (spec.md §5's
// "internal barrier").
type profilerState struct {
	collector *collector.Collector
	period    uint64
	wg        sync.WaitGroup
	telemetry *telemetry.Client
}

// Begin implements accum.Flusher: called synchronously on the hot path the
// instant a threshold crossing is detected, before any background work is
// scheduled, so report's wg.Wait() can never race a flush that hasn't
// registered yet.
func (s *profilerState) Begin() { s.wg.Add(1) }

// Flush implements accum.Flusher: runs on the goroutine internal/accum
// spawns, writes the sample into the Collector, and reports it to
// telemetry if configured.
func (s *profilerState) Flush(_ frame.Key, buf *frame.Buffer, net int64, _ accum.Totals) {
	defer s.wg.Done()
	if buf != nil {
		s.collector.Record(buf, net)
	}
	if s.telemetry != nil {
		s.telemetry.SampleRecorded()
		s.telemetry.FlushBytes(net)
	}
}

// Start begins a profiling session sampling at the given period (bytes of
// net allocation activity per sample). It fails with ErrConcurrentSession
// if another session is already active. The returned Guard owns the
// session-mutex lease: it must eventually be closed, via Report or Close,
// to allow a future session to start.
func Start(period uint64, opts ...Option) (*Guard, error) {
	if !sessionMu.TryLock() {
		log.Debug("heapprof: Start failed: %v", ErrConcurrentSession)
		return nil, ErrConcurrentSession
	}

	cfg := newConfig(opts)
	if cfg.logger != nil {
		log.UseLogger(cfg.logger)
	}
	accum.Reset()

	st := &profilerState{
		collector: collector.New(),
		period:    period,
		telemetry: cfg.telemetryClient(),
	}
	state.Store(st)
	enabled.Store(true)

	log.Debug("heapprof: session started, period=%d", period)
	return &Guard{state: st}, nil
}
