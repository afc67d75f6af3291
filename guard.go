// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package heapprof

import (
	"sync/atomic"
	"time"

	"github.com/heapprof/heapprof/internal/log"
)

type guardStatus int32

const (
	guardOpen guardStatus = iota
	guardReported
	guardClosed
)

// Guard is the scoped object Start returns. Holding a Guard means "I am the
// current profiling session" (spec.md §3): the enable flag is true while,
// and only while, a Guard is open. It must eventually be consumed by
// exactly one of Report or Close.
type Guard struct {
	state  *profilerState
	status atomic.Int32
}

// Report stops sampling and produces a Report, consuming the Guard. It
// waits for every flush scheduled before the stop to finish draining into
// the Collector (spec.md §5's internal barrier) before taking the
// snapshot, so the returned Report never misses activity that raced the
// stop.
func (g *Guard) Report() (*Report, error) {
	if !g.status.CompareAndSwap(int32(guardOpen), int32(guardReported)) {
		if guardStatus(g.status.Load()) == guardReported {
			return nil, ErrReportAlreadyTaken
		}
		return nil, ErrGuardClosed
	}

	start := time.Now()
	enabled.Store(false)
	g.state.wg.Wait()
	entries := g.state.collector.Drain()
	sessionMu.Unlock()

	report := newReport(g.state.period, entries)
	if tc := g.state.telemetry; tc != nil {
		tc.ReportDuration(time.Since(start))
		tc.ReportStacks(len(entries))
	}

	log.Debug("heapprof: session stopped, report taken (period=%d)", g.state.period)
	return report, nil
}

// Close stops sampling without producing a Report, consuming the Guard.
// Safe to call more than once, or after Report has already consumed the
// Guard — later calls are a no-op, mirroring spec.md §4.4's "Guard drop:
// unconditionally sets enable flag to false. Safe to drop without taking a
// report."
func (g *Guard) Close() error {
	if !g.status.CompareAndSwap(int32(guardOpen), int32(guardClosed)) {
		return nil
	}
	enabled.Store(false)
	sessionMu.Unlock()
	log.Debug("heapprof: session stopped without a report")
	return nil
}
