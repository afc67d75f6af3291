// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package telemetry forwards the profiler's own operational counters to an
// optional statsd client, the way the teacher's config.statsd field does
// (see options_test.go's cfg.statsd.(*statsd.NoOpClient) default, and
// profile.go's p.cfg.statsd.Timing/.Count calls). Nothing here is on the
// sampling hot path: it only ever runs at flush and report time.
package telemetry

import (
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
)

// Client forwards profiler telemetry to statsd. A nil *Client is valid and
// every method on it is a no-op, so callers never need a nil check of their
// own; this mirrors the teacher's NoOpClient default rather than requiring
// WithStatsd to always be set.
type Client struct {
	inner statsd.ClientInterface
	tags  []string
}

// New wraps inner for use as a Client. inner may be nil, in which case the
// returned *Client behaves like a no-op client.
func New(inner statsd.ClientInterface, tags ...string) *Client {
	if inner == nil {
		return nil
	}
	return &Client{inner: inner, tags: tags}
}

func (c *Client) count(name string, value int64) {
	if c == nil || c.inner == nil {
		return
	}
	_ = c.inner.Count(name, value, c.tags, 1)
}

// SampleRecorded increments the count of samples collected during a
// session.
func (c *Client) SampleRecorded() { c.count("heapprof.samples", 1) }

// FlushBytes records the net byte delta a thread-local accumulator flushed
// into the collector.
func (c *Client) FlushBytes(n int64) { c.count("heapprof.flush_bytes", n) }

// ReportDuration times how long assembling a Report took.
func (c *Client) ReportDuration(d time.Duration) {
	if c == nil || c.inner == nil {
		return
	}
	_ = c.inner.Timing("heapprof.report_time", d, c.tags, 1)
}

// ReportStacks gauges the number of distinct resolved stacks a Report held,
// one call per Guard.Report.
func (c *Client) ReportStacks(n int) {
	if c == nil || c.inner == nil {
		return
	}
	_ = c.inner.Gauge("heapprof.report_stacks", float64(n), c.tags, 1)
}
