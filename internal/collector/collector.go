// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package collector implements the mapping from a captured call stack to its
// aggregated allocation counters. A session's memory is bounded only by the
// number of distinct sampled stacks: there is no eviction and no capping.
package collector

import (
	"sort"
	"sync"

	"github.com/heapprof/heapprof/internal/frame"
)

type entry struct {
	frames frame.Buffer
	rec    Record
}

// Collector maps Frame Buffers to Aggregate Records. The zero value is not
// usable; construct with New.
type Collector struct {
	mu      sync.Mutex
	entries map[frame.Key]*entry
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{entries: make(map[frame.Key]*entry)}
}

// Record adds one object and the magnitude of net in bytes to the alloc or
// free side of buf's aggregate, based on net's sign. net == 0 is a no-op.
// Once inserted, a key is never removed during a session, and its counters
// are monotonically non-decreasing.
func (c *Collector) Record(buf *frame.Buffer, net int64) {
	if net == 0 {
		return
	}
	key := buf.Key()

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{frames: *buf.Clone()}
		c.entries[key] = e
	}
	applyDelta(&e.rec, net)
}

// Entry is one (stack, aggregate) pair drained from a Collector.
type Entry struct {
	Frames frame.Buffer
	Record Record
	key    frame.Key
}

// Drain consumes the Collector and returns its contents in a deterministic
// order (by stack identity), so that a Report built from it produces
// byte-identical output across repeated serializations.
func (c *Collector) Drain() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, 0, len(c.entries))
	for k, e := range c.entries {
		out = append(out, Entry{Frames: e.frames, Record: e.rec, key: k})
	}
	c.entries = nil

	sort.Slice(out, func(i, j int) bool {
		return lessKey(out[i].key, out[j].key)
	})
	return out
}

func lessKey(a, b frame.Key) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
