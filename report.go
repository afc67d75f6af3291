// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package heapprof

import (
	"io"

	"github.com/google/pprof/profile"

	"github.com/heapprof/heapprof/internal/collector"
	"github.com/heapprof/heapprof/internal/compress"
	"github.com/heapprof/heapprof/internal/flamegraph"
	"github.com/heapprof/heapprof/internal/pprofbuild"
	"github.com/heapprof/heapprof/internal/symbolize"
)

// stack is one resolved call stack plus its aggregate record, the unit a
// Report holds per spec.md §3: "a mapping from resolved stacks ... to
// Aggregate Records".
type stack struct {
	symbols []symbolize.Symbol
	record  collector.Record
}

// Report is an immutable snapshot of a session's Collector, taken at
// Guard.Report time. Resolution from raw frames to symbols happens once,
// during construction (spec.md §4.5), so repeated calls to Pprof or
// Flamegraph are cheap and, per spec.md §8 invariant 7, byte-identical.
type Report struct {
	period uint64
	stacks []stack
}

// newReport resolves every drained entry's frames into symbols, dropping
// the profiler's own hot-path frames (internal/symbolize.DropPrefixes), and
// takes ownership of entries; entries must not be used again afterward.
func newReport(period uint64, entries []collector.Entry) *Report {
	stacks := make([]stack, 0, len(entries))
	for _, e := range entries {
		stacks = append(stacks, stack{
			symbols: symbolize.Resolve(e.Frames.Frames()),
			record:  e.Record,
		})
	}
	return &Report{period: period, stacks: stacks}
}

// Pprof builds the in-memory pprof Profile for this report.
func (r *Report) Pprof() *profile.Profile {
	samples := make([]pprofbuild.Sample, 0, len(r.stacks))
	for _, s := range r.stacks {
		samples = append(samples, pprofbuild.Sample{
			Symbols: s.symbols,
			Values:  s.record.Values(),
		})
	}
	return pprofbuild.Build(int64(r.period), samples)
}

// WritePprof serializes this report's pprof Profile to w, gzip-compressed
// (github.com/google/pprof/profile.Write's own default), matching the
// teacher's default upload encoding.
func (r *Report) WritePprof(w io.Writer) error {
	return r.Pprof().Write(w)
}

// WritePprofWith serializes this report's pprof Profile to w under the
// given compression instead of profile.Write's built-in gzip default;
// useful for callers that want None (for a caller-managed pipeline) or Zstd
// (denser than profile.Write's fixed gzip level).
func (r *Report) WritePprofWith(w io.Writer, c compress.Compression) error {
	cw, err := compress.NewWriter(w, c)
	if err != nil {
		return err
	}
	if err := r.Pprof().WriteUncompressed(cw); err != nil {
		cw.Close()
		return err
	}
	return cw.Close()
}

// Flamegraph writes an SVG flame graph of this report to w. Weight is
// alloc_bytes only, per spec.md §4.5; other dimensions are not rendered.
func (r *Report) Flamegraph(w io.Writer) error {
	stacks := make([]flamegraph.Stack, 0, len(r.stacks))
	for _, s := range r.stacks {
		stacks = append(stacks, flamegraph.Stack{
			Symbols: reversed(s.symbols),
			Weight:  s.record.AllocBytes,
		})
	}
	return flamegraph.Write(w, stacks)
}

// reversed returns syms in root-to-leaf order. Capture order (and so
// symbolize.Resolve's output, and pprof's location_id convention) is
// leaf-first; a flame graph's visual stacking wants the opposite, with the
// outermost caller at the base.
func reversed(syms []symbolize.Symbol) []symbolize.Symbol {
	out := make([]symbolize.Symbol, len(syms))
	for i, s := range syms {
		out[len(syms)-1-i] = s
	}
	return out
}
