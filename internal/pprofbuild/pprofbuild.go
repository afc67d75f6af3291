// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package pprofbuild assembles a *profile.Profile (github.com/google/pprof)
// from the logical stacks a Report holds. Using the library's high-level
// struct API means string-table deduplication, index assignment, and wire
// encoding are the library's problem, not ours (see DESIGN.md); this package
// only has to assign Function/Location IDs and build the Sample/ValueType
// tables spec.md §4.5 describes.
package pprofbuild

import (
	"github.com/google/pprof/profile"

	"github.com/heapprof/heapprof/internal/symbolize"
)

// Symbol is an alias of symbolize.Symbol, so resolved stacks pass into Build
// without conversion.
type Symbol = symbolize.Symbol

// Sample is one aggregated stack plus its counter values, in the order
// spec.md §4.5 requires: alloc_objects, alloc_bytes[, free_objects,
// free_bytes, in_use_objects, in_use_bytes].
type Sample struct {
	Symbols []Symbol
	Values  []int64
}

// DropFramesPattern names the profiler's own hot-path function; visualizers
// consuming the resulting profile use it to elide those frames.
const DropFramesPattern = `github\.com/heapprof/heapprof\.OnAllocEvent`

// Build constructs a *profile.Profile for the given session period (bytes)
// and samples. Function id and location id are intentionally kept equal —
// one location per function — matching spec.md §4.5's acknowledged
// simplification.
func Build(period int64, samples []Sample) *profile.Profile {
	b := &builder{
		locByName: make(map[string]*profile.Location),
	}
	pprofSamples := make([]*profile.Sample, 0, len(samples))
	for _, s := range samples {
		locs := make([]*profile.Location, 0, len(s.Symbols))
		for _, sym := range s.Symbols {
			locs = append(locs, b.locationFor(sym))
		}
		pprofSamples = append(pprofSamples, &profile.Sample{
			Location: locs,
			Value:    append([]int64(nil), s.Values...),
		})
	}

	return &profile.Profile{
		SampleType:        sampleTypes(),
		DefaultSampleType: "alloc_space",
		Sample:            pprofSamples,
		Function:          b.functions,
		Location:          b.locations,
		PeriodType:        &profile.ValueType{Type: "space", Unit: "bytes"},
		Period:            period,
		DropFrames:        DropFramesPattern,
	}
}

type builder struct {
	nextID    uint64
	locByName map[string]*profile.Location
	functions []*profile.Function
	locations []*profile.Location
}

func (b *builder) locationFor(sym Symbol) *profile.Location {
	if loc, ok := b.locByName[sym.Name]; ok {
		return loc
	}
	b.nextID++
	id := b.nextID

	fn := &profile.Function{
		ID:         id,
		Name:       sym.Name,
		SystemName: sym.SystemName,
		Filename:   sym.File,
	}
	loc := &profile.Location{
		ID: id,
		Line: []profile.Line{
			{Function: fn, Line: sym.Line},
		},
	}

	b.functions = append(b.functions, fn)
	b.locations = append(b.locations, loc)
	b.locByName[sym.Name] = loc
	return loc
}
