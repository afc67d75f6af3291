// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package heapprof is a sampling heap profiler. Once started, it observes
// allocation and deallocation events reported through OnAllocEvent (or the
// OnAlloc/OnFree convenience wrappers), statistically samples them together
// with the call stack that produced them, and aggregates the samples into a
// Report that can be rendered as an SVG flame graph or serialized in pprof
// format for consumption by standard Go profiling tools.
//
// The allocator-hook integration that calls OnAllocEvent on every
// allocation is assumed to be supplied by the caller; this package
// implements the sampling, aggregation, and report-serialization path
// between those calls and a finished profile. Stack capture and symbol
// resolution use the Go runtime (runtime.Callers, runtime.FuncForPC).
package heapprof
