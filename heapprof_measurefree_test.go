// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

//go:build measurefree

package heapprof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMatchedAllocFreeWithMeasureFree is scenario S4: start(1);
// on_alloc_event(+4096) then on_alloc_event(-4096) from the same stack.
// report() yields a single stack entry with alloc_bytes = free_bytes =
// 4096, in_use_bytes = 0.
func TestMatchedAllocFreeWithMeasureFree(t *testing.T) {
	g, err := Start(1)
	require.NoError(t, err)

	allocFreeFromSameStack()

	report, err := g.Report()
	require.NoError(t, err)

	require.Len(t, report.stacks, 1)
	rec := report.stacks[0].record
	assert.Equal(t, int64(4096), rec.AllocBytes)
	assert.Equal(t, int64(4096), rec.FreeBytes)
	assert.Equal(t, int64(0), rec.InUseBytes())
}

// allocFreeFromSameStack issues both events from one call site so they
// share a call stack, the way S4 requires.
func allocFreeFromSameStack() {
	OnAllocEvent(4096)
	OnAllocEvent(-4096)
}
