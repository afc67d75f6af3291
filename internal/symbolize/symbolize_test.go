// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package symbolize

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapprof/heapprof/internal/frame"
)

func capture() []frame.Frame {
	return frame.Capture(0).Frames()
}

func TestResolveReturnsNamedFrames(t *testing.T) {
	syms := Resolve(capture())
	require.NotEmpty(t, syms)
	for _, s := range syms {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.SystemName)
	}
}

func TestResolveDropsHotPathPrefixes(t *testing.T) {
	pc, _, _, ok := runtime.Caller(0)
	require.True(t, ok)

	fn := runtime.FuncForPC(pc)
	require.NotNil(t, fn)
	DropPrefixes = append(DropPrefixes, fn.Name())
	defer func() { DropPrefixes = DropPrefixes[:len(DropPrefixes)-1] }()

	syms := Resolve([]frame.Frame{{PC: pc}})
	assert.Empty(t, syms)
}
