// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package flamegraph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapprof/heapprof/internal/symbolize"
)

func TestWriteEmitsXMLDeclarationAndUnitLabel(t *testing.T) {
	stacks := []Stack{
		{
			Symbols: []symbolize.Symbol{
				{Name: "main.main", File: "main.go", Line: 5},
				{Name: "main.alloc", File: "main.go", Line: 10},
			},
			Weight: 100,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, stacks))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "bytes")
	assert.Contains(t, out, "</svg>")
}

func TestWriteFoldsSharedPrefixes(t *testing.T) {
	stacks := []Stack{
		{
			Symbols: []symbolize.Symbol{{Name: "main.main"}, {Name: "main.a"}},
			Weight:  10,
		},
		{
			Symbols: []symbolize.Symbol{{Name: "main.main"}, {Name: "main.b"}},
			Weight:  20,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, stacks))

	out := buf.String()
	assert.Contains(t, out, "main.main (30 bytes)")
	assert.Contains(t, out, "main.a (10 bytes)")
	assert.Contains(t, out, "main.b (20 bytes)")
}

func TestWriteHandlesEmptyStacks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "<?xml"))
}
