// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package pprofbuild

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/google/pprof/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProducesValidProfile(t *testing.T) {
	samples := []Sample{
		{
			Symbols: []Symbol{
				{Name: "main.alloc", SystemName: "main.alloc", File: "main.go", Line: 10},
				{Name: "main.main", SystemName: "main.main", File: "main.go", Line: 5},
			},
			Values: []int64{1, 100},
		},
	}

	p := Build(1, samples)
	require.NoError(t, p.CheckValid())

	for _, sample := range p.Sample {
		assert.Equal(t, len(sample.Value), len(p.SampleType))
	}
	assert.Equal(t, "alloc_space", p.DefaultSampleType)
	assert.Equal(t, int64(1), p.Period)
	assert.Equal(t, "space", p.PeriodType.Type)
	assert.Equal(t, "bytes", p.PeriodType.Unit)
	require.NotEmpty(t, p.DropFrames)
	_, err := regexp.Compile(p.DropFrames)
	assert.NoError(t, err)
}

func TestBuildDeduplicatesFunctionsByName(t *testing.T) {
	sym := Symbol{Name: "pkg.Fn", SystemName: "pkg.Fn", File: "pkg.go", Line: 1}
	samples := []Sample{
		{Symbols: []Symbol{sym}, Values: []int64{1, 10}},
		{Symbols: []Symbol{sym}, Values: []int64{1, 20}},
	}
	p := Build(1, samples)
	require.Len(t, p.Function, 1)
	require.Len(t, p.Location, 1)
	assert.Equal(t, p.Function[0].ID, p.Location[0].ID)
}

func TestBuildRoundTripsThroughWire(t *testing.T) {
	samples := []Sample{
		{
			Symbols: []Symbol{{Name: "a.b", SystemName: "a.b", File: "a.go", Line: 3}},
			Values:  []int64{1, 10},
		},
	}
	p := Build(1024, samples)

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	parsed, err := profile.Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, p.Period, parsed.Period)
	assert.Equal(t, p.DefaultSampleType, parsed.DefaultSampleType)
	require.Len(t, parsed.Sample, 1)
}

func TestBuildIsIdempotentAcrossCalls(t *testing.T) {
	samples := []Sample{
		{
			Symbols: []Symbol{{Name: "a.b", SystemName: "a.b", File: "a.go", Line: 3}},
			Values:  []int64{1, 10},
		},
	}
	p1 := Build(1024, samples)
	p2 := Build(1024, samples)

	var b1, b2 bytes.Buffer
	require.NoError(t, p1.Write(&b1))
	require.NoError(t, p2.Write(&b2))
	assert.Equal(t, b1.Bytes(), b2.Bytes())
}
