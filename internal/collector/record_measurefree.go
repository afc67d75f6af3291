// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

//go:build measurefree

package collector

// Record is the Aggregate Record for a single stack, including the
// free-side counters and their derived in-use dimensions.
type Record struct {
	AllocObjects int64
	AllocBytes   int64
	FreeObjects  int64
	FreeBytes    int64
}

// InUseObjects is the derived net live-object count.
func (r Record) InUseObjects() int64 { return r.AllocObjects - r.FreeObjects }

// InUseBytes is the derived net live-byte count.
func (r Record) InUseBytes() int64 { return r.AllocBytes - r.FreeBytes }

func applyDelta(r *Record, net int64) {
	if net > 0 {
		r.AllocObjects++
		r.AllocBytes += net
	} else {
		r.FreeObjects++
		r.FreeBytes += -net
	}
}

// Values returns the record's counters in the fixed extended order spec.md
// §4.5 specifies for a pprof sample's value vector with free-measurement
// compiled in.
func (r Record) Values() []int64 {
	return []int64{
		r.AllocObjects, r.AllocBytes,
		r.FreeObjects, r.FreeBytes,
		r.InUseObjects(), r.InUseBytes(),
	}
}
