// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package heapprof

import "errors"

// ErrConcurrentSession is returned by Start when another session is already
// active. The session mutex guarantees at most one of two overlapping Start
// calls ever succeeds.
var ErrConcurrentSession = errors.New("heapprof: a profiling session is already active")

// ErrGuardClosed is returned by Guard.Report when the Guard has already been
// consumed by a prior Close call. Guard.Close itself never returns it.
var ErrGuardClosed = errors.New("heapprof: guard already closed")

// ErrReportAlreadyTaken is returned by Guard.Report when a Report has
// already been taken from this Guard.
var ErrReportAlreadyTaken = errors.New("heapprof: report already taken from this guard")
