// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package compress wraps a report's serialized bytes in an optional
// compression codec before they reach the caller's io.Writer. Grounded on
// the teacher's compression_test.go (newCompressionPipeline), but
// simplified to the one-shot, non-delta case this module needs: there is no
// upstream pprof byte stream to recompress, only a profile this module
// builds itself.
package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression names a codec WritePprofWith may wrap its output in.
type Compression int

const (
	// None writes the profile's bytes unmodified.
	None Compression = iota
	// Gzip wraps the output in gzip at the default compression level, the
	// format github.com/google/pprof/profile.Write already produces on its
	// own; requesting it explicitly here is only useful alongside
	// WritePprofWith's uncompressed sibling.
	Gzip
	// Zstd wraps the output in zstd at the library's default speed level.
	Zstd
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", int(c))
	}
}

// nopWriteCloser adapts an io.Writer with no Close of its own to
// io.WriteCloser, for the None case.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns an io.WriteCloser that writes compressed bytes to w
// according to c. Callers must Close the returned writer to flush any
// buffered compressed output; closing does not close w itself.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	default:
		return nil, fmt.Errorf("compress: unknown compression %d", int(c))
	}
}
