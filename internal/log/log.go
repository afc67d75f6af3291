// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package log is the ambient logging surface every other internal package
// and the root package call into. Grounded directly on
// internal/log/log_test.go's observable contract: a package-level Logger
// that can be swapped via UseLogger, level-gated Debug/Warn/Error helpers,
// and an in-memory RecordLogger for assertions in this module's own tests.
// The teacher's file-backed logger (OpenFileAtPath/LoggerFile, rate-limited
// error deduplication/Flush) is not reproduced: no SPEC_FULL.md component
// does file-based log rotation or high-volume repeated-error suppression,
// and spec.md places file I/O out of THE CORE's scope.
package log

import (
	"fmt"
	"strings"
	"sync"
)

// Level gates which calls reach the active Logger.
type Level int

const (
	LevelWarn Level = iota
	LevelDebug
)

// Logger is anything that can receive a fully formatted log line. Mirrors
// the teacher's internal/log.Logger interface exactly: one method, so any
// existing logger (zerolog, logrus, a test spy) can satisfy it with a thin
// adapter.
type Logger interface {
	Log(msg string)
}

// DiscardLogger drops every message. It is the default, matching a
// profiler that has not opted into any particular logging backend.
type DiscardLogger struct{}

func (DiscardLogger) Log(string) {}

var (
	mu             sync.RWMutex
	activeLogger   Logger = DiscardLogger{}
	levelThreshold        = LevelWarn
)

// UseLogger installs l as the active logger and returns a closure that
// restores whatever logger was active before. Grounded on the teacher's
// `defer log.UseLogger(rl)()`-shaped test setup.
func UseLogger(l Logger) (restore func()) {
	mu.Lock()
	old := activeLogger
	activeLogger = l
	mu.Unlock()
	return func() {
		mu.Lock()
		activeLogger = old
		mu.Unlock()
	}
}

// SetLevel changes the minimum level that reaches the active logger.
func SetLevel(lvl Level) {
	mu.Lock()
	levelThreshold = lvl
	mu.Unlock()
}

// DebugEnabled reports whether Debug calls currently reach the logger.
func DebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return levelThreshold >= LevelDebug
}

func current() (Logger, Level) {
	mu.RLock()
	defer mu.RUnlock()
	return activeLogger, levelThreshold
}

// Warn logs at warning level unconditionally.
func Warn(format string, args ...any) {
	l, _ := current()
	l.Log(fmt.Sprintf("WARN: "+format, args...))
}

// Error logs at error level unconditionally. Unlike the teacher, this does
// not rate-limit or deduplicate repeated messages (see the package doc);
// callers on a hot path should guard their own call sites if that matters.
func Error(format string, args ...any) {
	l, _ := current()
	l.Log(fmt.Sprintf("ERROR: "+format, args...))
}

// Debug logs at debug level only when DebugEnabled.
func Debug(format string, args ...any) {
	l, lvl := current()
	if lvl < LevelDebug {
		return
	}
	l.Log(fmt.Sprintf("DEBUG: "+format, args...))
}

// RecordLogger is an in-memory Logger for tests: it keeps every logged line
// and can ignore lines matching a substring, mirroring the teacher's
// RecordLogger.Ignore (used there to filter noisy appsec lines out of
// tracer-focused assertions).
type RecordLogger struct {
	mu      sync.Mutex
	lines   []string
	ignored []string
}

// Ignore adds substr to the set of substrings that cause a subsequent Log
// call to be dropped instead of recorded.
func (r *RecordLogger) Ignore(substr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ignored = append(r.ignored, substr)
}

// Log implements Logger.
func (r *RecordLogger) Log(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, substr := range r.ignored {
		if strings.Contains(msg, substr) {
			return
		}
	}
	r.lines = append(r.lines, msg)
}

// Logs returns every recorded (non-ignored) line so far.
func (r *RecordLogger) Logs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset clears both recorded lines and ignore rules, returning r to a
// pristine state.
func (r *RecordLogger) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
	r.ignored = nil
}
