// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarnReachesActiveLogger(t *testing.T) {
	defer UseLogger(DiscardLogger{})()
	rl := &RecordLogger{}
	UseLogger(rl)

	Warn("message %d", 1)
	assert.Equal(t, []string{"WARN: message 1"}, rl.Logs())
}

func TestDebugGatedByLevel(t *testing.T) {
	defer UseLogger(DiscardLogger{})()
	defer SetLevel(LevelWarn)
	rl := &RecordLogger{}
	UseLogger(rl)

	Debug("hidden")
	assert.Empty(t, rl.Logs())

	SetLevel(LevelDebug)
	assert.True(t, DebugEnabled())
	Debug("message %d", 3)
	assert.Equal(t, []string{"DEBUG: message 3"}, rl.Logs())
}

func TestErrorReachesActiveLogger(t *testing.T) {
	defer UseLogger(DiscardLogger{})()
	rl := &RecordLogger{}
	UseLogger(rl)

	Error("boom %d", 7)
	assert.Equal(t, []string{"ERROR: boom 7"}, rl.Logs())
}

func TestUseLoggerRestoresPrevious(t *testing.T) {
	first := &RecordLogger{}
	restoreFirst := UseLogger(first)

	second := &RecordLogger{}
	restoreSecond := UseLogger(second)
	Warn("to second")
	restoreSecond()

	Warn("to first")
	restoreFirst()

	assert.Equal(t, []string{"WARN: to second"}, second.Logs())
	assert.Equal(t, []string{"WARN: to first"}, first.Logs())
}

func TestRecordLoggerIgnore(t *testing.T) {
	rl := &RecordLogger{}
	rl.Ignore("appsec")
	rl.Log("this is an appsec log")
	rl.Log("this is a tracer log")
	assert.Len(t, rl.Logs(), 1)
	assert.NotContains(t, rl.Logs()[0], "appsec")

	rl.Reset()
	rl.Log("this is an appsec log")
	assert.Len(t, rl.Logs(), 1)
	assert.Contains(t, rl.Logs()[0], "appsec")
}

func TestDiscardLoggerDropsEverything(t *testing.T) {
	assert.NotPanics(t, func() { DiscardLogger{}.Log("anything") })
}
