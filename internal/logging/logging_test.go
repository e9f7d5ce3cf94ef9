package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"Warning", LogLevelWarn},
		{"warn", LogLevelWarn},
		{"ERROR", LogLevelError},
		{"", LogLevelInfo},
		{"verbose", LogLevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.in), tt.in)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown %d", 1)
	l.Error("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
	assert.Contains(t, out, "shown 2")
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "test", JSON: true})

	l.WithComponent("config").WithField("key", "prints.customSymbol").Warn("fallback")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "test", rec["app"])
	assert.Equal(t, "config", rec["component"])
	assert.Equal(t, "prints.customSymbol", rec["key"])
	assert.Equal(t, "fallback", rec["message"])
}

func TestLoggerWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, JSON: true})
	_ = l.WithField("child", true)

	l.Info("parent")
	assert.NotContains(t, buf.String(), "child")
}

func TestLoggerDisable(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	l.Disable()
	l.Error("quiet")
	assert.Empty(t, buf.String())

	l.Enable()
	l.Error("loud")
	assert.True(t, strings.Contains(buf.String(), "loud"))
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})

	l.Info("before")
	l.SetLevel(LogLevelDebug)
	l.Info("after")

	assert.Equal(t, LogLevelDebug, l.Level())
	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}

func TestNullLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NullLogger.Error("nothing")
		NullLogger.WithComponent("x").Info("nothing")
	})
}

func TestGlobalLogger(t *testing.T) {
	prev := GetLogger()
	t.Cleanup(func() { SetLogger(prev) })

	require.NotNil(t, prev)
	SetLogger(NullLogger)
	assert.Same(t, NullLogger, GetLogger())
}
