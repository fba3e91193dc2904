/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(999), "UNKNOWN"}, // Invalid level
	}

	for _, test := range tests {
		if result := test.level.String(); result != test.expected {
			t.Errorf("Level.String() = %v, expected %v", result, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, TraceLevel, ParseLevel("trace"))
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("warn"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("bogus"))
}

func TestLoggerInitialization(t *testing.T) {
	err := Initialize(Config{Level: InfoLevel, Component: "test"})
	require.NoError(t, err)
	require.NotNil(t, defaultLogger)
	assert.Equal(t, "test", defaultLogger.config.Component)
}

func TestLoggerTextFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: InfoLevel, Component: "test"}, &buf)

	l.Log(InfoLevel, "test message", String("key", "value"))

	out := buf.String()
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, `msg="test message"`)
	assert.Contains(t, out, "component=test")
	assert.Contains(t, out, "key=value")
}

func TestLoggerJSONFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: InfoLevel, JSON: true, Component: "test"}, &buf)

	l.Log(WarnLevel, "test message", Int("count", 3))

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed))
	assert.Equal(t, "test message", parsed["msg"])
	assert.Equal(t, "warning", parsed["level"])
	assert.Equal(t, "test", parsed["component"])
	assert.EqualValues(t, 3, parsed["count"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: WarnLevel}, &buf)

	l.Log(InfoLevel, "info message")
	l.Log(DebugLevel, "debug message")
	l.Log(WarnLevel, "warn message")
	l.Log(ErrorLevel, "error message")

	out := buf.String()
	assert.NotContains(t, out, "info message")
	assert.NotContains(t, out, "debug message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "key", Value: "value"}, String("key", "value"))
	assert.Equal(t, Field{Key: "count", Value: 42}, Int("count", 42))
	assert.Equal(t, Field{Key: "enabled", Value: true}, Bool("enabled", true))
	assert.Equal(t, Field{Key: "error", Value: "boom"}, Err(errors.New("boom")))
}

func TestSetOutputRedirectsDefaultLogger(t *testing.T) {
	require.NoError(t, Initialize(Config{Level: InfoLevel}))
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("redirected")
	Debug("hidden")

	assert.Contains(t, buf.String(), "redirected")
	assert.NotContains(t, buf.String(), "hidden")
}
