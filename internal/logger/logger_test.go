// ABOUTME: Tests for structured logging configuration
// ABOUTME: Verifies level parsing and handler format selection

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "info", "json")
	slog.Info("hello", "key", "value")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "{"), "expected JSON output, got %q", line)
	assert.Contains(t, line, `"key":"value"`)
}

func TestInit_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "info", "text")
	slog.Debug("hidden")
	slog.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}
