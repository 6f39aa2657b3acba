package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlogAdapter_WithNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	require.NotNil(t, adapter)
	assert.NotNil(t, adapter.logger, "adapter.logger should not be nil when created with nil")
}

func TestNewSlogAdapter_WithLogger(t *testing.T) {
	logger := slog.Default()
	adapter := NewSlogAdapter(logger)
	require.NotNil(t, adapter)
	assert.Same(t, logger, adapter.Logger())
}

func TestSlogAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(New(&buf, true, false))

	adapter.Debug("debug message", KeySize, 16)
	adapter.Info("info message", KeyPath, "assets/icon-16.png")
	adapter.Warn("warn message")
	adapter.Error("error message", KeyError, "boom")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG msg=\"debug message\" size=16")
	assert.Contains(t, out, "level=INFO msg=\"info message\" path=assets/icon-16.png")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR msg=\"error message\" error=boom")
}

func TestSlogAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(New(&buf, false, false)).With(KeyComponent, "icons")
	adapter.Info("done")
	assert.Contains(t, buf.String(), "component=icons")
}

func TestDefaultLogger(t *testing.T) {
	adapter := DefaultLogger()
	require.NotNil(t, adapter)
	assert.NotNil(t, adapter.logger)
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = (*SlogAdapter)(nil)
}
