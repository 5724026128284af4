package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"ERROR", LogLevelError},
		{"warn", LogLevelWarn},
		{" debug ", LogLevelDebug},
		{"TRACE", LogLevelTrace},
		{"INFO", LogLevelInfo},
		{"", LogLevelInfo},
		{"loud", LogLevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.input), tt.input)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	buf := captureLog(t)
	logger := NewLogger(LogLevelWarn).With("Datasets")

	logger.Error("broken %d", 1)
	logger.Warn("careful")
	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Trace("hidden")

	assert.Equal(t, "[ERROR] [Datasets] broken 1\n[WARN] [Datasets] careful\n", buf.String())
	assert.Equal(t, LogLevelWarn, logger.GetLevel())
}

func TestLoggerWithoutComponent(t *testing.T) {
	buf := captureLog(t)
	NewLogger(LogLevelTrace).Trace("x=%s", "y")
	assert.Equal(t, "[TRACE] x=y\n", buf.String())
}

func TestNewDefaultLoggerReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, LogLevelDebug, NewDefaultLogger().GetLevel())
}
