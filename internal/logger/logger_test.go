package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedLogger(level string) (*StandardLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &StandardLogger{
		level: ParseLevel(level),
		debug: log.New(&buf, "DEBUG: ", 0),
		info:  log.New(&buf, "INFO: ", 0),
		warn:  log.New(&buf, "WARN: ", 0),
		error: log.New(&buf, "ERROR: ", 0),
		fatal: log.New(&buf, "FATAL: ", 0),
	}, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"shout", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestStandardLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferedLogger("warn")

	l.Debug("noisy")
	l.Infof("count %d", 3)
	l.Warn("watch out")
	l.Error("broken")

	out := buf.String()
	assert.NotContains(t, out, "DEBUG:")
	assert.NotContains(t, out, "INFO:")
	assert.Contains(t, out, "WARN: watch out")
	assert.Contains(t, out, "ERROR: broken")
}

func TestStandardLogger_DebugLevelPassesEverything(t *testing.T) {
	l, buf := newBufferedLogger("debug")

	l.Debugf("state %s", "ok")
	l.Info("up")

	out := buf.String()
	assert.Contains(t, out, "DEBUG: state ok")
	assert.Contains(t, out, "INFO: up")
}

func TestErrorAlwaysEmits(t *testing.T) {
	l, buf := newBufferedLogger("error")

	l.Warn("suppressed")
	l.Errorf("exit code %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "WARN:")
	assert.Contains(t, out, "ERROR: exit code 3")
}

func TestInit_ReplacesDefault(t *testing.T) {
	t.Cleanup(func() { Init("info") })

	Init("debug")
	assert.NotNil(t, Default)
}
