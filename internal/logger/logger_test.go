package logger

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	orig := os.Stdout
	defer func() { os.Stdout = orig }()

	r, w, err := os.Pipe()
	require.NoError(t, err, "failed to create stdout pipe")

	os.Stdout = w

	fn()

	err = w.Close()
	require.NoError(t, err, "failed to close stdout pipe")

	out, err := io.ReadAll(r)
	require.NoError(t, err, "failed to read stdout pipe")

	return string(out)
}

func TestLogger_New(t *testing.T) {
	t.Run("dev environment", func(t *testing.T) {
		out := captureStdout(t, func() {
			l, err := New(EnvDevelopment, LevelInfo)
			require.NoError(t, err)

			l.Info("test message", "key", "value")
		})

		require.Contains(t, out, "test message")
		require.Contains(t, out, "key=value", "dev logger should be plain text")
	})

	t.Run("prod environment", func(t *testing.T) {
		out := captureStdout(t, func() {
			l, err := New(EnvProduction, LevelInfo)
			require.NoError(t, err)

			l.Info("test message", "key", "value")
		})

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &entry), "prod log should be valid JSON")
		require.Equal(t, "test message", entry["msg"])
		require.Equal(t, "INFO", entry["level"])
		require.Equal(t, "value", entry["key"])
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, err := New("staging", LevelInfo)

		require.Error(t, err)
	})
}

func TestLogger_NewNoOpLogger(t *testing.T) {
	out := captureStdout(t, func() {
		l := NewNoOpLogger()
		l.Debug("debug message")
		l.Info("info message")
		l.Warn("warn message")
		l.Error("error message")
	})

	require.Empty(t, out, "NoOp logger should not write anything")
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func(Logger)
		isLogged bool
	}{
		{"Debug logger logs debug", LevelDebug, func(l Logger) { l.Debug("test") }, true},
		{"Debug logger logs error", LevelDebug, func(l Logger) { l.Error("test") }, true},

		{"Info logger skips debug", LevelInfo, func(l Logger) { l.Debug("test") }, false},
		{"Info logger logs info", LevelInfo, func(l Logger) { l.Info("test") }, true},

		{"Warn logger skips info", LevelWarn, func(l Logger) { l.Info("test") }, false},
		{"Warn logger logs warn", LevelWarn, func(l Logger) { l.Warn("test") }, true},

		{"Error logger skips warn", LevelError, func(l Logger) { l.Warn("test") }, false},
		{"Error logger logs error", LevelError, func(l Logger) { l.Error("test") }, true},

		{"Unknown level defaults to info", "whatever", func(l Logger) { l.Info("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t, func() {
				tt.logFn(NewLogger(tt.level))
			})

			require.Equal(t, tt.isLogged, len(out) > 0, "Logger level %s: expected isLogged=%v", tt.level, tt.isLogged)
		})
	}
}

func TestLogger_With(t *testing.T) {
	out := captureStdout(t, func() {
		l := NewLogger(LevelInfo)

		l.With("component", "test", "version", "1.0").Info("test message")
	})

	require.Contains(t, out, "component=test")
	require.Contains(t, out, "version=1.0")
	require.Contains(t, out, "test message")
}

func TestLogger_WithGroup(t *testing.T) {
	out := captureStdout(t, func() {
		l := NewLogger(LevelInfo)

		l.WithGroup("req").Info("test message", "method", "GET")
	})

	require.Contains(t, out, "req.method=GET")
}
