package logging

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(NewDefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.NotNil(t, logger.zap)
	assert.NoError(t, logger.Sync())
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "bad level", cfg: &Config{Level: "loud", Format: "console"}},
		{name: "bad format", cfg: &Config{Level: "warn", Format: "xml"}},
		{name: "empty", cfg: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, logger)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	tl := NewTestLogger()

	tests := []struct {
		name    string
		logFunc func()
		level   zapcore.Level
		message string
	}{
		{
			name:    "debug",
			logFunc: func() { tl.Debug("debug message", zap.String("key", "val")) },
			level:   zapcore.DebugLevel,
			message: "debug message",
		},
		{
			name:    "info",
			logFunc: func() { tl.Info("info message", zap.String("key", "val")) },
			level:   zapcore.InfoLevel,
			message: "info message",
		},
		{
			name:    "warn",
			logFunc: func() { tl.Warn("warn message", zap.String("key", "val")) },
			level:   zapcore.WarnLevel,
			message: "warn message",
		},
		{
			name:    "error",
			logFunc: func() { tl.Error("error message", zap.String("key", "val")) },
			level:   zapcore.ErrorLevel,
			message: "error message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl.Reset()
			tt.logFunc()

			logs := tl.All()
			require.Len(t, logs, 1)
			assert.Equal(t, tt.level, logs[0].Level)
			assert.Equal(t, tt.message, logs[0].Message)
			assert.Len(t, logs[0].Context, 1)
		})
	}
}

func TestLogger_With(t *testing.T) {
	tl := NewTestLogger()

	child := tl.With(zap.String("repo", "/tmp/demo"))
	child.Info("child log")

	logs := tl.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "child log", logs[0].Message)

	found := false
	for _, field := range logs[0].Context {
		if field.Key == "repo" && field.String == "/tmp/demo" {
			found = true
			break
		}
	}
	assert.True(t, found, "repo field not found in context")
}

func TestLogger_Named(t *testing.T) {
	tl := NewTestLogger()

	named := tl.Named("watch")
	named.Info("named log")

	logs := tl.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "watch", logs[0].LoggerName)
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("discarded")
	assert.NoError(t, logger.Sync())
}

func TestNewEncoder(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "hello"}

	t.Run("json", func(t *testing.T) {
		buf, err := newEncoder("json").EncodeEntry(entry, nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(buf.String(), "{"))
		assert.Contains(t, buf.String(), `"msg":"hello"`)
		assert.Contains(t, buf.String(), `"ts":`)
	})

	t.Run("console", func(t *testing.T) {
		buf, err := newEncoder("console").EncodeEntry(entry, nil)
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(buf.String(), "{"))
		assert.Contains(t, buf.String(), "hello")
	})
}

func TestIsStderrSyncError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "einval", err: &fs.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}, want: true},
		{name: "enotty", err: &fs.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.ENOTTY}, want: true},
		{name: "other errno", err: &fs.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EBADF}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isStderrSyncError(tt.err))
		})
	}
}
