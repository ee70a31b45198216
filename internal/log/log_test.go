package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/caret/internal/pubsub"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	entry := format(ts, LevelError, CatEditor, "boom", "line", 3, "char", 7)
	require.Equal(t, "2025-12-06T10:45:00 [ERROR] [editor] boom line=3 char=7\n", entry)

	entry = format(ts, LevelDebug, CatBuffer, "odd", "orphan")
	require.Equal(t, "2025-12-06T10:45:00 [DEBUG] [buffer] odd orphan=<missing>\n", entry)
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(99).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	require.ErrorContains(t, err, `unknown log level "loud"`)
}

func TestInitWriter_WritesEntries(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Info(CatConfig, "loaded", "path", "x.yaml")
	require.Contains(t, buf.String(), "[INFO] [config] loaded path=x.yaml")
}

func TestMinLevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatUI, "hidden")
	Info(CatUI, "hidden")
	Warn(CatUI, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatUI, "muted")
	require.Empty(t, buf.String())
}

func TestErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatScript, "step failed", errors.New("bad op"), "step", 2)
	require.Contains(t, buf.String(), "step failed step=2 error=bad op")

	buf.Reset()
	ErrorErr(CatScript, "nil error", nil)
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestNoLogger_IsSilent(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Debug(CatEditor, "nobody listening")
		SetEnabled(true)
		SetMinLevel(LevelInfo)
	})
	require.Nil(t, NewListener(context.Background()))
}

func TestInit_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(Reset)

	Warn(CatBuffer, "first")
	Warn(CatBuffer, "second")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[WARN] [buffer] first")
	require.Contains(t, string(data), "[WARN] [buffer] second")
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "dir", "debug.log"))
	require.Error(t, err)
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Error(CatEditor, "published")

	msg := listener.Listen()()
	event, ok := msg.(pubsub.Event[string])
	require.True(t, ok)
	require.Equal(t, pubsub.CreatedEvent, event.Type)
	require.Contains(t, event.Payload, "published")
}
