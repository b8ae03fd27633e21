package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := New(&buf, slog.LevelInfo, "")
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("table loaded", slog.String("table", "Habit"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "table loaded")
	assert.Contains(t, out, "table=Habit")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	logger := slog.New(h).With(slog.String("component", "store"))

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))

	logger.Debug("flush ok")
	logger.Warn("slow operation")

	assert.Contains(t, a.String(), "flush ok")
	assert.Contains(t, a.String(), "component=store")
	assert.NotContains(t, b.String(), "flush ok")
	assert.Contains(t, b.String(), "slow operation")
}
