package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/docsite/internal/errors"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("disk full")
}

func TestTee(t *testing.T) {
	var text, file bytes.Buffer
	h := Tee(
		NewHandler(&text, &HandlerOptions{Level: slog.LevelWarn, Color: ColorNever}),
		nil,
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("site", "notes").WithGroup("linkcheck")

	logger.Debug("resolving link", "link", "/guide/")
	assert.Empty(t, text.String(), "warn handler skips debug records")
	assert.Contains(t, file.String(), `"site":"notes"`)
	assert.Contains(t, file.String(), `"linkcheck":{"link":"/guide/"}`)

	logger.Warn("link does not resolve", "link", "/guide/intor")
	assert.Contains(t, text.String(), "link does not resolve site=notes linkcheck.link=/guide/intor\n")
}

func TestTee_Enabled(t *testing.T) {
	h := Tee(
		NewHandler(&bytes.Buffer{}, &HandlerOptions{Level: slog.LevelError}),
		NewHandler(&bytes.Buffer{}, &HandlerOptions{Level: slog.LevelInfo}),
	)
	assert.True(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
}

func TestTee_Degenerate(t *testing.T) {
	assert.Equal(t, slog.DiscardHandler, Tee())
	assert.Equal(t, slog.DiscardHandler, Tee(nil))

	only := NewHandler(&bytes.Buffer{}, nil)
	assert.Same(t, only, Tee(nil, only))
}

func TestTee_JoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	ok := NewHandler(&buf, nil)
	bad := failingHandler{ok}

	err := Tee(bad, ok, bad).Handle(t.Context(), slog.NewRecord(time.Time{}, slog.LevelInfo, "built", 0))
	require.Error(t, err)
	assert.Equal(t, "disk full\ndisk full", err.Error())
	assert.Equal(t, "INFO  built\n", buf.String(), "healthy handlers still write")
}
