// Package testutil provides test utilities for structured logging.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// NewCapturedLogger returns a logger whose output accumulates in the
// returned builder, for tests that assert on logged records.
func NewCapturedLogger(t testing.TB) (*slog.Logger, *strings.Builder) {
	t.Helper()
	var buf strings.Builder
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
