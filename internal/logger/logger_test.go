package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLogger_LevelAndAttributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "warn").With("component", "api")

	log.Info("hidden")
	log.Warn("shown", "status", 500)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "component=api") || !strings.Contains(out, "status=500") {
		t.Fatalf("unexpected output: %q", out)
	}

	buf.Reset()
	log.SetLevel("debug")
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("expected debug record after SetLevel, got %q", buf.String())
	}
}
