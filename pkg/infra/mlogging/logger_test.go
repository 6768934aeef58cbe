// 指示: miu200521358
package mlogging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for value, want := range cases {
		got, err := ParseLevel(value)
		if err != nil {
			t.Fatalf("parse failed: value=%s err=%v", value, err)
		}
		if got != want {
			t.Fatalf("level mismatch: value=%s got=%v want=%v", value, got, want)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Fatalf("unknown level should fail")
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("log filter mismatch: %s", buf.String())
	}
}
