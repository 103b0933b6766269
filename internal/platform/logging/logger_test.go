package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"":        LevelInfo,
		"DEBUG":   LevelDebug,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q)=%s, want %s", raw, got, want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unsupported level")
	}
}

func TestNewConsole_WritesKeyValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsole(LevelInfo, &buf)
	logger.Debug("hidden")
	logger.Warn("fetch standings failed", "competition", "Serie A", "error", errors.New("status 503"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "fetch standings failed") || !strings.Contains(out, "Serie A") || !strings.Contains(out, "status 503") {
		t.Fatalf("unexpected console output: %q", out)
	}
}
