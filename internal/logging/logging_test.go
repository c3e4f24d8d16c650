package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.With("component", "scale").Warn("render scale not applied")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info logged at warn level:\n%s", out)
	}
	if !strings.Contains(out, "render scale not applied") || !strings.Contains(out, "component=scale") {
		t.Fatalf("missing warn line:\n%s", out)
	}
}

func TestBadLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
