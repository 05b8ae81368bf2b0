package logging

import (
	"strings"
	"testing"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf strings.Builder
	logger, err := New(Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	component := NewComponentLogger(logger, "testcomp")
	component.Info("hello", String("key", "value"))

	out := buf.String()
	for _, want := range []string{"INFO", "[testcomp]", "hello", "key=value"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf strings.Builder
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Fatalf("output %q is not JSON", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("New accepted an unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf strings.Builder
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatal("info record passed a warn-level logger")
	}
	if !strings.Contains(out, "loud") {
		t.Fatal("warn record missing")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// Must not panic and must stay silent.
	NewNop().Error("dropped", Error(nil))
}
