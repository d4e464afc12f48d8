package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger = NewComponentLogger(logger, "scorer")
	logger.Info("scored candidate", Float64("score", 72.5), String("query", "qaradeniz"))

	line := buf.String()
	if !strings.Contains(line, "INFO scorer: scored candidate") {
		t.Errorf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "score=72.5") {
		t.Errorf("missing score attr: %q", line)
	}
	if !strings.Contains(line, "query=qaradeniz") {
		t.Errorf("missing query attr: %q", line)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("probing file", String("path", "/tmp/track.mp3"))

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if decoded["level"] != "debug" {
		t.Errorf("level = %v, want debug", decoded["level"])
	}
	if decoded["msg"] != "probing file" {
		t.Errorf("msg = %v", decoded["msg"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("should be dropped")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Errorf("info line leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNopLoggerIsSilent(t *testing.T) {
	logger := NewNop()
	// Must not panic and must report disabled at every level.
	logger.Error("discarded", Error(nil))
	if logger.Enabled(nil, 0) {
		t.Error("noop logger must be disabled")
	}
}
