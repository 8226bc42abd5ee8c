package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw      string
		expected slog.Level
	}{
		{raw: "debug", expected: slog.LevelDebug},
		{raw: "", expected: slog.LevelInfo},
		{raw: " INFO ", expected: slog.LevelInfo},
		{raw: "warning", expected: slog.LevelWarn},
		{raw: "warn", expected: slog.LevelWarn},
		{raw: "error", expected: slog.LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.raw)
		if err != nil {
			t.Fatalf("ParseLevel(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.expected {
			t.Fatalf("ParseLevel(%q)=%v, want %v", tc.raw, got, tc.expected)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewTextLoggerFiltersByLevel(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "point", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "point=3") {
		t.Fatalf("unexpected text output: %q", out)
	}
}

func TestNewJSONLogger(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("Tap", "x", 10)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "Tap" || record["x"] != float64(10) {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestDebugEnvForcesDebugLevel(t *testing.T) {
	t.Setenv("DEBUG", "1")
	var buf bytes.Buffer
	logger, err := New(Options{Level: "error", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("tick")
	if !strings.Contains(buf.String(), "msg=tick") {
		t.Fatalf("expected debug line with DEBUG=1, got %q", buf.String())
	}
}

func TestLineWriterSplitsLines(t *testing.T) {
	var lines []string
	w := &LineWriter{Sink: func(line string) { lines = append(lines, line) }}

	_, _ = w.Write([]byte("first\nsec"))
	_, _ = w.Write([]byte("ond\n\n  third  \n"))

	if len(lines) != 3 || lines[0] != "first" || lines[1] != "second" || lines[2] != "third" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestNewWithSinkMirrorsLines(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	var lines []string
	logger, err := New(Options{Output: &buf, Sink: func(line string) { lines = append(lines, line) }})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("Click session started")

	if len(lines) != 1 || !strings.Contains(lines[0], "Click session started") {
		t.Fatalf("sink lines = %q", lines)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected primary output to be written too")
	}
}
