package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase INFO", "INFO", slog.LevelInfo},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"uppercase TRACE", "TRACE", LevelTrace},
		{"mixed case Debug", "Debug", slog.LevelDebug},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"info level", "info"},
		{"debug level", "debug"},
		{"trace level", "trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)
			if logger == nil {
				t.Fatal("NewLogger returned nil")
			}
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logAtDebug bool
		logAtInfo  bool
	}{
		{"info filters debug", "info", false, true},
		{"debug passes debug", "debug", true, true},
		{"trace passes debug", "trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Debug("reaction rate resolved")
			hasDebug := strings.Contains(buf.String(), "reaction rate resolved")
			if hasDebug != tt.logAtDebug {
				t.Errorf("debug message visible = %v, want %v (buf: %q)", hasDebug, tt.logAtDebug, buf.String())
			}

			buf.Reset()
			logger.Info("glycolysis complete")
			hasInfo := strings.Contains(buf.String(), "glycolysis complete")
			if hasInfo != tt.logAtInfo {
				t.Errorf("info message visible = %v, want %v (buf: %q)", hasInfo, tt.logAtInfo, buf.String())
			}
		})
	}
}

func TestLevelTrace(t *testing.T) {
	// Trace should be below debug (more verbose)
	if LevelTrace >= slog.LevelDebug {
		t.Errorf("LevelTrace (%d) should be less than LevelDebug (%d)", LevelTrace, slog.LevelDebug)
	}
}

func TestNewEventLogger_InfoLevel(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "info")

	// At info level, event logger should be nil
	if el != nil {
		t.Error("expected nil EventLogger at info level")
	}

	// Nil logger should still be safe to use
	el.Log(map[string]any{"kind": "limit_enforced"})

	path := filepath.Join(dir, "events.jsonl")
	if _, err := os.Stat(path); err == nil {
		t.Error("events.jsonl should not exist at info level")
	}
}

func TestNewEventLogger_DebugLevel(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "debug")
	defer el.Close()

	el.Log(map[string]any{"kind": "limit_enforced", "species": "glucose", "excess": 2.5})

	path := filepath.Join(dir, "events.jsonl")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read events.jsonl: %v", err)
	}

	// Parse the JSONL line
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("failed to parse JSONL entry: %v", err)
	}

	if entry["kind"] != "limit_enforced" {
		t.Errorf("kind = %v, want limit_enforced", entry["kind"])
	}
	if entry["excess"] != 2.5 {
		t.Errorf("excess = %v, want 2.5", entry["excess"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected 'time' field in event log entry")
	}
}

func TestNewEventLogger_TraceLevel(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "trace")
	defer el.Close()

	el.Log(map[string]any{"kind": "conservation_adjustment"})

	path := filepath.Join(dir, "events.jsonl")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read events.jsonl: %v", err)
	}

	if !strings.Contains(string(data), "conservation_adjustment") {
		t.Error("expected conservation_adjustment in events.jsonl")
	}
}

func TestNewEventLogger_MultipleWrites(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "debug")
	defer el.Close()

	el.Log(map[string]any{"kind": "first"})
	el.Log(map[string]any{"kind": "second"})

	path := filepath.Join(dir, "events.jsonl")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read events.jsonl: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), string(data))
	}

	var first, second map[string]any
	json.Unmarshal([]byte(lines[0]), &first)
	json.Unmarshal([]byte(lines[1]), &second)

	if first["kind"] != "first" {
		t.Errorf("first kind = %v, want 'first'", first["kind"])
	}
	if second["kind"] != "second" {
		t.Errorf("second kind = %v, want 'second'", second["kind"])
	}
}

func TestEventLogger_NilSafety(t *testing.T) {
	// nil EventLogger should not panic
	var el *EventLogger
	el.Log(map[string]any{"kind": "should_not_panic"})
	el.Close()
}

func TestEventLogger_DoesNotMutateCallerMap(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "debug")
	defer el.Close()

	event := map[string]any{"kind": "limit_enforced"}
	el.Log(event)

	if _, hasTime := event["time"]; hasTime {
		t.Error("Log() should not mutate caller's map, but 'time' was injected")
	}
}

func TestEventLogger_LogAfterClose(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "debug")

	el.Log(map[string]any{"kind": "before_close"})
	el.Close()

	// Should be a no-op, not panic or error
	el.Log(map[string]any{"kind": "after_close"})
}

func TestNewEventLogger_CreatesDir(t *testing.T) {
	base := t.TempDir()
	nestedDir := filepath.Join(base, "sub", "dir")

	el := NewEventLogger(nestedDir, "debug")
	if el == nil {
		t.Fatal("expected non-nil EventLogger when dir needs creation")
	}
	defer el.Close()

	el.Log(map[string]any{"kind": "dir_create_test"})

	path := filepath.Join(nestedDir, "events.jsonl")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("events.jsonl should exist after dir creation: %v", err)
	}
}

func TestEventLogger_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "debug")
	defer el.Close()

	el.Log(map[string]any{"kind": "perm_test"})

	path := filepath.Join(dir, "events.jsonl")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat events.jsonl: %v", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}
}
