package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"ERROR":   slog.LevelError,
		" info ":  slog.LevelInfo,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf)

	logger.Info("hello", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line: %v", err)
	}
	if entry["msg"] != "hello" {
		t.Fatalf("expected msg field, got %v", entry["msg"])
	}
	if entry["key"] != "value" {
		t.Fatalf("expected attr carried, got %v", entry["key"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("error", &buf)

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info suppressed at error level, got %q", buf.String())
	}

	logger.Error("kept")
	if buf.Len() == 0 {
		t.Fatal("expected error line emitted")
	}
}
