package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComponentFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, LevelDebug)
	defer SetOutput(&bytes.Buffer{}, LevelInfo)

	ErrorCF("chat", "completion failed", map[string]interface{}{"error": "boom"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}

	if entry["level"] != "error" {
		t.Errorf("level = %v, want error", entry["level"])
	}
	if entry["component"] != "chat" {
		t.Errorf("component = %v, want chat", entry["component"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
	if entry["message"] != "completion failed" {
		t.Errorf("message = %v, want 'completion failed'", entry["message"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, LevelWarn)
	defer SetOutput(&bytes.Buffer{}, LevelInfo)

	DebugCF("web", "hidden", nil)
	InfoC("web", "hidden too")
	WarnCF("web", "shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn to be written, got %q", out)
	}
}

func TestConfigureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bharatgpt.log")

	if err := Configure(Options{Level: LevelInfo, File: path}); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}
	InfoCF("config", "loaded", map[string]interface{}{"model": "gemini-2.0-flash"})
	if err := Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"model":"gemini-2.0-flash"`) {
		t.Errorf("log file missing field, got %q", string(data))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("log file permissions = %o, want 600", perm)
	}

	if err := Configure(Options{}); err != nil {
		t.Fatalf("Configure() discard error: %v", err)
	}
}

func TestConfigureBadPath(t *testing.T) {
	err := Configure(Options{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	if err == nil {
		t.Error("expected error for unwritable log path")
	}
}
