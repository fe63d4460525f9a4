package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/bharatgpt/internal/config"
)

func TestConfigShow_MasksKey(t *testing.T) {
	deps, _ := newFakeDeps(testAnswer)
	key := "AIzaSyExampleKey0123456789"

	res := executeEnv(t, deps, map[string]string{"GEMINI_API_KEY": key}, "config", "show")
	if res.err != nil {
		t.Fatalf("Execute failed: %v", res.err)
	}

	if strings.Contains(res.stdout, key) {
		t.Error("API key printed in full")
	}

	var shown config.Config
	if err := json.Unmarshal([]byte(res.stdout), &shown); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, res.stdout)
	}
	if !strings.HasPrefix(shown.APIKey, "AIza") || !strings.HasSuffix(shown.APIKey, "6789") {
		t.Errorf("APIKey = %q, want masked key", shown.APIKey)
	}
	if shown.FontSize != 16 {
		t.Errorf("FontSize = %d, want 16", shown.FontSize)
	}
}

func TestConfigShow_BrokenFile(t *testing.T) {
	deps, _ := newFakeDeps(testAnswer)
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HOME", dir)
	cmd := NewRootCmd(deps)
	var stdout, stderr strings.Builder
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", path, "config", "show"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show should survive a broken file: %v", err)
	}
	if !strings.Contains(stderr.String(), "Warning") {
		t.Errorf("stderr = %q, want a warning", stderr.String())
	}
}

func TestConfigPath(t *testing.T) {
	deps, _ := newFakeDeps(testAnswer)

	res := execute(t, deps, "config", "path")
	if res.err != nil {
		t.Fatalf("Execute failed: %v", res.err)
	}
	if want := filepath.Join(res.home, "config.json") + "\n"; res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestConfigInit(t *testing.T) {
	deps, _ := newFakeDeps(testAnswer)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	run := func(args ...string) error {
		cmd := NewRootCmd(deps)
		cmd.SetOut(&strings.Builder{})
		cmd.SetErr(&strings.Builder{})
		cmd.SetArgs(append([]string{"--config", path, "config", "init"}, args...))
		return cmd.Execute()
	}

	t.Setenv("HOME", dir)
	t.Setenv("GEMINI_API_KEY", "secret-key-value")

	if err := run(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if strings.Contains(string(data), "secret-key-value") {
		t.Error("API key must never be written to disk")
	}

	var saved config.Config
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if saved.RateLimit != 20 || saved.SessionTTL != 60 {
		t.Errorf("saved = %+v, want defaults", saved)
	}

	if err := run(); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init err = %v, want already exists", err)
	}
	if err := run("--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}
}

func TestConfigThemes(t *testing.T) {
	deps, _ := newFakeDeps(testAnswer)

	res := execute(t, deps, "config", "themes")
	if res.err != nil {
		t.Fatalf("Execute failed: %v", res.err)
	}
	for _, want := range []string{"dark", "notty", "bharat", "dracula"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}
