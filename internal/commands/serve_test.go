package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/diogo/bharatgpt/internal/chat"
	"github.com/diogo/bharatgpt/internal/config"
)

func TestServe_StartsServer(t *testing.T) {
	deps, fake := newFakeDeps(testAnswer)

	res := execute(t, deps, "serve", "--addr", "127.0.0.1:9090")
	if res.err != nil {
		t.Fatalf("Execute failed: %v", res.err)
	}

	if fake.served == nil {
		t.Fatal("Serve was not called")
	}
	if !strings.Contains(res.stdout, "http://127.0.0.1:9090") {
		t.Errorf("stdout = %q, want the address", res.stdout)
	}
}

func TestWebConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Addr = "0.0.0.0:3000"
	cfg.Model = "gemini-2.5-flash"
	cfg.FontSize = 30
	cfg.RateLimit = 5
	cfg.SessionTTL = 30

	wc := webConfig(cfg)

	if wc.Addr != "0.0.0.0:3000" {
		t.Errorf("Addr = %q", wc.Addr)
	}
	if wc.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", wc.Model)
	}
	if wc.FontSize != chat.MaxFontSize {
		t.Errorf("FontSize = %d, want %d", wc.FontSize, chat.MaxFontSize)
	}
	if wc.RateLimit != 5 {
		t.Errorf("RateLimit = %d, want 5", wc.RateLimit)
	}
	if wc.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", wc.SessionTTL)
	}
}

func TestWebConfig_EmptyAddrKeepsDefault(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Addr = ""

	if got := webConfig(cfg).Addr; got != "localhost:8080" {
		t.Errorf("Addr = %q, want localhost:8080", got)
	}
}
