package commands

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/diogo/bharatgpt/internal/api"
	"github.com/diogo/bharatgpt/internal/chat"
	"github.com/diogo/bharatgpt/internal/config"
	"github.com/diogo/bharatgpt/internal/tui"
	"github.com/diogo/bharatgpt/internal/web"
)

const testAnswer = "✅ **PM-KISAN** gives ₹6000 a year.\n\n1. Visit pmkisan.gov.in\n2. Register"

// fakeDeps records what the commands hand to the outside world
type fakeDeps struct {
	mock   *api.MockClient
	copied []string

	chatCtrl  *chat.Controller
	chatModel string
	chatOpts  int

	served *web.Server
}

func newFakeDeps(response string) (*Dependencies, *fakeDeps) {
	f := &fakeDeps{mock: api.NewMockClient(response)}
	deps := &Dependencies{
		NewClient: func(cfg config.Config) (chat.Completer, error) {
			return f.mock, nil
		},
		RunChat: func(ctrl *chat.Controller, modelName string, opts ...tui.Option) error {
			f.chatCtrl = ctrl
			f.chatModel = modelName
			f.chatOpts = len(opts)
			return nil
		},
		Serve: func(ctx context.Context, srv *web.Server) error {
			f.served = srv
			return nil
		},
		Copy: func(text string) error {
			f.copied = append(f.copied, text)
			return nil
		},
		IsTerminal: func(io.Writer) (int, bool) {
			return 0, false
		},
	}
	return deps, f
}

type result struct {
	stdout string
	stderr string
	err    error
	home   string
}

// execute runs the command tree with args in an isolated home directory
func execute(t *testing.T, deps *Dependencies, args ...string) result {
	t.Helper()
	return executeEnv(t, deps, map[string]string{"GEMINI_API_KEY": "test-key"}, args...)
}

func executeEnv(t *testing.T, deps *Dependencies, env map[string]string, args ...string) result {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("VITE_GEMINI_API_KEY", "")
	t.Setenv("BHARATGPT_MODEL", "")
	for k, v := range env {
		t.Setenv(k, v)
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(deps)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(home, "config.json")}, args...))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err, home: home}
}
