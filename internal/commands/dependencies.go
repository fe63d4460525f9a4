package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/bharatgpt/internal/api"
	"github.com/diogo/bharatgpt/internal/chat"
	"github.com/diogo/bharatgpt/internal/config"
	"github.com/diogo/bharatgpt/internal/models"
	"github.com/diogo/bharatgpt/internal/tui"
	"github.com/diogo/bharatgpt/internal/web"
)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the completion client from the loaded configuration.
	NewClient func(cfg config.Config) (chat.Completer, error)

	// RunChat runs the terminal chat until the user quits.
	RunChat func(ctrl *chat.Controller, modelName string, opts ...tui.Option) error

	// Serve runs the web server until ctx is done.
	Serve func(ctx context.Context, srv *web.Server) error

	// Copy writes text to the system clipboard.
	Copy func(text string) error

	// IsTerminal reports whether w is an interactive terminal and its width.
	IsTerminal func(w io.Writer) (width int, ok bool)

	Stdin io.Reader
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: newAPIClient,
		RunChat:   tui.Run,
		Serve: func(ctx context.Context, srv *web.Server) error {
			return srv.ListenAndServe(ctx)
		},
		Copy:       clipboard.WriteAll,
		IsTerminal: terminalWidth,
		Stdin:      os.Stdin,
	}
}

// newAPIClient builds the Gemini client described by cfg
func newAPIClient(cfg config.Config) (chat.Completer, error) {
	opts := []api.ClientOption{
		api.WithModel(models.ModelFromName(cfg.Model)),
		api.WithTimeout(cfg.RequestTimeoutDuration()),
	}
	if cfg.Temperature > 0 {
		opts = append(opts, api.WithTemperature(cfg.Temperature))
	}
	if cfg.MaxOutputTokens > 0 {
		opts = append(opts, api.WithMaxOutputTokens(cfg.MaxOutputTokens))
	}

	client, err := api.NewClient(api.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// terminalWidth reports the column count of w when it is a terminal
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}

	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth, true
	}
	return width, true
}
