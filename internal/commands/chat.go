package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/bharatgpt/internal/chat"
	"github.com/diogo/bharatgpt/internal/config"
	"github.com/diogo/bharatgpt/internal/history"
	"github.com/diogo/bharatgpt/internal/logger"
	"github.com/diogo/bharatgpt/internal/render"
	"github.com/diogo/bharatgpt/internal/tui"
)

func newChatCmd(deps *Dependencies, g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with BharatGPT.

Enter sends a question, Ctrl+Up and Ctrl+Down change the text size,
Ctrl+Y copies the last answer and Ctrl+S exports the conversation.
Type 'exit' or press Esc to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, g.cfg)
		},
	}
}

func runChat(cmd *cobra.Command, deps *Dependencies, cfg config.Config) error {
	warnMissingKey(cmd, cfg)

	client, err := deps.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	exportDir, err := config.GetExportDir(cfg)
	if err != nil {
		return err
	}
	store, err := history.NewStore(exportDir)
	if err != nil {
		return err
	}

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown theme %q, using the default\n", cfg.TUITheme)
	}
	tui.UpdateTheme()

	ctrl := chat.NewController(client,
		chat.WithFontSize(chat.ParseFontSize(cfg.FontSize)),
		chat.WithName("terminal"),
	)

	logger.InfoCF("cli", "Starting chat", map[string]interface{}{
		"model":   cfg.Model,
		"exports": store.Dir(),
	})

	return deps.RunChat(ctrl, cfg.Model,
		tui.WithContext(cmd.Context()),
		tui.WithRenderOptions(render.OptionsFromConfig(cfg)),
		tui.WithExporter(store),
		tui.WithClipboard(deps.Copy),
	)
}
