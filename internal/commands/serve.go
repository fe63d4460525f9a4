package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diogo/bharatgpt/internal/chat"
	"github.com/diogo/bharatgpt/internal/config"
	"github.com/diogo/bharatgpt/internal/web"
)

func newServeCmd(deps *Dependencies, g *globalOptions) *cobra.Command {
	var (
		addr      string
		rateLimit int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web interface",
		Long: `Serve the BharatGPT web interface and its JSON API.

Each browser gets its own conversation, kept in memory until it has been
idle for the configured session lifetime.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("rate-limit") {
				cfg.RateLimit = rateLimit
			}
			return runServe(cmd, deps, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (default localhost:8080)")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "Questions per minute per session, 0 for no limit")

	return cmd
}

func runServe(cmd *cobra.Command, deps *Dependencies, cfg config.Config) error {
	warnMissingKey(cmd, cfg)

	client, err := deps.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	wc := webConfig(cfg)
	srv, err := web.NewServer(wc, client)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "BharatGPT is running at http://%s (Ctrl+C to stop)\n", wc.Addr)
	return deps.Serve(ctx, srv)
}

// webConfig maps user configuration onto the server's
func webConfig(cfg config.Config) web.Config {
	wc := web.DefaultConfig()
	if cfg.Addr != "" {
		wc.Addr = cfg.Addr
	}
	wc.Model = cfg.Model
	wc.FontSize = chat.ParseFontSize(cfg.FontSize)
	wc.RateLimit = cfg.RateLimit
	wc.SessionTTL = cfg.SessionTTLDuration()
	return wc
}
