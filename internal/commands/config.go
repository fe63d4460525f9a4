package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/bharatgpt/internal/config"
	"github.com/diogo/bharatgpt/internal/render"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration",
		Long: `Inspect the bharatgpt configuration.

Settings come from ~/.bharatgpt/config.json, a .env file in the working
directory and environment variables, in increasing order of precedence.
The API key is read from GEMINI_API_KEY and never written to disk.`,
		// A broken config file must not stop these commands from fixing it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}
			g.cfg = cfg
			return nil
		},
	}

	cmd.AddCommand(
		newConfigShowCmd(g),
		newConfigPathCmd(g),
		newConfigInitCmd(g),
		newConfigThemesCmd(),
	)
	return cmd
}

func newConfigShowCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with the API key masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(g.cfg.Redacted(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigPathCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCmd(g *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.path()
			if err != nil {
				return err
			}

			_, err = os.Stat(path)
			switch {
			case err == nil && !force:
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			case err != nil && !errors.Is(err, fs.ErrNotExist):
				return fmt.Errorf("failed to check config file: %w", err)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := config.SaveConfigTo(path, config.DefaultConfig()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List table styles and terminal themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Table styles (markdown.style):")
			for _, s := range render.AvailableStyles() {
				fmt.Fprintf(out, "  %-8s %s\n", s.Name, s.Description)
			}

			fmt.Fprintln(out, "\nTerminal themes (tui_theme):")
			fmt.Fprintf(out, "  %s\n", strings.Join(render.TUIThemeNames(), ", "))
			return nil
		},
	}
}
