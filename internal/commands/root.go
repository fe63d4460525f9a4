// Package commands provides the bharatgpt command-line interface.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/bharatgpt/internal/config"
	"github.com/diogo/bharatgpt/internal/logger"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

const defaultWidth = 80

// errReported marks failures already shown to the user
var errReported = errors.New("error already reported")

// globalOptions holds the persistent flags and the configuration they produce
type globalOptions struct {
	configPath string
	model      string
	logLevel   string
	logFile    string
	verbose    bool

	cfg config.Config
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}

	g := &globalOptions{}
	ask := &askOptions{}

	cmd := &cobra.Command{
		Use:   "bharatgpt [question]",
		Short: "Ask about Indian government schemes",
		Long: `bharatgpt answers questions about Indian government schemes in Hindi
or English using Google Gemini. Answers are organised into eligibility,
benefits and application steps.

Set GEMINI_API_KEY before use.

Examples:
  bharatgpt "What is PM-KISAN?"        Ask a single question
  bharatgpt chat                       Start interactive chat
  bharatgpt serve                      Serve the web interface
  bharatgpt -f question.txt            Read the question from a file
  echo "PMAY क्या है?" | bharatgpt      Read the question from stdin
  bharatgpt "Ayushman Bharat" -o a.md  Save the answer to a file`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "bharatgpt %s (built %s)\n", Version, BuildTime)
				return nil
			}

			question, ok, err := readQuestion(deps.Stdin, ask.file, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}
			return runAsk(cmd, deps, g.cfg, ask, question)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default ~/.bharatgpt/config.json)")
	pf.StringVarP(&g.model, "model", "m", "", "Model to use (e.g., gemini-2.0-flash)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&g.logFile, "log-file", "", "Append JSON logs to this file")
	pf.BoolVar(&g.verbose, "verbose", false, "Log at debug level to stderr")

	cmd.Flags().BoolP("version", "v", false, "Show version and exit")
	ask.bind(cmd)

	cmd.AddCommand(
		newAskCmd(deps, g),
		newChatCmd(deps, g),
		newServeCmd(deps, g),
		newPromptCmd(),
		newConfigCmd(g),
	)

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(NewDependencies()).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		}
		os.Exit(1)
	}
}

// load reads the configuration from --config or the default locations
func (g *globalOptions) load() (config.Config, error) {
	if g.configPath != "" {
		return config.LoadConfigFrom(g.configPath, ".env")
	}
	return config.LoadConfig()
}

// path returns the config file in use
func (g *globalOptions) path() (string, error) {
	if g.configPath != "" {
		return g.configPath, nil
	}
	return config.GetConfigPath()
}

// setup loads the configuration, applies flag overrides and configures logging
func (g *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	if g.model != "" {
		cfg.Model = g.model
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.logFile != "" {
		cfg.LogFile = g.logFile
	}
	if g.verbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}
	g.cfg = cfg

	return logger.Configure(logger.Options{
		Level:   logger.Level(cfg.LogLevel),
		File:    cfg.LogFile,
		Console: consoleLogging(cmd, g.verbose),
	})
}

// consoleLogging decides whether logs go to stderr. The chat owns the
// terminal, so it only ever logs to a file.
func consoleLogging(cmd *cobra.Command, verbose bool) bool {
	switch cmd.Name() {
	case "chat":
		return false
	case "serve":
		return true
	default:
		return verbose
	}
}

// warnMissingKey tells the user early that every answer will fail
func warnMissingKey(cmd *cobra.Command, cfg config.Config) {
	if cfg.HasAPIKey() {
		return
	}
	logger.WarnCF("cli", "No API key configured", map[string]interface{}{"command": cmd.Name()})
	fmt.Fprintln(cmd.ErrOrStderr(), "Warning: GEMINI_API_KEY is not set; answers will fail until it is configured")
}
