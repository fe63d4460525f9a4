package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/bharatgpt/internal/chat"
	"github.com/diogo/bharatgpt/internal/config"
	"github.com/diogo/bharatgpt/internal/logger"
	"github.com/diogo/bharatgpt/internal/render"
)

// askOptions are the flags shared by the root command and ask
type askOptions struct {
	raw    bool
	copy   bool
	file   string
	output string
}

func (o *askOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.raw, "raw", false, "Print the answer text without formatting")
	f.BoolVar(&o.copy, "copy", false, "Copy the answer to the clipboard")
	f.StringVarP(&o.file, "file", "f", "", "Read the question from a file")
	f.StringVarP(&o.output, "output", "o", "", "Save the answer to a file")
}

func newAskCmd(deps *Dependencies, g *globalOptions) *cobra.Command {
	o := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question",
		Long: `Ask one question and print the formatted answer.

The question is taken from the argument, --file, or standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question, ok, err := readQuestion(deps.Stdin, o.file, args)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("question cannot be empty")
			}
			return runAsk(cmd, deps, g.cfg, o, question)
		},
	}
	o.bind(cmd)
	return cmd
}

// readQuestion takes the question from --file, the argument or piped
// stdin, in that order. It reports false when there is none.
func readQuestion(stdin io.Reader, file string, args []string) (string, bool, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	if piped(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}

	return "", false, nil
}

func piped(r io.Reader) bool {
	if r == nil {
		return false
	}
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

// runAsk answers a single question through a fresh controller. A failed
// completion prints the apology like the other shells and exits non-zero.
func runAsk(cmd *cobra.Command, deps *Dependencies, cfg config.Config, o *askOptions, question string) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("question cannot be empty")
	}
	warnMissingKey(cmd, cfg)

	client, err := deps.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctrl := chat.NewController(client,
		chat.WithFontSize(chat.ParseFontSize(cfg.FontSize)),
		chat.WithName("ask"),
	)
	req, err := ctrl.Begin(question)
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	var spin *spinner
	if _, tty := deps.IsTerminal(stderr); tty && !o.raw {
		spin = newSpinner(stderr, "BharatGPT is typing")
		spin.start()
	}

	start := time.Now()
	text, askErr := client.Complete(cmd.Context(), req.Prompt)
	msg, _ := ctrl.Resolve(req, text, askErr)

	if spin != nil {
		if askErr != nil {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess("Done")
		}
	}

	logger.DebugCF("cli", "Answer received", map[string]interface{}{
		"model":    cfg.Model,
		"duration": time.Since(start).Round(time.Millisecond).String(),
		"failed":   askErr != nil,
	})

	if err := printAnswer(stdout, deps, cfg, o.raw, msg.Content); err != nil {
		return err
	}

	if askErr != nil {
		fmt.Fprintln(stderr, formatErrorMessage(askErr, "Could not get an answer"))
		return errors.Join(errReported, askErr)
	}

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(msg.Content+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(stderr, "Answer saved to %s\n", o.output)
	}

	if o.copy || cfg.CopyToClipboard {
		if err := deps.Copy(msg.Content); err != nil {
			logger.WarnCF("cli", "Clipboard copy failed", map[string]interface{}{"error": err.Error()})
			fmt.Fprintln(stderr, "Warning: failed to copy to clipboard")
		} else if !o.raw {
			fmt.Fprintln(stderr, "Copied to clipboard")
		}
	}

	return nil
}

// printAnswer writes text as raw markdown or as rendered blocks sized to
// the terminal
func printAnswer(w io.Writer, deps *Dependencies, cfg config.Config, raw bool, text string) error {
	if raw {
		_, err := fmt.Fprintln(w, text)
		return err
	}

	opts := render.OptionsFromConfig(cfg)
	if width, tty := deps.IsTerminal(w); tty {
		opts = opts.WithWidth(render.WidthForFont(width, int(chat.ParseFontSize(cfg.FontSize))))
	} else {
		opts = opts.WithWidth(defaultWidth).WithStyle(render.StyleNoTTY)
	}

	out, err := render.Answer(text, opts)
	if err != nil {
		return fmt.Errorf("failed to render answer: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
