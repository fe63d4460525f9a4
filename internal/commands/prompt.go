package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apierrors "github.com/diogo/bharatgpt/internal/errors"
	"github.com/diogo/bharatgpt/internal/prompt"
)

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <question>",
		Short: "Print the prompt sent to the model for a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(args[0])
			if question == "" {
				return apierrors.ErrEmptyInput
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt.Build(question))
			return nil
		},
	}
}
