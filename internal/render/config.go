package render

import (
	"os"

	"github.com/diogo/bharatgpt/internal/config"
)

// OptionsFromConfig builds render options from user configuration.
// GLAMOUR_STYLE overrides the configured table style.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()

	if cfg.Markdown.Style != "" {
		opts.Style = cfg.Markdown.Style
	}
	opts.TableWrap = cfg.Markdown.TableWrap

	if theme, ok := GetTUIThemeByName(cfg.TUITheme); ok {
		opts.Theme = theme
	}

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}
