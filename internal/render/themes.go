package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Table styles understood by glamour
const (
	StyleDark    = "dark"
	StyleLight   = "light"
	StyleDracula = "dracula"
	StyleNoTTY   = "notty"
	StyleASCII   = "ascii"
	StyleAuto    = "auto"
)

// IsBuiltinStyle returns true if the style ships with glamour.
func IsBuiltinStyle(style string) bool {
	switch style {
	case StyleDark, StyleLight, StyleDracula, StyleNoTTY, StyleASCII, StyleAuto:
		return true
	default:
		return false
	}
}

// styleOption selects how glamour loads style. Unknown names are treated
// as a JSON style file when one exists, otherwise the dark style is used.
func styleOption(style string) glamour.TermRendererOption {
	switch {
	case style == "" || style == StyleDark:
		return glamour.WithStandardStyle(StyleDark)
	case style == StyleAuto:
		return glamour.WithAutoStyle()
	case IsBuiltinStyle(style):
		return glamour.WithStandardStyle(style)
	case strings.HasSuffix(style, ".json"):
		if _, err := os.Stat(style); err == nil {
			return glamour.WithStylePath(style)
		}
	}
	return glamour.WithStandardStyle(StyleDark)
}

// StyleInfo contains information about a table style for display purposes.
type StyleInfo struct {
	Name        string
	Description string
}

// AvailableStyles returns the built-in table styles.
func AvailableStyles() []StyleInfo {
	return []StyleInfo{
		{Name: StyleDark, Description: "Dark theme (default)"},
		{Name: StyleLight, Description: "Light theme for bright terminals"},
		{Name: StyleDracula, Description: "Dracula color scheme"},
		{Name: StyleAuto, Description: "Dark or light, detected from the terminal"},
		{Name: StyleNoTTY, Description: "Plain text (no styling)"},
		{Name: StyleASCII, Description: "ASCII-only output"},
	}
}

// StyleNames returns just the style names for selection.
func StyleNames() []string {
	styles := AvailableStyles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.Name
	}
	return names
}
