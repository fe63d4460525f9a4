package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/bharatgpt/internal/format"
)

// TUITheme defines the colours of the terminal interface and of rendered
// answers.
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors. Callouts use Primary, Secondary, Accent and Info.
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Info      lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// CalloutColor returns the colour of a callout kind. Definition and dates
// share the primary colour.
func (t TUITheme) CalloutColor(kind format.CalloutKind) lipgloss.Color {
	switch kind {
	case format.Eligibility:
		return t.Secondary
	case format.Benefits:
		return t.Accent
	case format.Procedure:
		return t.Info
	default:
		return t.Primary
	}
}

// Built-in TUI themes
var (
	// BharatTheme uses the saffron, green and navy of the national flag
	BharatTheme = TUITheme{
		Name:        "bharat",
		Description: "Bharat - Saffron, green and navy on a dark background",

		Background: lipgloss.Color("#14161f"),
		Surface:    lipgloss.Color("#1f2230"),
		Border:     lipgloss.Color("#3a3f55"),

		Primary:   lipgloss.Color("#FF9933"), // Saffron
		Secondary: lipgloss.Color("#138808"), // India green
		Accent:    lipgloss.Color("#6f7bf7"), // Navy, lifted for dark terminals
		Info:      lipgloss.Color("#4a90e2"),
		Warning:   lipgloss.Color("#f5c542"),
		Error:     lipgloss.Color("#e5534b"),

		Text:     lipgloss.Color("#e8e8ef"),
		TextDim:  lipgloss.Color("#8a8fa8"),
		TextMute: lipgloss.Color("#4b5068"),
	}

	// TokyoNightTheme is based on the Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#ff9e64"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Info:      lipgloss.Color("#7aa2f7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// NordTheme is based on the Nord color palette
	NordTheme = TUITheme{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",

		Background: lipgloss.Color("#2e3440"),
		Surface:    lipgloss.Color("#3b4252"),
		Border:     lipgloss.Color("#4c566a"),

		Primary:   lipgloss.Color("#d08770"), // Aurora orange
		Secondary: lipgloss.Color("#a3be8c"), // Aurora green
		Accent:    lipgloss.Color("#b48ead"), // Aurora purple
		Info:      lipgloss.Color("#88c0d0"), // Frost
		Warning:   lipgloss.Color("#ebcb8b"),
		Error:     lipgloss.Color("#bf616a"),

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),
	}

	// DraculaTheme is based on the Dracula color palette
	DraculaTheme = TUITheme{
		Name:        "dracula",
		Description: "Dracula - Dark theme with vibrant colors",

		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#44475a"),
		Border:     lipgloss.Color("#6272a4"),

		Primary:   lipgloss.Color("#ffb86c"), // Orange
		Secondary: lipgloss.Color("#50fa7b"), // Green
		Accent:    lipgloss.Color("#bd93f9"), // Purple
		Info:      lipgloss.Color("#8be9fd"), // Cyan
		Warning:   lipgloss.Color("#f1fa8c"),
		Error:     lipgloss.Color("#ff5555"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),
	}
)

// currentTUITheme holds the currently active TUI theme
var currentTUITheme = BharatTheme

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if ok {
		currentTUITheme = theme
		return true
	}
	return false
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		BharatTheme,
		TokyoNightTheme,
		NordTheme,
		DraculaTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
