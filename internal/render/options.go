// Package render draws formatted answers for terminal output.
package render

// Options configures terminal rendering of answer blocks.
type Options struct {
	// Width is the text column width (default: 80)
	Width int

	// Style is the glamour style used for tables: "dark", "light",
	// "notty", "ascii", "dracula", "auto" or a path to a JSON style file
	Style string

	// TableWrap enables word wrap in table cells
	TableWrap bool

	// Theme colours headings, callouts and strong text
	Theme TUITheme
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:     80,
		Style:     StyleDark,
		TableWrap: true,
		Theme:     GetTUITheme(),
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified table style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithTableWrap returns Options with table wrap enabled/disabled.
func (o Options) WithTableWrap(enabled bool) Options {
	o.TableWrap = enabled
	return o
}

// WithTheme returns Options with the specified colour theme.
func (o Options) WithTheme(theme TUITheme) Options {
	o.Theme = theme
	return o
}

// contentWidth is the usable width, never below minWidth.
func (o Options) contentWidth() int {
	if o.Width < minWidth {
		return minWidth
	}
	return o.Width
}

const minWidth = 20

// Font sizes are pixels in the web shell. The terminal cannot change its
// glyph size, so a larger size narrows the text column instead.
const (
	fontMin      = 12
	fontMax      = 24
	widthPerStep = 8
)

// WidthForFont maps a font size onto a column width within maxWidth. The
// smallest size uses the full width; each 2px step up removes 8 columns.
func WidthForFont(maxWidth, fontSize int) int {
	if fontSize < fontMin {
		fontSize = fontMin
	}
	if fontSize > fontMax {
		fontSize = fontMax
	}
	width := maxWidth - (fontSize-fontMin)/2*widthPerStep
	if width < minWidth {
		width = minWidth
	}
	return width
}
