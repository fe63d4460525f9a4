package chat

import "fmt"

// FontSize is the transcript text size in pixels
type FontSize int

const (
	MinFontSize     FontSize = 12
	MaxFontSize     FontSize = 24
	FontStep        FontSize = 2
	DefaultFontSize FontSize = 16

	// HeadingOffset is added to the body size for heading blocks
	HeadingOffset FontSize = 4
)

// Increment returns the next larger size, clamped at MaxFontSize
func (f FontSize) Increment() FontSize {
	return (f + FontStep).clamp()
}

// Decrement returns the next smaller size, clamped at MinFontSize
func (f FontSize) Decrement() FontSize {
	return (f - FontStep).clamp()
}

func (f FontSize) clamp() FontSize {
	if f < MinFontSize {
		return MinFontSize
	}
	if f > MaxFontSize {
		return MaxFontSize
	}
	return f
}

// Heading returns the size used for heading blocks
func (f FontSize) Heading() FontSize {
	return f + HeadingOffset
}

// AtMin reports whether the size cannot be decreased further
func (f FontSize) AtMin() bool { return f <= MinFontSize }

// AtMax reports whether the size cannot be increased further
func (f FontSize) AtMax() bool { return f >= MaxFontSize }

// Px formats the size as a CSS length
func (f FontSize) Px() string {
	return fmt.Sprintf("%dpx", int(f))
}

// ParseFontSize converts a configured value into a valid size. Zero means
// the default; other values are clamped and snapped down to the step grid.
func ParseFontSize(n int) FontSize {
	if n == 0 {
		return DefaultFontSize
	}
	f := FontSize(n).clamp()
	return f - (f-MinFontSize)%FontStep
}
