package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// Dim returns a darker variant of the color, used for fading effects
// and the ghost piece. Colors without a darker variant map to gray.
func (c Color) Dim() Color {
	switch c {
	case ColorBrightRed:
		return ColorRed
	case ColorBrightGreen:
		return ColorGreen
	case ColorBrightYellow:
		return ColorYellow
	case ColorBrightBlue:
		return ColorBlue
	case ColorBrightMagenta:
		return ColorMagenta
	case ColorBrightCyan:
		return ColorCyan
	case ColorBrightWhite:
		return ColorWhite
	case ColorGray:
		return ColorDarkGray
	case ColorDarkGray, ColorDefault:
		return c
	default:
		return ColorGray
	}
}
