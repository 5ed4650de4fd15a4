package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Colors available to scenes. ColorDefault leaves the terminal's own
// foreground untouched.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightWhite
)

// String returns the lowercase name of the color.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorOrange:
		return "orange"
	case ColorGray:
		return "gray"
	case ColorBrightRed:
		return "bright-red"
	case ColorBrightGreen:
		return "bright-green"
	case ColorBrightWhite:
		return "bright-white"
	default:
		return "unknown"
	}
}
