package core

// Color is the foreground color of a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

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
	ColorBrown
	ColorGray
	ColorBlack
)

// ParseColor maps a color name as written in config files to a Color.
// Unknown names return ColorDefault and false.
func ParseColor(name string) (Color, bool) {
	switch name {
	case "default", "":
		return ColorDefault, true
	case "red":
		return ColorRed, true
	case "green":
		return ColorGreen, true
	case "yellow":
		return ColorYellow, true
	case "blue":
		return ColorBlue, true
	case "magenta", "purple":
		return ColorMagenta, true
	case "cyan":
		return ColorCyan, true
	case "white":
		return ColorWhite, true
	case "bright_red":
		return ColorBrightRed, true
	case "bright_green":
		return ColorBrightGreen, true
	case "bright_yellow":
		return ColorBrightYellow, true
	case "bright_blue":
		return ColorBrightBlue, true
	case "brown":
		return ColorBrown, true
	case "gray", "grey":
		return ColorGray, true
	case "black":
		return ColorBlack, true
	}
	return ColorDefault, false
}
