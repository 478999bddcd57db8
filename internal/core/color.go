package core

// Color is a terminal color index used for screen cell foreground and
// background. The platform layer maps each value to an ANSI 256-color code.
type Color uint8

// Palette. ColorDefault leaves the terminal's own color in place.
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
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorNavy
	ColorMaroon
	ColorOlive
	ColorTeal
)
