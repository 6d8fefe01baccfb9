package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for arena elements.
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
	ColorBrown
)

// teamPalette maps the team hex colors to terminal colors.
var teamPalette = map[string]Color{
	"#e74c3c": ColorBrightRed,
	"#3498db": ColorBrightBlue,
	"#2ecc71": ColorBrightGreen,
	"#f1c40f": ColorBrightYellow,
}

// ColorForHex returns the terminal color for a team hex color.
// Unknown colors map to ColorMagenta.
func ColorForHex(hex string) Color {
	if c, ok := teamPalette[strings.ToLower(hex)]; ok {
		return c
	}
	return ColorMagenta
}
