package core

// Color is the foreground colour of a screen cell, rendered by the platform
// as an ANSI 256-colour code.
type Color uint8

// Palette shared by the game renderer and the platform.
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
	ColorDim
	ColorBrightWhite
)
