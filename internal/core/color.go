package core

// Color is the foreground color of a screen cell. The terminal layer maps
// it to an ANSI 256-color style.
type Color uint8

// Palette used by the Bear Run scene.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorBrown  // Character
	ColorOrange // Crates
	ColorGray   // Rocks, ground texture
	ColorBlack  // Blackout fill
)
