package core

// Color is a logical foreground color for a screen cell. The platform
// decides how each one is drawn.
type Color uint8

const (
	ColorDefault Color = iota

	// Discs
	ColorRed
	ColorYellow
	ColorBrightRed // winning line
	ColorBrightYellow

	// Board and text
	ColorBlue
	ColorBrightBlue
	ColorWhite
	ColorGray
	ColorOrange

	// Maze
	ColorBrightGreen
	ColorMagenta // pursuer
)
