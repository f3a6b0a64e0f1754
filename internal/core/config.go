package core

// RuntimeConfig holds the terminal-side settings of a play session.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second
	Seed     int64 // 0 means seed from the clock
	Player   string
}

// Surface pixels per terminal cell. A cell is roughly twice as tall as wide.
const (
	CellW = 8
	CellH = 16
)

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 FPS.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// SurfaceSize returns the virtual pixel surface covered by the screen.
func (c RuntimeConfig) SurfaceSize() (w, h float64) {
	return float64(c.ScreenW * CellW), float64(c.ScreenH * CellH)
}
