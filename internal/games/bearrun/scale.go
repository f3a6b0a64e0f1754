package bearrun

import "math"

// Size is a width/height pair, either in design units or surface pixels.
type Size struct {
	W, H float64
}

// Scale returns the uniform factor that maps the design resolution onto a
// render surface, preserving the aspect of every constant.
// A zero surface dimension yields 0; callers must pass a real surface.
func Scale(ref, surface Size) float64 {
	return math.Min(surface.W/ref.W, surface.H/ref.H)
}
