// Package core provides the terminal-independent drawing primitives of the
// Bear Run platform. It has no Bubble Tea dependency so the scene can be
// rendered and tested without a terminal.
package core

import "math"

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects reports whether two rects share at least one cell. Empty
// rects intersect nothing.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// RectF is a box in surface pixels.
type RectF struct {
	X, Y, W, H float64
}

// Cells projects the box onto a grid of cellW x cellH pixel cells. Any box
// with a positive area covers at least one cell, so thin sprites stay
// visible on small terminals.
func (r RectF) Cells(cellW, cellH float64) Rect {
	if r.W <= 0 || r.H <= 0 || cellW <= 0 || cellH <= 0 {
		return Rect{}
	}
	x0 := int(math.Floor(r.X / cellW))
	y0 := int(math.Floor(r.Y / cellH))
	x1 := int(math.Ceil((r.X + r.W) / cellW))
	y1 := int(math.Ceil((r.Y + r.H) / cellH))
	return Rect{X: x0, Y: y0, W: max(x1-x0, 1), H: max(y1-y0, 1)}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
