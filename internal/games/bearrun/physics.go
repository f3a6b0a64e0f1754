package bearrun

import (
	"math"
	"time"
)

// stepCharacter applies one frame of gravity and lands the character on
// the ground line. Grounded is only ever cleared by a jump.
func stepCharacter(c *Character, ground float64) {
	c.VY += c.Gravity
	c.Y += c.VY
	if c.Y >= ground {
		c.Y = ground
		c.VY = 0
		c.Grounded = true
	}
}

// bobOffset is the decorative vertical float of an obstacle at time now.
// It is applied both when drawing and when testing collisions.
func bobOffset(now time.Duration, phase, amplitude float64, period time.Duration) float64 {
	return amplitude * math.Sin(float64(now)/float64(period)+phase)
}

// Overlaps reports whether the character hits an obstacle whose visual top
// edge is obsY. Horizontally it is a strict box overlap. Vertically only the
// character's bottom edge is compared against the obstacle's top, so a
// character that clears the top by any margin is safe.
func Overlaps(c Character, obsX, obsWidth, obsY float64) bool {
	return c.X+c.Width > obsX &&
		c.X < obsX+obsWidth &&
		c.Y > obsY
}

// reachesGoal reports whether the character's front edge has passed the
// goal's left edge.
func reachesGoal(c Character, g Goal) bool {
	return c.X+c.Width > g.X
}

// pruneObstacles drops obstacles fully past the left edge, preserving
// spawn order. A pruned obstacle can never be drawn or hit again.
func pruneObstacles(obstacles []Obstacle) []Obstacle {
	kept := obstacles[:0]
	for _, o := range obstacles {
		if o.X+o.Width >= 0 {
			kept = append(kept, o)
		}
	}
	return kept
}
