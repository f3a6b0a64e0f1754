package bearrun

// Character is the player-controlled runner. Y is the bottom edge of the
// sprite; larger Y is lower on screen and the ground line is the largest Y
// the character can reach.
type Character struct {
	X        float64
	Y        float64
	VY       float64
	Width    float64
	Height   float64
	Jump     float64 // Impulse applied to VY on jump (negative = up)
	Gravity  float64
	Grounded bool
}

// Top returns the y-coordinate of the character's top edge.
func (c Character) Top() float64 {
	return c.Y - c.Height
}

// Obstacle is a ground obstacle scrolling toward the character.
// BaseY is the top edge without the decorative bob.
type Obstacle struct {
	X      float64
	BaseY  float64
	Phase  float64 // Bob phase in radians
	Width  float64
	Height float64
	Kind   int // Index into the obstacle catalog
}

// Goal is the finish marker. It sits on the ground line.
type Goal struct {
	X      float64
	Y      float64 // Top edge
	Width  float64
	Height float64
}

// obstacleKind is a catalog entry with its size already scaled.
type obstacleKind struct {
	name   string
	width  float64
	height float64
}
