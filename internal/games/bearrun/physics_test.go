package bearrun

import (
	"testing"
	"time"
)

func TestScale(t *testing.T) {
	ref := Size{W: 800, H: 200}
	tests := []struct {
		name    string
		surface Size
		want    float64
	}{
		{"design resolution", Size{W: 800, H: 200}, 1},
		{"uniform upscale", Size{W: 1920, H: 480}, 2.4},
		{"height bound", Size{W: 800, H: 400}, 1},
		{"width bound", Size{W: 400, H: 400}, 0.5},
		{"zero surface", Size{W: 0, H: 200}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scale(ref, tt.surface); !approx(got, tt.want) {
				t.Errorf("Scale(%v) = %v, expected %v", tt.surface, got, tt.want)
			}
		})
	}
}

func TestJumpArc(t *testing.T) {
	const ground = 187.5
	c := Character{Y: ground, Jump: -10, Gravity: 0.5, Grounded: true}

	c.VY = c.Jump
	c.Grounded = false

	landed := 0
	for n := 1; n <= 60; n++ {
		stepCharacter(&c, ground)
		if c.Grounded {
			landed = n
			break
		}
		if want := -10 + 0.5*float64(n); c.VY != want {
			t.Fatalf("step %d: vy = %v, expected %v", n, c.VY, want)
		}
		if n == 20 && c.Y != ground-95 {
			t.Errorf("apex at step 20: y = %v, expected %v", c.Y, ground-95)
		}
	}

	// Apex (vy = 0) at step 20, back on the ground at step 39
	if landed != 39 {
		t.Errorf("landed at step %d, expected 39", landed)
	}
	if c.Y != ground || c.VY != 0 {
		t.Errorf("after landing: y=%v vy=%v, expected y=%v vy=0", c.Y, c.VY, ground)
	}
}

func TestStepCharacterStaysGrounded(t *testing.T) {
	c := Character{Y: 100, Gravity: 0.5, Grounded: true}
	for range 10 {
		stepCharacter(&c, 100)
	}
	if c.Y != 100 || c.VY != 0 || !c.Grounded {
		t.Errorf("grounded character drifted: %+v", c)
	}
}

func TestOverlaps(t *testing.T) {
	c := Character{X: 90, Y: 50, Width: 44}

	if !Overlaps(c, 100, 30, 40) {
		t.Error("expected a hit: x ranges overlap and y 50 > 40")
	}

	moved := c
	moved.X = 200
	if Overlaps(moved, 100, 30, 40) {
		t.Error("expected a miss once the character is past the obstacle")
	}
	// The predicate is pure
	if !Overlaps(c, 100, 30, 40) {
		t.Error("same inputs must give the same answer")
	}

	tests := []struct {
		name string
		c    Character
		obsX float64
		want bool
	}{
		{"front edge touching", Character{X: 56, Y: 50, Width: 44}, 100, false},
		{"back edge touching", Character{X: 130, Y: 50, Width: 44}, 100, false},
		{"bottom level with top", Character{X: 90, Y: 40, Width: 44}, 100, false},
		{"clears the top", Character{X: 90, Y: 39, Width: 44}, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.c, tt.obsX, 30, 40); got != tt.want {
				t.Errorf("Overlaps() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestBobOffset(t *testing.T) {
	if got := bobOffset(0, 0, 2, 100*time.Millisecond); got != 0 {
		t.Errorf("bob at t=0 phase=0 = %v, expected 0", got)
	}
	for _, now := range []time.Duration{0, 37 * time.Millisecond, time.Second, 90 * time.Second} {
		got := bobOffset(now, 1.3, 2, 100*time.Millisecond)
		if got < -2 || got > 2 {
			t.Errorf("bob at %v = %v, outside [-2, 2]", now, got)
		}
	}
}

func TestPruneObstaclesKeepsOrder(t *testing.T) {
	obstacles := []Obstacle{
		{X: -40, Width: 30, Kind: 0},
		{X: -30, Width: 30, Kind: 1},
		{X: 10, Width: 30, Kind: 2},
		{X: -100, Width: 30, Kind: 0},
		{X: 500, Width: 30, Kind: 1},
	}

	got := pruneObstacles(obstacles)

	want := []float64{-30, 10, 500}
	if len(got) != len(want) {
		t.Fatalf("kept %d obstacles, expected %d", len(got), len(want))
	}
	for i, x := range want {
		if got[i].X != x {
			t.Errorf("kept[%d].X = %v, expected %v", i, got[i].X, x)
		}
	}
}

func TestReachesGoal(t *testing.T) {
	c := Character{X: 50, Width: 44}
	if reachesGoal(c, Goal{X: 94}) {
		t.Error("touching edges should not count as reaching the goal")
	}
	if !reachesGoal(c, Goal{X: 93.9}) {
		t.Error("expected the goal to be reached")
	}
}
