package bearrun

import (
	"fmt"
	"time"
)

// ObstacleView is an obstacle as it should be drawn this frame, with the
// bob already applied to Y.
type ObstacleView struct {
	X      float64
	Y      float64 // Top edge
	Width  float64
	Height float64
	Kind   int
	Name   string
}

// Snapshot is the read-only view a renderer consumes each frame.
type Snapshot struct {
	Phase      Phase
	Reason     EndReason
	Generation uint64
	Frame      int

	Surface Size
	Scale   float64
	Ground  float64

	Character   Character
	Obstacles   []ObstacleView
	Goal        Goal
	GoalVisible bool
	BlackedOut  bool

	Elapsed          time.Duration
	Remaining        time.Duration // Real time left before the timeout
	DisplayRemaining time.Duration // What the on-screen clock shows
	Clock            string        // DisplayRemaining formatted for the HUD
	Speed            float64
	Spawned          int
	Jumps            int
}

// Snapshot captures the session at the latest tick.
func (s *Session) Snapshot() Snapshot {
	w := s.w

	obstacles := make([]ObstacleView, len(w.obstacles))
	for i, o := range w.obstacles {
		obstacles[i] = ObstacleView{
			X:      o.X,
			Y:      s.obstacleTop(o, w.now),
			Width:  o.Width,
			Height: o.Height,
			Kind:   o.Kind,
			Name:   w.spawner.kindName(o.Kind),
		}
	}

	display := s.displayRemaining()
	return Snapshot{
		Phase:            s.phase,
		Reason:           s.reason,
		Generation:       s.gen,
		Frame:            w.frames,
		Surface:          s.surface,
		Scale:            s.scale,
		Ground:           s.ground,
		Character:        w.character,
		Obstacles:        obstacles,
		Goal:             w.goal,
		GoalVisible:      w.goalRevealed,
		BlackedOut:       w.blackout.active,
		Elapsed:          w.elapsed,
		Remaining:        s.remaining(),
		DisplayRemaining: display,
		Clock:            FormatClock(display),
		Speed:            w.speed,
		Spawned:          w.spawner.spawned,
		Jumps:            w.jumps,
	}
}

func (s *Session) remaining() time.Duration {
	return max(0, s.cfg.Timing.Total-s.w.elapsed)
}

// displayRemaining is the countdown shown to the player. It deliberately
// runs DisplayGrace behind the real timeout, so the HUD reads 0.00 before
// the session actually ends. This skew is product behavior; the real
// timeout uses remaining().
func (s *Session) displayRemaining() time.Duration {
	return max(0, s.cfg.Timing.Total-s.w.elapsed-s.cfg.Timing.DisplayGrace)
}

// FormatClock renders a countdown as "TIME <seconds>.<centiseconds>".
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	centis := int64((d % time.Second) / (10 * time.Millisecond))
	return fmt.Sprintf("TIME %d.%02d", seconds, centis)
}

// Result summarizes a session for the run ledger.
type Result struct {
	Phase   Phase
	Reason  EndReason
	Elapsed time.Duration
	Spawned int
	Pairs   int
	Jumps   int
}

// Result returns the session's outcome so far.
func (s *Session) Result() Result {
	return Result{
		Phase:   s.phase,
		Reason:  s.reason,
		Elapsed: s.w.elapsed,
		Spawned: s.w.spawner.spawned,
		Pairs:   s.w.spawner.pairs,
		Jumps:   s.w.jumps,
	}
}
