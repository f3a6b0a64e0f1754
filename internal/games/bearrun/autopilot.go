package bearrun

import (
	"time"

	"github.com/vovakirdan/bear-run/internal/scheduler"
)

// Autopilot is a simple jump policy used by headless simulation and demos.
// It jumps when the nearest obstacle ahead is within LeadFrames frames of
// travel at the current speed.
type Autopilot struct {
	LeadFrames float64
}

// DefaultAutopilot returns a policy tuned for the default jump arc.
func DefaultAutopilot() Autopilot {
	return Autopilot{LeadFrames: 8}
}

// ShouldJump reports whether the policy wants to jump on this snapshot.
func (a Autopilot) ShouldJump(snap Snapshot) bool {
	c := snap.Character
	if snap.Phase != PhaseRunning || !c.Grounded {
		return false
	}

	front := c.X + c.Width
	reach := a.LeadFrames * snap.Speed
	for _, o := range snap.Obstacles {
		gap := o.X - front
		if gap >= 0 && gap <= reach {
			return true
		}
	}
	return false
}

// Drive runs the policy against s on every frame of sched, after the
// session's own tick. done is called once with the result when the session
// ends; the driver then stops requesting frames.
func (a Autopilot) Drive(s *Session, sched scheduler.Scheduler, done func(Result)) {
	var step scheduler.TickFunc
	step = func(time.Duration) {
		if s.Phase().Over() {
			if done != nil {
				done(s.Result())
			}
			return
		}
		if a.ShouldJump(s.Snapshot()) {
			s.RequestJump()
		}
		sched.RequestTick(step)
	}
	sched.RequestTick(step)
}
