package bearrun

import (
	"time"

	"github.com/vovakirdan/bear-run/internal/config"
	"github.com/vovakirdan/bear-run/internal/scheduler"
)

// blackout tracks the randomized visibility-loss windows. It runs on its
// own schedule and never reads the session's progress.
type blackout struct {
	delayMin     time.Duration
	delaySpan    time.Duration
	durationMin  time.Duration
	durationSpan time.Duration

	active    bool
	dueAt     time.Duration // Next start time
	duration  time.Duration // Length of the next (or current) window
	startedAt time.Duration
	timer     scheduler.Timer // Pending end-of-window callback
	count     int
}

func newBlackout(cfg config.BlackoutConfig) blackout {
	return blackout{
		delayMin:     cfg.DelayMin,
		delaySpan:    cfg.DelayMax - cfg.DelayMin,
		durationMin:  cfg.DurationMin,
		durationSpan: cfg.DurationMax - cfg.DurationMin,
	}
}

// scheduleNext draws the next delay, then the next duration, from now.
func (b *blackout) scheduleNext(now time.Duration, rng Source) {
	b.dueAt = now + b.delayMin + fraction(b.delaySpan, rng.Float64())
	b.duration = b.durationMin + fraction(b.durationSpan, rng.Float64())
}

// due reports whether a window should start at now.
func (b *blackout) due(now time.Duration) bool {
	return !b.active && now >= b.dueAt
}

func (b *blackout) begin(now time.Duration, timer scheduler.Timer) {
	b.active = true
	b.startedAt = now
	b.timer = timer
	b.count++
}

// finish closes the window and schedules the next one from the moment
// this one ended.
func (b *blackout) finish(rng Source) {
	b.active = false
	b.timer = nil
	b.scheduleNext(b.startedAt+b.duration, rng)
}

// cancel drops a pending end callback and clears the flag.
func (b *blackout) cancel() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.active = false
}

// fraction returns span scaled by r in [0, 1).
func fraction(span time.Duration, r float64) time.Duration {
	return time.Duration(float64(span) * r)
}
