// Package scheduler provides the frame and timer sources that drive a game
// session. A session never loops on its own: it asks for the next frame with
// RequestTick and arms one-shot timers with After. Every implementation here
// delivers ticks and timer callbacks from a single goroutine, so the session
// they drive needs no locking.
package scheduler

import "time"

// TickFunc receives the monotonic timestamp of a frame, measured from the
// scheduler's origin.
type TickFunc func(now time.Duration)

// Scheduler is the frame-scheduling primitive a session runs on.
type Scheduler interface {
	// RequestTick asks for fn to run once on the next frame.
	RequestTick(fn TickFunc)

	// After runs fn once, d after the current time. The returned Timer
	// can cancel it.
	After(d time.Duration, fn func()) Timer
}

// Timer is a handle to a pending After callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was already stopped.
	Stop() bool
}
