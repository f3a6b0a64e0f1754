package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a real-time scheduler backed by a single-owner task queue.
// Frames come from a time.Ticker. Timer callbacks fire on runtime timers
// but are posted back onto the queue, so they never interleave with a tick.
type Loop struct {
	interval time.Duration
	origin   time.Time
	tasks    chan func()
	done     chan struct{}

	mu    sync.Mutex
	ticks []TickFunc
}

// NewLoop creates a real-time scheduler running at fps frames per second.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		origin:   time.Now(),
		tasks:    make(chan func(), 16),
		done:     make(chan struct{}),
	}
}

// Now returns the time elapsed since the loop was created.
func (l *Loop) Now() time.Duration {
	return time.Since(l.origin)
}

// RequestTick implements Scheduler.
func (l *Loop) RequestTick(fn TickFunc) {
	l.mu.Lock()
	l.ticks = append(l.ticks, fn)
	l.mu.Unlock()
}

// After implements Scheduler.
func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Swap(true) {
				return
			}
			fn()
		})
	})
	return t
}

// Post queues fn to run on the loop goroutine. It returns false if the
// loop has already stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run drives frames and queued tasks until ctx is cancelled. A Loop runs
// at most once.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		case at := <-ticker.C:
			l.fireTicks(at.Sub(l.origin))
		}
	}
}

func (l *Loop) fireTicks(now time.Duration) {
	l.mu.Lock()
	ticks := l.ticks
	l.ticks = nil
	l.mu.Unlock()

	for _, fn := range ticks {
		fn(now)
	}
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

// Stop implements Timer.
func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.timer.Stop()
	return true
}
