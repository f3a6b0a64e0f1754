package scheduler

import (
	"container/heap"
	"time"
)

// Manual is a virtual-clock scheduler. Time only moves when Step or Advance
// is called, which makes it suitable for tests and headless simulation.
//
// Within one step, timers due at or before the next frame fire first, in
// deadline order, with the clock set to each deadline. Then the clock moves
// to the frame time and the requested ticks run.
type Manual struct {
	now    time.Duration
	frame  time.Duration
	ticks  []TickFunc
	timers timerQueue
	seq    uint64
}

// NewManual creates a virtual scheduler that produces frames every frame
// interval, starting at time zero.
func NewManual(frame time.Duration) *Manual {
	if frame <= 0 {
		frame = time.Second / 60
	}
	return &Manual{frame: frame}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Frame returns the frame interval.
func (m *Manual) Frame() time.Duration {
	return m.frame
}

// RequestTick implements Scheduler.
func (m *Manual) RequestTick(fn TickFunc) {
	m.ticks = append(m.ticks, fn)
}

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{at: m.now + d, seq: m.seq, fn: fn}
	heap.Push(&m.timers, t)
	return t
}

// Pending reports whether any tick or live timer is waiting.
func (m *Manual) Pending() bool {
	if len(m.ticks) > 0 {
		return true
	}
	for _, t := range m.timers {
		if !t.done {
			return true
		}
	}
	return false
}

// Step advances the clock by one frame.
func (m *Manual) Step() {
	next := m.now + m.frame
	m.fireTimers(next)
	m.now = next
	m.Flush()
}

// Flush runs the requested ticks at the current time without advancing the
// clock. It lets a caller deliver a frame at time zero.
func (m *Manual) Flush() {
	ticks := m.ticks
	m.ticks = nil
	for _, fn := range ticks {
		fn(m.now)
	}
}

// Advance steps frames until at least d of virtual time has passed.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for m.now < target {
		m.Step()
	}
}

// AdvanceTo steps frames until the clock reaches t.
func (m *Manual) AdvanceTo(t time.Duration) {
	if t > m.now {
		m.Advance(t - m.now)
	}
}

// fireTimers runs every live timer due at or before limit. Timers armed by
// a callback are included when they also fall inside the window.
func (m *Manual) fireTimers(limit time.Duration) {
	for m.timers.Len() > 0 && m.timers[0].at <= limit {
		t := heap.Pop(&m.timers).(*manualTimer)
		if t.done {
			continue
		}
		t.done = true
		if t.at > m.now {
			m.now = t.at
		}
		t.fn()
	}
}

type manualTimer struct {
	at   time.Duration
	seq  uint64
	fn   func()
	done bool
}

// Stop implements Timer.
func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// timerQueue orders timers by deadline, then by arming order.
type timerQueue []*manualTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*manualTimer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
