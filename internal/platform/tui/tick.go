// Package tui is the Bubble Tea front end of Bear Run. It owns one game
// session per program, drives it from Bubble Tea messages and renders its
// snapshots into the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bear-run/internal/scheduler"
)

// FrameMsg delivers a frame to the session.
type FrameMsg time.Time

// timerMsg fires a one-shot timer armed through teaScheduler.After.
type timerMsg struct {
	id uint64
}

// teaScheduler implements scheduler.Scheduler on top of the Bubble Tea
// message loop. Frames and timers come back as messages, so every session
// callback runs inside Update and never concurrently.
//
// Scheduling only records commands; Update returns them via drain.
type teaScheduler struct {
	interval time.Duration
	origin   time.Time

	ticks        []scheduler.TickFunc
	framePending bool

	nextID uint64
	timers map[uint64]func()

	cmds []tea.Cmd
}

var _ scheduler.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler(tickRate int) *teaScheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &teaScheduler{
		interval: time.Second / time.Duration(tickRate),
		origin:   time.Now(),
		timers:   make(map[uint64]func()),
	}
}

// RequestTick implements scheduler.Scheduler. Requests made before the next
// frame share one frame message.
func (s *teaScheduler) RequestTick(fn scheduler.TickFunc) {
	s.ticks = append(s.ticks, fn)
	if s.framePending {
		return
	}
	s.framePending = true
	s.cmds = append(s.cmds, tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	}))
}

// After implements scheduler.Scheduler.
func (s *teaScheduler) After(d time.Duration, fn func()) scheduler.Timer {
	s.nextID++
	id := s.nextID
	s.timers[id] = fn
	s.cmds = append(s.cmds, tea.Tick(max(d, 0), func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return teaTimer{s: s, id: id}
}

// handleFrame runs the ticks requested for this frame.
func (s *teaScheduler) handleFrame(at time.Time) {
	s.framePending = false
	ticks := s.ticks
	s.ticks = nil

	now := at.Sub(s.origin)
	for _, fn := range ticks {
		fn(now)
	}
}

// handleTimer runs a timer unless it was stopped.
func (s *teaScheduler) handleTimer(id uint64) {
	fn, ok := s.timers[id]
	if !ok {
		return
	}
	delete(s.timers, id)
	fn()
}

// drain returns the commands scheduled since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

type teaTimer struct {
	s  *teaScheduler
	id uint64
}

// Stop implements scheduler.Timer. The pending message still arrives but
// finds nothing to run.
func (t teaTimer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}
