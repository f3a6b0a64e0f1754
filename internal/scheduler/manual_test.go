package scheduler

import (
	"testing"
	"time"
)

func TestManualDeliversRequestedTickOnce(t *testing.T) {
	m := NewManual(10 * time.Millisecond)

	var got []time.Duration
	m.RequestTick(func(now time.Duration) { got = append(got, now) })

	m.Step()
	m.Step()

	if len(got) != 1 {
		t.Fatalf("expected exactly one tick, got %d", len(got))
	}
	if got[0] != 10*time.Millisecond {
		t.Errorf("tick time = %v, expected 10ms", got[0])
	}
}

func TestManualSelfReschedulingChain(t *testing.T) {
	m := NewManual(16 * time.Millisecond)

	count := 0
	var tick TickFunc
	tick = func(now time.Duration) {
		count++
		if count < 5 {
			m.RequestTick(tick)
		}
	}
	m.RequestTick(tick)
	m.Advance(time.Second)

	if count != 5 {
		t.Errorf("expected chain to run 5 times, got %d", count)
	}
	if m.Pending() {
		t.Error("nothing should be pending after the chain stops")
	}
}

func TestManualTimersFireInDeadlineOrderBeforeTicks(t *testing.T) {
	m := NewManual(100 * time.Millisecond)

	var order []string
	var at []time.Duration
	m.After(70*time.Millisecond, func() {
		order = append(order, "b")
		at = append(at, m.Now())
	})
	m.After(30*time.Millisecond, func() {
		order = append(order, "a")
		at = append(at, m.Now())
	})
	m.After(100*time.Millisecond, func() {
		order = append(order, "c")
		at = append(at, m.Now())
	})
	m.RequestTick(func(now time.Duration) { order = append(order, "tick") })

	m.Step()

	expected := []string{"a", "b", "c", "tick"}
	if len(order) != len(expected) {
		t.Fatalf("order = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("order = %v, expected %v", order, expected)
		}
	}
	if at[0] != 30*time.Millisecond || at[1] != 70*time.Millisecond || at[2] != 100*time.Millisecond {
		t.Errorf("timers saw clock %v, expected [30ms 70ms 100ms]", at)
	}
}

func TestManualTimerStop(t *testing.T) {
	m := NewManual(10 * time.Millisecond)

	fired := false
	timer := m.After(5*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("first Stop should report cancellation")
	}
	if timer.Stop() {
		t.Error("second Stop should report nothing to cancel")
	}

	m.Step()
	if fired {
		t.Error("stopped timer must not fire")
	}

	ran := m.After(5*time.Millisecond, func() {})
	m.Step()
	if ran.Stop() {
		t.Error("Stop after firing should return false")
	}
}

func TestManualTimerArmedByTimerInSameWindow(t *testing.T) {
	m := NewManual(100 * time.Millisecond)

	var fired []time.Duration
	m.After(20*time.Millisecond, func() {
		m.After(30*time.Millisecond, func() { fired = append(fired, m.Now()) })
	})
	m.Step()

	if len(fired) != 1 || fired[0] != 50*time.Millisecond {
		t.Errorf("chained timer fired at %v, expected [50ms]", fired)
	}
}

func TestManualFlushDeliversAtCurrentTime(t *testing.T) {
	m := NewManual(10 * time.Millisecond)

	var got time.Duration = -1
	m.RequestTick(func(now time.Duration) { got = now })
	m.Flush()

	if got != 0 {
		t.Errorf("Flush delivered tick at %v, expected 0", got)
	}
	if m.Now() != 0 {
		t.Errorf("Flush must not advance the clock, now = %v", m.Now())
	}
}
