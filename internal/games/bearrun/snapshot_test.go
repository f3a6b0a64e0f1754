package bearrun

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "TIME 0.00"},
		{-5 * time.Second, "TIME 0.00"},
		{95 * time.Second, "TIME 95.00"},
		{1234 * time.Millisecond, "TIME 1.23"},
		{9999 * time.Millisecond, "TIME 9.99"},
		{50 * time.Millisecond, "TIME 0.05"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.d); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}

func TestPhaseAndReasonNames(t *testing.T) {
	if PhaseWon.String() != "won" || PhaseLost.String() != "lost" {
		t.Error("unexpected phase names")
	}
	if !PhaseWon.Over() || !PhaseLost.Over() || PhaseRunning.Over() || PhaseNotStarted.Over() {
		t.Error("only won and lost are terminal")
	}
	if EndCollision.String() != "collision" || EndTimeout.String() != "timeout" || EndGoal.String() != "goal" {
		t.Error("unexpected reason names")
	}
}
