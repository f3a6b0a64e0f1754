package config

import (
	"time"

	"github.com/vovakirdan/bear-run/internal/core"
)

// Progress returns elapsed/total clamped to [0, 1].
func (t TimingConfig) Progress(elapsed time.Duration) float64 {
	if t.Total <= 0 {
		return 1
	}
	return core.ClampF(float64(elapsed)/float64(t.Total), 0.0, 1.0)
}

// At returns the unscaled scroll speed for a progress ratio in [0, 1].
// Speed grows linearly from Base to Base+Ramp.
func (s SpeedConfig) At(progress float64) float64 {
	return s.Base + s.Ramp*core.ClampF(progress, 0.0, 1.0)
}
