// Package config provides YAML-based tuning for Bear Run and environment
// defaults for the command line.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunConfig contains all tuning constants for a Bear Run session.
// Spatial and speed values are in design units and are multiplied by the
// session's scale factor once, when the session is built.
type RunConfig struct {
	Design    DesignConfig    `yaml:"design"`
	Character CharacterConfig `yaml:"character"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Speed     SpeedConfig     `yaml:"speed"`
	Goal      GoalConfig      `yaml:"goal"`
	Timing    TimingConfig    `yaml:"timing"`
	Blackout  BlackoutConfig  `yaml:"blackout"`
}

// DesignConfig is the virtual resolution all constants are authored against.
type DesignConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Distance of the ground line from the surface bottom
}

// CharacterConfig defines the runner's size and jump physics.
type CharacterConfig struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	JumpImpulse float64 `yaml:"jump_impulse"` // Negative = up
	Gravity     float64 `yaml:"gravity"`      // Added to vertical velocity every frame
}

// ObstacleKind is one entry of the obstacle catalog.
type ObstacleKind struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines the obstacle catalog and spawn cadence.
type ObstacleConfig struct {
	Catalog          []ObstacleKind `yaml:"catalog"`
	SpawnJitter      float64        `yaml:"spawn_jitter"`
	PairChance       float64        `yaml:"pair_chance"`
	PairGapMin       float64        `yaml:"pair_gap_min"`
	PairGapMax       float64        `yaml:"pair_gap_max"`
	IntervalMin      time.Duration  `yaml:"interval_min"`
	IntervalMax      time.Duration  `yaml:"interval_max"`
	RevealSkipChance float64        `yaml:"reveal_skip_chance"`
	BobAmplitude     float64        `yaml:"bob_amplitude"`
	BobPeriod        time.Duration  `yaml:"bob_period"` // Time divisor of the bob sine
}

// SpeedConfig defines the horizontal scroll speed ramp.
type SpeedConfig struct {
	Base float64 `yaml:"base"` // Speed at elapsed = 0
	Ramp float64 `yaml:"ramp"` // Added at elapsed = total
}

// GoalConfig defines the goal marker and its reveal.
type GoalConfig struct {
	X        float64       `yaml:"x"`
	Width    float64       `yaml:"width"`
	Height   float64       `yaml:"height"`
	RevealAt time.Duration `yaml:"reveal_at"` // Remaining time at which the goal appears
	Burst    int           `yaml:"burst"`     // Obstacles spawned at reveal
}

// TimingConfig defines the session clock.
type TimingConfig struct {
	Total        time.Duration `yaml:"total"`
	DisplayGrace time.Duration `yaml:"display_grace"` // Subtracted from the on-screen countdown only
}

// BlackoutConfig defines the randomized visibility-loss windows.
type BlackoutConfig struct {
	DelayMin    time.Duration `yaml:"delay_min"`
	DelayMax    time.Duration `yaml:"delay_max"`
	DurationMin time.Duration `yaml:"duration_min"`
	DurationMax time.Duration `yaml:"duration_max"`
}

// Validate reports every constraint the config violates.
func (c RunConfig) Validate() error {
	var errs []error

	if c.Design.Width <= 0 || c.Design.Height <= 0 {
		errs = append(errs, fmt.Errorf("design: size must be positive, got %gx%g", c.Design.Width, c.Design.Height))
	}
	if len(c.Obstacles.Catalog) == 0 {
		errs = append(errs, errors.New("obstacles: catalog is empty"))
	}
	for i, k := range c.Obstacles.Catalog {
		if k.Width <= 0 || k.Height <= 0 {
			errs = append(errs, fmt.Errorf("obstacles: catalog[%d] %q has non-positive size", i, k.Name))
		}
	}
	if c.Obstacles.PairGapMax < c.Obstacles.PairGapMin {
		errs = append(errs, errors.New("obstacles: pair_gap_max < pair_gap_min"))
	}
	if c.Obstacles.IntervalMin <= 0 || c.Obstacles.IntervalMax < c.Obstacles.IntervalMin {
		errs = append(errs, errors.New("obstacles: spawn interval must be positive and ordered"))
	}
	if c.Obstacles.BobPeriod <= 0 {
		errs = append(errs, errors.New("obstacles: bob_period must be positive"))
	}
	if c.Timing.Total <= 0 {
		errs = append(errs, errors.New("timing: total must be positive"))
	}
	if c.Goal.RevealAt < 0 || c.Goal.Burst < 0 {
		errs = append(errs, errors.New("goal: reveal_at and burst must not be negative"))
	}
	if c.Blackout.DelayMin <= 0 || c.Blackout.DelayMax < c.Blackout.DelayMin {
		errs = append(errs, errors.New("blackout: delay must be positive and ordered"))
	}
	if c.Blackout.DurationMin <= 0 || c.Blackout.DurationMax < c.Blackout.DurationMin {
		errs = append(errs, errors.New("blackout: duration must be positive and ordered"))
	}

	return errors.Join(errs...)
}
