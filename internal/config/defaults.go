package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bearrun.yaml
var defaultRunYAML []byte

// DefaultRunConfig returns the built-in Bear Run configuration.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Design: DesignConfig{
			Width:        800,
			Height:       200,
			GroundOffset: 12.5,
		},
		Character: CharacterConfig{
			X:           50,
			Width:       44,
			Height:      61,
			JumpImpulse: -10,
			Gravity:     0.5,
		},
		Obstacles: ObstacleConfig{
			Catalog: []ObstacleKind{
				{Name: "stump", Width: 30, Height: 37},
				{Name: "rock", Width: 34, Height: 27},
				{Name: "crate", Width: 37, Height: 25},
			},
			SpawnJitter:      200,
			PairChance:       0.1,
			PairGapMin:       50,
			PairGapMax:       80,
			IntervalMin:      800 * time.Millisecond,
			IntervalMax:      1300 * time.Millisecond,
			RevealSkipChance: 0.3,
			BobAmplitude:     2,
			BobPeriod:        100 * time.Millisecond,
		},
		Speed: SpeedConfig{
			Base: 5,
			Ramp: 5,
		},
		Goal: GoalConfig{
			X:        3000,
			Width:    94,
			Height:   115,
			RevealAt: 15 * time.Second,
			Burst:    3,
		},
		Timing: TimingConfig{
			Total:        105 * time.Second,
			DisplayGrace: 10 * time.Second,
		},
		Blackout: BlackoutConfig{
			DelayMin:    5 * time.Second,
			DelayMax:    10 * time.Second,
			DurationMin: 300 * time.Millisecond,
			DurationMax: 500 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default config document.
func DefaultYAML() []byte {
	return defaultRunYAML
}
