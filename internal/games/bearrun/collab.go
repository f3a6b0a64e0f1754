package bearrun

import (
	"math/rand"
)

// Source yields uniform floats in [0, 1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded Source.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Cues receives fire-and-forget audio notifications from a session.
// Implementations must not call back into the session.
type Cues interface {
	OnJump()
	OnWin()
	OnLoss()
	OnSessionStart() // Music start or restart
	OnSessionEnd()   // Music stop
}

// NopCues ignores every cue.
type NopCues struct{}

func (NopCues) OnJump()         {}
func (NopCues) OnWin()          {}
func (NopCues) OnLoss()         {}
func (NopCues) OnSessionStart() {}
func (NopCues) OnSessionEnd()   {}
