// Package audio turns Bear Run session cues into synthesized sound through
// the beep speaker.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/bear-run/internal/games/bearrun"
)

// Player implements bearrun.Cues. Effects are mixed over a looping theme
// that follows the session: it restarts on session start and pauses on
// session end.
type Player struct {
	mixer  *beep.Mixer
	music  *beep.Ctrl
	melody *melody
	volume float64

	// Guard streamer mutation against the speaker goroutine
	lock   func()
	unlock func()
}

var _ bearrun.Cues = (*Player)(nil)

// New initializes the speaker and starts the mixer. volume is a linear gain
// in (0, 1].
func New(volume float64) (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}

	p := newPlayer(volume)
	p.lock = speaker.Lock
	p.unlock = speaker.Unlock
	speaker.Play(p.mixer)
	return p, nil
}

// newPlayer builds the mixer graph without touching the audio device.
func newPlayer(volume float64) *Player {
	p := &Player{
		mixer:  &beep.Mixer{},
		melody: newMelody(sampleRate, theme, 180*time.Millisecond),
		volume: volume,
		lock:   func() {},
		unlock: func() {},
	}
	p.music = &beep.Ctrl{Streamer: newVolume(p.melody, 0.25*volume), Paused: true}
	p.mixer.Add(p.music)
	return p
}

func (p *Player) play(s beep.Streamer) {
	p.lock()
	p.mixer.Add(newVolume(s, p.volume))
	p.unlock()
}

// OnJump plays a short rising chirp.
func (p *Player) OnJump() {
	p.play(newSweep(sampleRate, 440, 880, 90*time.Millisecond))
}

// OnWin plays a major arpeggio.
func (p *Player) OnWin() {
	p.play(arpeggio(sampleRate, 120*time.Millisecond, 523, 659, 784, 1047))
}

// OnLoss plays a falling buzz.
func (p *Player) OnLoss() {
	p.play(newBuzz(sampleRate, 110, 450*time.Millisecond))
}

// OnSessionStart restarts the theme from the top.
func (p *Player) OnSessionStart() {
	p.lock()
	p.melody.rewind()
	p.music.Paused = false
	p.unlock()
}

// OnSessionEnd pauses the theme.
func (p *Player) OnSessionEnd() {
	p.lock()
	p.music.Paused = true
	p.unlock()
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.lock()
	p.music.Paused = true
	p.mixer.Clear()
	p.unlock()
	speaker.Clear()
}

// Nop is the silent cue sink used when audio is off or unavailable.
type Nop = bearrun.NopCues
