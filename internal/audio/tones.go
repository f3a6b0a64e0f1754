package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// sweep is a finite sine whose frequency slides linearly from one pitch to
// another, with a short fade at both ends.
type sweep struct {
	sr       beep.SampleRate
	from, to float64
	total    int
	fade     int
	pos      int
	phase    float64
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration) *sweep {
	total := sr.N(d)
	return &sweep{sr: sr, from: from, to: to, total: total, fade: min(sr.N(5*time.Millisecond), total/2)}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.from + (g.to-g.from)*progress

		v := math.Sin(2*math.Pi*g.phase) * edgeFade(g.pos, g.total, g.fade)
		samples[i][0] = v
		samples[i][1] = v

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }

// buzz is a decaying low square-ish tone.
type buzz struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

func newBuzz(sr beep.SampleRate, freq float64, d time.Duration) *buzz {
	return &buzz{sr: sr, freq: freq, total: sr.N(d)}
}

func (g *buzz) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)

		v := 0.6*math.Sin(2*math.Pi*g.freq*t) +
			0.25*math.Sin(2*math.Pi*g.freq*3*t) +
			0.15*math.Sin(2*math.Pi*g.freq*5*t)
		v *= math.Exp(-t * 4)

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *buzz) Err() error { return nil }

// melody plays a note sequence forever. Rewind restarts it from the top.
type melody struct {
	sr    beep.SampleRate
	notes []float64 // Hz, 0 is a rest
	step  int       // Samples per note
	pos   int
	phase float64
}

// Bear Run theme, a simple walking line in C major.
var theme = []float64{
	262, 330, 392, 330, 349, 440, 523, 440,
	392, 330, 262, 0, 294, 349, 392, 0,
}

func newMelody(sr beep.SampleRate, notes []float64, noteLen time.Duration) *melody {
	return &melody{sr: sr, notes: notes, step: max(sr.N(noteLen), 1)}
}

func (g *melody) Stream(samples [][2]float64) (n int, ok bool) {
	if len(g.notes) == 0 {
		return 0, false
	}
	cycle := g.step * len(g.notes)
	for i := range samples {
		at := g.pos % cycle
		freq := g.notes[at/g.step]

		v := 0.0
		if freq > 0 {
			v = math.Sin(2*math.Pi*g.phase) * edgeFade(at%g.step, g.step, g.step/8)
			g.phase += freq / float64(g.sr)
			g.phase -= math.Floor(g.phase)
		}
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *melody) Err() error { return nil }

func (g *melody) rewind() {
	g.pos = 0
	g.phase = 0
}

// edgeFade ramps the first and last fade samples of a span of total.
func edgeFade(pos, total, fade int) float64 {
	if fade <= 0 {
		return 1
	}
	if pos < fade {
		return float64(pos) / float64(fade)
	}
	if left := total - pos; left < fade {
		return float64(left) / float64(fade)
	}
	return 1
}

// arpeggio plays the given pitches back to back as plain sine tones.
func arpeggio(sr beep.SampleRate, noteLen time.Duration, freqs ...float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := generators.SineTone(sr, f)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(sr.N(noteLen), tone))
	}
	return beep.Seq(parts...)
}

// newVolume wraps s with a linear gain. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
