// Package audio synthesizes the game's sound cues with beep and plays them
// through the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tomz197/brickbreaker/internal/loop"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// Envelope shapes a tone's gain over its duration.
type Envelope int

const (
	// EnvDecay falls exponentially from full gain to 1% at the end.
	EnvDecay Envelope = iota
	// EnvSwell rises linearly over the first third, then falls linearly to zero.
	EnvSwell
)

// decayFloor is the gain an EnvDecay tone reaches on its last sample.
const decayFloor = 0.01

// tone is an oscillator with an optional linear frequency sweep and a gain envelope.
type tone struct {
	rate     beep.SampleRate
	wave     WaveType
	env      Envelope
	from, to float64 // Start and end frequency
	gain     float64
	phase    float64
	position int
	total    int
}

// NewTone creates a tone that sweeps from freq to endFreq over duration.
// Pass endFreq == freq for a steady pitch.
func NewTone(rate beep.SampleRate, wave WaveType, env Envelope, freq, endFreq float64, duration time.Duration, gain float64) beep.Streamer {
	return &tone{
		rate:  rate,
		wave:  wave,
		env:   env,
		from:  freq,
		to:    endFreq,
		gain:  gain,
		total: rate.N(duration),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.position >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.total {
			return i, true
		}
		progress := float64(t.position) / float64(t.total)

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (t.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(t.phase-0.5)
		}

		val *= t.gain * t.envelope(progress)
		samples[i][0] = val
		samples[i][1] = val

		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase) // Keep in [0, 1)
		t.position++
	}
	return len(samples), true
}

func (t *tone) envelope(progress float64) float64 {
	switch t.env {
	case EnvSwell:
		if progress < 1.0/3 {
			return progress * 3
		}
		return (1 - progress) * 1.5
	default:
		return math.Pow(decayFloor, progress)
	}
}

func (t *tone) Err() error { return nil }

// after delays s by d of silence.
func after(rate beep.SampleRate, d time.Duration, s beep.Streamer) beep.Streamer {
	if d <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(rate.N(d)), s)
}

// newVolume scales s by a linear gain. Zero or negative gain is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Arpeggio notes
var (
	levelCompleteNotes = []float64{523.25, 659.25, 783.99, 1046.50}
	gameOverNotes      = []float64{300, 250, 200, 150}
)

// Sound builds the streamer for a cue at the given master volume.
// Returns nil for unknown cues.
func Sound(cue loop.Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case loop.CueHit:
		s = NewTone(rate, WaveSquare, EnvDecay, 440, 440, 100*time.Millisecond, 0.3)
	case loop.CueBrickDestroy:
		s = beep.Mix(
			NewTone(rate, WaveSaw, EnvDecay, 220, 220, 200*time.Millisecond, 0.4),
			after(rate, 50*time.Millisecond, NewTone(rate, WaveSquare, EnvDecay, 110, 110, 100*time.Millisecond, 0.4)),
		)
	case loop.CuePortal:
		s = NewTone(rate, WaveSine, EnvSwell, 600, 1200, 300*time.Millisecond, 0.5)
	case loop.CueLevelComplete:
		s = arpeggio(rate, WaveTriangle, levelCompleteNotes, 150*time.Millisecond, 300*time.Millisecond, 0.4)
	case loop.CueGameOver:
		s = arpeggio(rate, WaveSaw, gameOverNotes, 200*time.Millisecond, 400*time.Millisecond, 0.5)
	default:
		return nil
	}
	return newVolume(s, volume)
}

// arpeggio plays notes spaced by step, each lasting length.
func arpeggio(rate beep.SampleRate, wave WaveType, notes []float64, step, length time.Duration, gain float64) beep.Streamer {
	voices := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		voices[i] = after(rate, time.Duration(i)*step, NewTone(rate, wave, EnvDecay, f, f, length, gain))
	}
	return beep.Mix(voices...)
}
