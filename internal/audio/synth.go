package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSaw
)

// oscillator generates raw audio waves, optionally sweeping its frequency
// linearly from freq to endFreq over the duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes the gain of a stream. Gain ramps linearly from 0 to peak
// over the attack, then falls to floor at the end of the duration, either
// exponentially or linearly.
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	totalSamples  int
	peak          float64
	floor         float64
	exponential   bool
}

// NewPluck creates a percussive envelope: linear attack to peak, exponential
// decay to near silence.
func NewPluck(s beep.Streamer, duration, attack time.Duration, peak float64, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:      s,
		attackSamples: rate.N(attack),
		totalSamples:  rate.N(duration),
		peak:          peak,
		floor:         0.001,
		exponential:   true,
	}
}

// NewFade creates an envelope starting at peak and fading linearly to silence.
func NewFade(s beep.Streamer, duration time.Duration, peak float64, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		totalSamples: rate.N(duration),
		peak:         peak,
	}
}

// gain returns the envelope value at a sample position.
func (e *envelope) gain(pos int) float64 {
	if pos < e.attackSamples {
		return e.peak * float64(pos) / float64(e.attackSamples)
	}
	decay := e.totalSamples - e.attackSamples
	if decay <= 0 {
		return e.peak
	}
	progress := float64(pos-e.attackSamples) / float64(decay)
	if progress > 1 {
		progress = 1
	}
	if e.exponential {
		return e.peak * math.Pow(e.floor/e.peak, progress)
	}
	return e.peak + (e.floor-e.peak)*progress
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := e.gain(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue timings.
const (
	HitDuration  = 400 * time.Millisecond
	HitAttack    = 10 * time.Millisecond
	MissDuration = 200 * time.Millisecond
)

// HitSound synthesizes one melody note: a sine pluck at freq.
func HitSound(freq, master float64, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, HitDuration, WaveSine, rate)
	return newVolume(NewPluck(osc, HitDuration, HitAttack, 0.5, rate), master)
}

// MissSound synthesizes the miss buzz: a sawtooth sweeping down an octave.
func MissSound(master float64, rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(100, 50, MissDuration, WaveSaw, rate)
	return newVolume(NewFade(osc, MissDuration, 0.3, rate), master)
}
