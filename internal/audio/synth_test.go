package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to exhaustion and returns every left-channel sample.
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			out = append(out, buf[j][0])
		}
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never drained")
	return nil
}

func peak(samples []float64) float64 {
	m := 0.0
	for _, v := range samples {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"saw", WaveSaw},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			samples := drain(t, NewOscillator(440, 250*time.Millisecond, tc.wave, rate))
			if len(samples) != rate.N(250*time.Millisecond) {
				t.Errorf("got %d samples, expected %d", len(samples), rate.N(250*time.Millisecond))
			}
			if p := peak(samples); p > 1.0+1e-9 || p == 0 {
				t.Errorf("peak %f outside (0, 1]", p)
			}
		})
	}
}

func TestSweepLowersPitch(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(t, NewSweep(100, 50, time.Second, WaveSaw, rate))

	// Saw resets once per period; count resets in each half.
	resets := func(part []float64) int {
		n := 0
		for i := 1; i < len(part); i++ {
			if part[i] < part[i-1]-1 {
				n++
			}
		}
		return n
	}
	half := len(samples) / 2
	first, second := resets(samples[:half]), resets(samples[half:])
	if first <= second {
		t.Errorf("sweep should slow down: %d periods then %d", first, second)
	}
}

func TestPluckEnvelope(t *testing.T) {
	rate := beep.SampleRate(8000)
	env := NewPluck(NewOscillator(0, time.Second, WaveSaw, rate), HitDuration, HitAttack, 0.5, rate).(*envelope)

	if g := env.gain(0); g != 0 {
		t.Errorf("gain at start = %f, expected 0", g)
	}
	if g := env.gain(rate.N(HitAttack)); math.Abs(g-0.5) > 1e-9 {
		t.Errorf("gain after attack = %f, expected 0.5", g)
	}
	if g := env.gain(rate.N(HitDuration)); math.Abs(g-0.001) > 1e-9 {
		t.Errorf("gain at end = %f, expected 0.001", g)
	}

	samples := drain(t, env)
	if len(samples) != rate.N(HitDuration) {
		t.Errorf("envelope should cut to %d samples, got %d", rate.N(HitDuration), len(samples))
	}
}

func TestFadeEnvelope(t *testing.T) {
	rate := beep.SampleRate(8000)
	env := NewFade(NewOscillator(0, time.Second, WaveSaw, rate), MissDuration, 0.3, rate).(*envelope)

	if g := env.gain(0); math.Abs(g-0.3) > 1e-9 {
		t.Errorf("gain at start = %f, expected 0.3", g)
	}
	mid := env.gain(rate.N(MissDuration) / 2)
	if math.Abs(mid-0.15) > 1e-3 {
		t.Errorf("gain at midpoint = %f, expected 0.15", mid)
	}
}

func TestCueSounds(t *testing.T) {
	rate := beep.SampleRate(8000)

	hit := drain(t, HitSound(noteA4, 0.3, rate))
	if len(hit) != rate.N(HitDuration) {
		t.Errorf("hit length %d, expected %d", len(hit), rate.N(HitDuration))
	}
	if p := peak(hit); p > 0.5*0.3+1e-6 || p < 0.1 {
		t.Errorf("hit peak %f, expected about 0.15", p)
	}

	miss := drain(t, MissSound(0.3, rate))
	if len(miss) != rate.N(MissDuration) {
		t.Errorf("miss length %d, expected %d", len(miss), rate.N(MissDuration))
	}

	silent := drain(t, HitSound(noteA4, 0, rate))
	if p := peak(silent); p != 0 {
		t.Errorf("zero volume should be silent, peak %f", p)
	}
}

func TestMelodyCursor(t *testing.T) {
	var m melodyCursor

	if got := m.Next(); got != noteC4 {
		t.Errorf("first note = %v, expected C4", got)
	}
	if got := m.Next(); got != noteC4 {
		t.Errorf("second note = %v, expected C4", got)
	}
	if got := m.Next(); got != noteG4 {
		t.Errorf("third note = %v, expected G4", got)
	}

	for i := 3; i < len(Melody); i++ {
		m.Next()
	}
	if got := m.Next(); got != Melody[0] {
		t.Errorf("melody should loop, got %v", got)
	}

	m.Reset()
	m.Next()
	m.Next()
	if got := m.Next(); got != noteG4 {
		t.Errorf("after reset third note = %v, expected G4", got)
	}
}
