package audio

import "sync/atomic"

// Note frequencies in Hz.
const (
	noteC4 = 261.63
	noteD4 = 293.66
	noteE4 = 329.63
	noteF4 = 349.23
	noteG4 = 392.00
	noteA4 = 440.00
)

// Melody is the tune played one note per hit, looping. Twinkle Twinkle Little Star.
var Melody = []float64{
	noteC4, noteC4, noteG4, noteG4, noteA4, noteA4, noteG4,
	noteF4, noteF4, noteE4, noteE4, noteD4, noteD4, noteC4,
	noteG4, noteG4, noteF4, noteF4, noteE4, noteE4, noteD4,
	noteG4, noteG4, noteF4, noteF4, noteE4, noteE4, noteD4,
	noteC4, noteC4, noteG4, noteG4, noteA4, noteA4, noteG4,
	noteF4, noteF4, noteE4, noteE4, noteD4, noteD4, noteC4,
}

// melodyCursor walks the melody. Safe for concurrent use.
type melodyCursor struct {
	index atomic.Uint64
}

// Next returns the next note frequency.
func (m *melodyCursor) Next() float64 {
	i := m.index.Add(1) - 1
	return Melody[i%uint64(len(Melody))]
}

// Reset rewinds to the first note.
func (m *melodyCursor) Reset() {
	m.index.Store(0)
}
