package rhythm

import "github.com/vovakirdan/piano-fire/internal/core"

// Health tuning.
const (
	MaxHealth   = 100
	MissPenalty = 15 // tile fell through unplayed
	TapPenalty  = 5  // tap on a lane with nothing to hit
	HitHeal     = 2
)

// Health is a vitality value bounded to [0, MaxHealth].
type Health struct {
	value int
}

// NewHealth returns full health.
func NewHealth() Health {
	return Health{value: MaxHealth}
}

// Adjust adds delta and clamps the result.
func (h *Health) Adjust(delta int) {
	h.value = core.Clamp(h.value+delta, 0, MaxHealth)
}

// Value returns the current health.
func (h Health) Value() int {
	return h.value
}

// IsDepleted reports whether the session should end.
func (h Health) IsDepleted() bool {
	return h.value <= 0
}
