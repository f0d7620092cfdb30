package rhythm

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/piano-fire/internal/core"
)

// Particle tuning.
const (
	BurstSize        = 12
	ParticleMinSpeed = 2.0
	ParticleMaxSpeed = 7.0
	ParticleGravity  = 0.2
	ParticleDecay    = 0.05
)

// Particle is a short-lived decorative spark in screen pixel coordinates.
type Particle struct {
	ID     uint64
	X, Y   float64
	VX, VY float64
	Color  core.Color
	Life   float64 // 1.0 at birth, removed at <= 0
}

// ParticleSystem spawns and integrates hit bursts.
type ParticleSystem struct {
	rng       *rand.Rand
	particles []Particle
	nextID    uint64
}

// NewParticleSystem creates an empty particle system.
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		rng:       rng,
		particles: make([]Particle, 0, BurstSize*4),
		nextID:    1,
	}
}

// SpawnBurst emits BurstSize particles from (x, y) in random directions.
func (ps *ParticleSystem) SpawnBurst(x, y float64, color core.Color) {
	for i := 0; i < BurstSize; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ParticleMinSpeed + ps.rng.Float64()*(ParticleMaxSpeed-ParticleMinSpeed)
		ps.particles = append(ps.particles, Particle{
			ID:    ps.nextID,
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Color: color,
			Life:  1.0,
		})
		ps.nextID++
	}
}

// Step advances every particle by one explicit Euler step and drops dead ones.
func (ps *ParticleSystem) Step() {
	alive := 0
	for i := range ps.particles {
		p := &ps.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += ParticleGravity
		p.Life -= ParticleDecay
		if p.Life <= 0 {
			continue
		}
		ps.particles[alive] = *p
		alive++
	}
	ps.particles = ps.particles[:alive]
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Particles returns a copy of the live particles.
func (ps *ParticleSystem) Particles() []Particle {
	out := make([]Particle, len(ps.particles))
	copy(out, ps.particles)
	return out
}
