package rhythm

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/piano-fire/internal/core"
)

// Playfield geometry in percent of the field height.
const (
	LaneCount       = 4
	HitZoneY        = 80.0  // where a tile should be tapped
	HitWindow       = 20.0  // tolerance around the hit line
	TileHeight      = 20.0  // visual tile height
	SpeedMultiplier = 0.025 // percent per millisecond at 60 BPM
)

// Positions past the hit line, in the same percent units.
const (
	MissLine  = 100.0 // unplayed tiles past this are missed
	EvictLine = 120.0 // any tile past this leaves the active set
)

// TileData is a single falling tile.
type TileData struct {
	ID        uint64
	Lane      int
	SpawnTime time.Duration
	Played    bool // resolved by a tap
	Missed    bool // fell through the hit zone unplayed
	Color     core.Color
}

// Position returns how far a tile has fallen, where 0 is the spawn edge and
// HitZoneY is the hit line. Monotonically increasing in now.
func Position(now, spawn time.Duration, bpm float64) float64 {
	ms := float64(now-spawn) / float64(time.Millisecond)
	return ms * SpeedMultiplier * (bpm / 60)
}

// TileView is a tile projected to a point in time for rendering.
type TileView struct {
	TileData
	Y float64
}

// Project computes the renderable position of a tile without storing it.
func Project(t TileData, now time.Duration, bpm float64) TileView {
	return TileView{TileData: t, Y: Position(now, t.SpawnTime, bpm)}
}

// Spawner creates tiles on a fixed cadence.
type Spawner struct {
	rng       *rand.Rand
	interval  time.Duration
	lastSpawn time.Duration
	nextID    uint64
	primary   core.Color
	secondary core.Color
}

// NewSpawner creates a spawner whose first tile appears one interval after start.
func NewSpawner(level LevelConfig, rng *rand.Rand, start time.Duration) *Spawner {
	interval := level.Interval()
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Spawner{
		rng:       rng,
		interval:  interval,
		lastSpawn: start,
		nextID:    1,
		primary:   level.Theme.Primary,
		secondary: level.Theme.Secondary,
	}
}

// Next returns a new tile if at least one interval has elapsed since the last spawn.
func (sp *Spawner) Next(now time.Duration) (TileData, bool) {
	if now-sp.lastSpawn < sp.interval {
		return TileData{}, false
	}

	color := sp.primary
	if sp.rng.Intn(2) == 1 {
		color = sp.secondary
	}

	t := TileData{
		ID:        sp.nextID,
		Lane:      sp.rng.Intn(LaneCount),
		SpawnTime: now,
		Color:     color,
	}
	sp.nextID++
	sp.lastSpawn = now
	return t, true
}

// LastSpawn returns the timestamp of the most recent spawn (or the start time).
func (sp *Spawner) LastSpawn() time.Duration {
	return sp.lastSpawn
}
