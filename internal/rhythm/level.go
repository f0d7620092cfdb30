// Package rhythm implements the falling-tile rhythm game simulation.
// Tiles descend through four lanes and the player taps a lane when a tile
// crosses the hit line; timing accuracy drives score, combo and health until
// health runs out.
package rhythm

import (
	"strings"
	"time"

	"github.com/vovakirdan/piano-fire/internal/core"
)

// Difficulty is the label a level generator attaches to a level.
// It is informational only; the simulation does not scale with it.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
	DifficultyExtreme Difficulty = "Extreme"
)

// ParseDifficulty matches a label case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme} {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, true
		}
	}
	return "", false
}

// Theme holds the four colors of a level.
type Theme struct {
	Primary    core.Color `yaml:"primary" json:"primary"`
	Secondary  core.Color `yaml:"secondary" json:"secondary"`
	Accent     core.Color `yaml:"accent" json:"accent"`
	Background core.Color `yaml:"background" json:"background"`
}

// LevelConfig contains the immutable parameters of one session.
type LevelConfig struct {
	Name          string     `yaml:"name" json:"name"`
	Description   string     `yaml:"description" json:"description"`
	BPM           float64    `yaml:"bpm" json:"bpm"`
	SpawnInterval int        `yaml:"spawn_interval" json:"spawnInterval"` // milliseconds
	Difficulty    Difficulty `yaml:"difficulty" json:"difficulty"`
	Theme         Theme      `yaml:"theme" json:"theme"`
}

// Spawn interval bounds promised by level generators.
const (
	MinSpawnInterval = 600
	MaxSpawnInterval = 1200
)

// DefaultLevel returns the level used whenever generation fails or is unavailable.
func DefaultLevel() LevelConfig {
	return LevelConfig{
		Name:          "Neon Genesis",
		Description:   "A relaxed rhythm experience.",
		BPM:           100,
		SpawnInterval: 800,
		Difficulty:    DifficultyEasy,
		Theme: Theme{
			Primary:    "#06b6d4", // cyan
			Secondary:  "#d946ef", // fuchsia
			Accent:     "#f472b6", // pink
			Background: "#0f172a", // slate 900
		},
	}
}

// Interval returns the spawn interval as a duration.
func (l LevelConfig) Interval() time.Duration {
	return time.Duration(l.SpawnInterval) * time.Millisecond
}

// Normalize returns a copy with malformed fields repaired from the default level.
// Intervals outside the generator range are kept as long as they are positive.
func (l LevelConfig) Normalize() LevelConfig {
	def := DefaultLevel()

	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		l.Name = def.Name
	}
	l.Description = strings.TrimSpace(l.Description)
	if l.BPM <= 0 {
		l.BPM = def.BPM
	}
	if l.SpawnInterval <= 0 {
		l.SpawnInterval = def.SpawnInterval
	}
	if d, ok := ParseDifficulty(string(l.Difficulty)); ok {
		l.Difficulty = d
	} else {
		l.Difficulty = DifficultyMedium
	}

	l.Theme.Primary = normalizeColor(l.Theme.Primary, def.Theme.Primary)
	l.Theme.Secondary = normalizeColor(l.Theme.Secondary, def.Theme.Secondary)
	l.Theme.Accent = normalizeColor(l.Theme.Accent, def.Theme.Accent)
	l.Theme.Background = normalizeColor(l.Theme.Background, def.Theme.Background)
	return l
}

// InGeneratorRange reports whether the spawn interval honors the generator contract.
func (l LevelConfig) InGeneratorRange() bool {
	return l.SpawnInterval >= MinSpawnInterval && l.SpawnInterval <= MaxSpawnInterval
}

func normalizeColor(c, fallback core.Color) core.Color {
	parsed, err := core.ParseHexColor(string(c))
	if err != nil {
		return fallback
	}
	return parsed
}
