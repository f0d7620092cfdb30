// Package config provides YAML-based settings loading for the game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// Settings contains all user-tunable configuration.
type Settings struct {
	TickRate  int                `yaml:"tick_rate"` // simulation ticks per second
	Keys      KeyConfig          `yaml:"keys"`
	Audio     AudioConfig        `yaml:"audio"`
	Generator GeneratorConfig    `yaml:"generator"`
	Storage   StorageConfig      `yaml:"storage"`
	Level     rhythm.LevelConfig `yaml:"default_level"` // used when generation is unavailable
}

// KeyConfig maps keys to actions. Each entry lists every key bound to it.
type KeyConfig struct {
	Lanes   [][]string `yaml:"lanes"` // one entry per lane, left to right
	Pause   []string   `yaml:"pause"`
	Restart []string   `yaml:"restart"`
	Mute    []string   `yaml:"mute"`
	Back    []string   `yaml:"back"`
}

// AudioConfig controls the synthesized cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // master gain, 0..1
}

// GeneratorConfig configures the Gemini level generator.
type GeneratorConfig struct {
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	APIKeyEnv string        `yaml:"api_key_env"` // environment variable holding the API key
	Timeout   time.Duration `yaml:"timeout"`
}

// StorageConfig configures where levels are kept.
type StorageConfig struct {
	DBPath    string `yaml:"db_path"`    // generated-level cache
	LevelsDir string `yaml:"levels_dir"` // hand-written level files
}

// Validate reports the first setting that cannot be used.
func (s Settings) Validate() error {
	if s.TickRate < 1 || s.TickRate > 240 {
		return fmt.Errorf("config: tick_rate %d out of range [1, 240]", s.TickRate)
	}
	if len(s.Keys.Lanes) != rhythm.LaneCount {
		return fmt.Errorf("config: expected %d lane bindings, got %d", rhythm.LaneCount, len(s.Keys.Lanes))
	}
	seen := make(map[string]int)
	for lane, keys := range s.Keys.Lanes {
		if len(keys) == 0 {
			return fmt.Errorf("config: lane %d has no keys", lane+1)
		}
		for _, k := range keys {
			if prev, ok := seen[k]; ok && prev != lane {
				return fmt.Errorf("config: key %q bound to lanes %d and %d", k, prev+1, lane+1)
			}
			seen[k] = lane
		}
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return fmt.Errorf("config: audio volume %.2f out of range [0, 1]", s.Audio.Volume)
	}
	if s.Generator.Timeout < 0 {
		return fmt.Errorf("config: generator timeout must not be negative")
	}
	return nil
}

// APIKeyEnvOrDefault returns the environment variable that holds the API key.
func (g GeneratorConfig) APIKeyEnvOrDefault() string {
	if g.APIKeyEnv == "" {
		return DefaultAPIKeyEnv
	}
	return g.APIKeyEnv
}
