package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

//go:embed defaults/pianofire.yaml
var defaultSettingsYAML []byte

// Generator defaults.
const (
	DefaultModel     = "gemini-2.5-flash"
	DefaultBaseURL   = "https://generativelanguage.googleapis.com"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	DefaultTimeout   = 20 * time.Second
)

// DefaultSettings returns the hardcoded configuration.
func DefaultSettings() Settings {
	return Settings{
		TickRate: 60,
		Keys: KeyConfig{
			Lanes: [][]string{
				{"d", "1"},
				{"f", "2"},
				{"j", "3"},
				{"k", "4"},
			},
			Pause:   []string{"p", " "},
			Restart: []string{"r"},
			Mute:    []string{"m"},
			Back:    []string{"esc", "b"},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.3,
		},
		Generator: GeneratorConfig{
			Model:     DefaultModel,
			BaseURL:   DefaultBaseURL,
			APIKeyEnv: DefaultAPIKeyEnv,
			Timeout:   DefaultTimeout,
		},
		Storage: StorageConfig{
			DBPath:    "~/.pianofire/levels.db",
			LevelsDir: "~/.pianofire/levels",
		},
		Level: rhythm.DefaultLevel(),
	}
}

// fillDefaults replaces zero values left by a partial YAML file.
func (s *Settings) fillDefaults() {
	def := DefaultSettings()

	if s.TickRate == 0 {
		s.TickRate = def.TickRate
	}
	if len(s.Keys.Lanes) == 0 {
		s.Keys.Lanes = def.Keys.Lanes
	}
	if len(s.Keys.Pause) == 0 {
		s.Keys.Pause = def.Keys.Pause
	}
	if len(s.Keys.Restart) == 0 {
		s.Keys.Restart = def.Keys.Restart
	}
	if len(s.Keys.Mute) == 0 {
		s.Keys.Mute = def.Keys.Mute
	}
	if len(s.Keys.Back) == 0 {
		s.Keys.Back = def.Keys.Back
	}
	if s.Generator.Model == "" {
		s.Generator.Model = def.Generator.Model
	}
	if s.Generator.BaseURL == "" {
		s.Generator.BaseURL = def.Generator.BaseURL
	}
	if s.Generator.APIKeyEnv == "" {
		s.Generator.APIKeyEnv = def.Generator.APIKeyEnv
	}
	if s.Generator.Timeout == 0 {
		s.Generator.Timeout = def.Generator.Timeout
	}
	if s.Storage.DBPath == "" {
		s.Storage.DBPath = def.Storage.DBPath
	}
	if s.Storage.LevelsDir == "" {
		s.Storage.LevelsDir = def.Storage.LevelsDir
	}
	s.Level = s.Level.Normalize()
}
