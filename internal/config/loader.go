package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// Load loads the game settings.
// Search order: customPath -> ~/.pianofire/config.yaml -> ./configs/pianofire.yaml -> embedded default
func Load(customPath string) (Settings, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readSettings(customPath)
		if err != nil {
			return DefaultSettings(), err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if cfg, err := readSettings(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := readSettings(filepath.Join("configs", "pianofire.yaml")); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parseSettings(defaultSettingsYAML)
	if err != nil {
		return DefaultSettings(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func readSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := parseSettings(data)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// parseSettings decodes over the hardcoded defaults so omitted keys keep them.
func parseSettings(data []byte) (Settings, error) {
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// LoadLevel reads a level definition from a YAML file and normalizes it.
func LoadLevel(path string) (rhythm.LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rhythm.LevelConfig{}, fmt.Errorf("config: failed to read level %s: %w", path, err)
	}
	var level rhythm.LevelConfig
	if err := yaml.Unmarshal(data, &level); err != nil {
		return rhythm.LevelConfig{}, fmt.Errorf("config: failed to parse level %s: %w", path, err)
	}
	return level.Normalize(), nil
}

// MarshalLevel renders a level as YAML, the format LoadLevel reads.
func MarshalLevel(level rhythm.LevelConfig) ([]byte, error) {
	data, err := yaml.Marshal(level)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode level: %w", err)
	}
	return data, nil
}

// UserDir returns the per-user data directory, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pianofire")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}
