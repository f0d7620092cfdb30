// Package registry provides a global registry of quick-start presets.
// Presets register themselves in init() functions, allowing the menu and the
// CLI to discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// Preset is a named prompt for the level generator.
type Preset struct {
	// ID is a short identifier used by the CLI (e.g., "lofi").
	ID string

	// Title is the human-readable name shown in the menu.
	Title string

	// Prompt is sent to the level generator.
	Prompt string

	// Offline is played when the generator is unavailable.
	Offline rhythm.LevelConfig
}

var (
	presets = make(map[string]Preset)
	mu      sync.RWMutex
)

// Register adds a preset to the registry.
// Panics if a preset with the same ID is already registered.
func Register(p Preset) {
	mu.Lock()
	defer mu.Unlock()

	if p.ID == "" {
		panic("registry: preset without ID")
	}
	if _, exists := presets[p.ID]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", p.ID))
	}

	p.Offline = p.Offline.Normalize()
	presets[p.ID] = p
}

// List returns all registered presets, sorted by ID.
func List() []Preset {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Preset, 0, len(presets))
	for _, p := range presets {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a preset by its ID.
// Returns an error if the preset ID is not registered.
func Get(id string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("registry: unknown preset %q", id)
	}
	return p, nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := presets[id]
	return ok
}
