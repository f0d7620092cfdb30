// Package levels loads hand-written level files from a directory.
// Files are YAML (or JSON, which YAML accepts) LevelConfig records with an
// optional id; the file name is the id otherwise.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// Level is a level definition read from disk.
type Level struct {
	ID       string
	Config   rhythm.LevelConfig
	FilePath string
}

// fileLevel is the on-disk layout.
type fileLevel struct {
	ID                 string `yaml:"id"`
	rhythm.LevelConfig `yaml:",inline"`
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader. A leading ~ is expanded.
func NewLoader(root string) *Loader {
	if strings.HasPrefix(root, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, root[1:])
		}
	}
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// A missing directory holds no levels. Invalid files are skipped.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	var fl fileLevel
	if err := yaml.Unmarshal(data, &fl); err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	if fl.Name == "" {
		return Level{}, fmt.Errorf("levels: %s has no name", path)
	}

	id := fl.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return Level{
		ID:       id,
		Config:   fl.LevelConfig.Normalize(),
		FilePath: path,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Resolve loads ref as a file path when it names one, and as an ID otherwise.
func (l *Loader) Resolve(ref string) (Level, error) {
	if _, err := os.Stat(ref); err == nil {
		return l.LoadFile(ref)
	}
	return l.LoadByID(ref)
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
