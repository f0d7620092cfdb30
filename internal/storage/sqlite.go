// Package storage provides SQLite-based caching of generated levels.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/piano-fire/internal/core"
	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// Store manages the SQLite database connection for the level cache.
type Store struct {
	db *sql.DB
}

// CachedLevel is a generated level together with the prompt that produced it.
type CachedLevel struct {
	Prompt    string
	Level     rhythm.LevelConfig
	Uses      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS levels (
			prompt TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			bpm REAL NOT NULL,
			spawn_interval INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			primary_color TEXT NOT NULL,
			secondary_color TEXT NOT NULL,
			accent_color TEXT NOT NULL,
			background_color TEXT NOT NULL,
			uses INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_levels_updated ON levels(updated_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NormalizePrompt returns the cache key for a prompt.
func NormalizePrompt(prompt string) string {
	return strings.ToLower(strings.Join(strings.Fields(prompt), " "))
}

// SaveLevel stores the level generated for a prompt, replacing any previous entry.
func (s *Store) SaveLevel(prompt string, level rhythm.LevelConfig) error {
	key := NormalizePrompt(prompt)
	if key == "" {
		return errors.New("storage: empty prompt")
	}

	_, err := s.db.Exec(
		`INSERT INTO levels
		 (prompt, name, description, bpm, spawn_interval, difficulty,
		  primary_color, secondary_color, accent_color, background_color)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(prompt) DO UPDATE SET
		  name = excluded.name,
		  description = excluded.description,
		  bpm = excluded.bpm,
		  spawn_interval = excluded.spawn_interval,
		  difficulty = excluded.difficulty,
		  primary_color = excluded.primary_color,
		  secondary_color = excluded.secondary_color,
		  accent_color = excluded.accent_color,
		  background_color = excluded.background_color,
		  updated_at = CURRENT_TIMESTAMP`,
		key,
		level.Name,
		level.Description,
		level.BPM,
		level.SpawnInterval,
		string(level.Difficulty),
		string(level.Theme.Primary),
		string(level.Theme.Secondary),
		string(level.Theme.Accent),
		string(level.Theme.Background),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level: %w", err)
	}
	return nil
}

// LookupLevel returns the cached level for a prompt. A hit bumps its use count.
func (s *Store) LookupLevel(prompt string) (rhythm.LevelConfig, bool, error) {
	key := NormalizePrompt(prompt)
	if key == "" {
		return rhythm.LevelConfig{}, false, nil
	}

	entry, err := scanLevel(s.db.QueryRow(
		`SELECT `+levelColumns+` FROM levels WHERE prompt = ?`,
		key,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return rhythm.LevelConfig{}, false, nil
	}
	if err != nil {
		return rhythm.LevelConfig{}, false, fmt.Errorf("storage: cannot query level: %w", err)
	}

	if _, err := s.db.Exec(
		`UPDATE levels SET uses = uses + 1, updated_at = CURRENT_TIMESTAMP WHERE prompt = ?`,
		key,
	); err != nil {
		return rhythm.LevelConfig{}, false, fmt.Errorf("storage: cannot touch level: %w", err)
	}

	return entry.Level, true, nil
}

// RecentLevels returns the most recently used levels, newest first.
func (s *Store) RecentLevels(limit int) ([]CachedLevel, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+levelColumns+`
		 FROM levels
		 ORDER BY updated_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var entries []CachedLevel
	for rows.Next() {
		e, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearLevels deletes every cached level.
func (s *Store) ClearLevels() error {
	if _, err := s.db.Exec("DELETE FROM levels"); err != nil {
		return fmt.Errorf("storage: cannot clear levels: %w", err)
	}
	return nil
}

const levelColumns = `prompt, name, description, bpm, spawn_interval, difficulty,
	primary_color, secondary_color, accent_color, background_color,
	uses, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLevel(row rowScanner) (CachedLevel, error) {
	var e CachedLevel
	var difficulty, primary, secondary, accent, bg string
	var createdAt, updatedAt any
	if err := row.Scan(
		&e.Prompt,
		&e.Level.Name,
		&e.Level.Description,
		&e.Level.BPM,
		&e.Level.SpawnInterval,
		&difficulty,
		&primary,
		&secondary,
		&accent,
		&bg,
		&e.Uses,
		&createdAt,
		&updatedAt,
	); err != nil {
		return CachedLevel{}, err
	}

	e.Level.Difficulty = rhythm.Difficulty(difficulty)
	e.Level.Theme = rhythm.Theme{
		Primary:    core.Color(primary),
		Secondary:  core.Color(secondary),
		Accent:     core.Color(accent),
		Background: core.Color(bg),
	}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
