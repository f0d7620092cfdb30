package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testLevel(name string, bpm float64) rhythm.LevelConfig {
	l := rhythm.DefaultLevel()
	l.Name = name
	l.BPM = bpm
	l.Difficulty = rhythm.DifficultyHard
	l.Theme.Primary = "#ff0000"
	return l
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveLevel("jazz", testLevel("Jazz", 120)); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent and data must survive.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.LookupLevel("jazz"); err != nil || !ok {
		t.Errorf("LookupLevel() after reopen = %v, %v", ok, err)
	}
}

func TestSaveAndLookupLevel(t *testing.T) {
	store := openTestStore(t)
	level := testLevel("Cyber Jazz", 140)

	if err := store.SaveLevel("Cyberpunk Jazz with high speed", level); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}

	got, ok, err := store.LookupLevel("  cyberpunk   JAZZ with high speed ")
	if err != nil {
		t.Fatalf("LookupLevel() failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit for an equivalent prompt")
	}
	if got != level {
		t.Errorf("LookupLevel() = %+v, expected %+v", got, level)
	}
}

func TestLookupMiss(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.LookupLevel("nothing here")
	if err != nil {
		t.Fatalf("LookupLevel() failed: %v", err)
	}
	if ok {
		t.Error("expected a cache miss")
	}

	if _, ok, _ := store.LookupLevel("   "); ok {
		t.Error("empty prompt should never hit")
	}
}

func TestSaveLevelUpsert(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveLevel("lofi", testLevel("First", 80)); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	if err := store.SaveLevel("LOFI", testLevel("Second", 90)); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}

	got, ok, err := store.LookupLevel("lofi")
	if err != nil || !ok {
		t.Fatalf("LookupLevel() = %v, %v", ok, err)
	}
	if got.Name != "Second" || got.BPM != 90 {
		t.Errorf("expected replaced level, got %+v", got)
	}

	levels, err := store.RecentLevels(10)
	if err != nil {
		t.Fatalf("RecentLevels() failed: %v", err)
	}
	if len(levels) != 1 {
		t.Errorf("expected 1 cached level after upsert, got %d", len(levels))
	}
}

func TestSaveLevelEmptyPrompt(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveLevel(" ", rhythm.DefaultLevel()); err == nil {
		t.Error("SaveLevel() with empty prompt should fail")
	}
}

func TestRecentLevels(t *testing.T) {
	store := openTestStore(t)

	prompts := []string{"one", "two", "three"}
	for i, p := range prompts {
		if err := store.SaveLevel(p, testLevel(p, float64(100+i))); err != nil {
			t.Fatalf("SaveLevel(%q) failed: %v", p, err)
		}
	}

	levels, err := store.RecentLevels(2)
	if err != nil {
		t.Fatalf("RecentLevels() failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].Prompt != "three" || levels[1].Prompt != "two" {
		t.Errorf("expected newest first, got %q, %q", levels[0].Prompt, levels[1].Prompt)
	}
	if levels[0].Uses != 1 {
		t.Errorf("Uses = %d, expected 1", levels[0].Uses)
	}
	if levels[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestLookupCountsUses(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveLevel("dubstep", testLevel("Drop", 150)); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, ok, err := store.LookupLevel("dubstep"); err != nil || !ok {
			t.Fatalf("LookupLevel() = %v, %v", ok, err)
		}
	}

	levels, err := store.RecentLevels(0)
	if err != nil {
		t.Fatalf("RecentLevels() failed: %v", err)
	}
	if len(levels) != 1 || levels[0].Uses != 4 {
		t.Errorf("expected 4 uses, got %+v", levels)
	}
}

func TestClearLevels(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveLevel("a", testLevel("A", 100)); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}

	if err := store.ClearLevels(); err != nil {
		t.Fatalf("ClearLevels() failed: %v", err)
	}

	levels, err := store.RecentLevels(10)
	if err != nil {
		t.Fatalf("RecentLevels() failed: %v", err)
	}
	if len(levels) != 0 {
		t.Errorf("expected empty cache, got %d", len(levels))
	}
}

func TestNormalizePrompt(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Chill Lo-Fi", "chill lo-fi"},
		{"  spaced\tout  prompt ", "spaced out prompt"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := NormalizePrompt(tc.input); got != tc.expected {
			t.Errorf("NormalizePrompt(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}
