package rhythm

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		bpm      float64
		expected float64
	}{
		{"at spawn", 0, 100, 0},
		{"hit line at 100 BPM", 1920 * time.Millisecond, 100, 80},
		{"miss line at 100 BPM", 2400 * time.Millisecond, 100, 100},
		{"one second at 60 BPM", time.Second, 60, 25},
		{"double tempo falls twice as fast", time.Second, 120, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Position(tc.elapsed, 0, tc.bpm)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Position(%v, %v) = %f, expected %f", tc.elapsed, tc.bpm, got, tc.expected)
			}
		})
	}
}

func TestPositionMonotonic(t *testing.T) {
	spawn := 300 * time.Millisecond
	prev := Position(spawn, spawn, 137)
	for now := spawn; now < 10*time.Second; now += 7 * time.Millisecond {
		got := Position(now, spawn, 137)
		if got < prev {
			t.Fatalf("Position decreased at %v: %f < %f", now, got, prev)
		}
		prev = got
	}
}

func TestSpawnerCadence(t *testing.T) {
	level := DefaultLevel()
	sp := NewSpawner(level, rand.New(rand.NewSource(1)), 0)

	if _, ok := sp.Next(799 * time.Millisecond); ok {
		t.Error("should not spawn before one interval has elapsed")
	}
	first, ok := sp.Next(800 * time.Millisecond)
	if !ok {
		t.Fatal("should spawn once the interval has elapsed")
	}
	if first.ID != 1 || first.SpawnTime != 800*time.Millisecond {
		t.Errorf("first tile = %+v, expected ID 1 spawned at 800ms", first)
	}
	if sp.LastSpawn() != 800*time.Millisecond {
		t.Errorf("LastSpawn() = %v, expected 800ms", sp.LastSpawn())
	}
	if _, ok := sp.Next(900 * time.Millisecond); ok {
		t.Error("should wait a full interval after the last spawn")
	}

	// A long gap yields a single tile, not a backlog.
	second, ok := sp.Next(5 * time.Second)
	if !ok || second.ID != 2 {
		t.Fatalf("second tile = %+v, ok=%v", second, ok)
	}
	if _, ok := sp.Next(5 * time.Second); ok {
		t.Error("only one tile may spawn per call")
	}
}

func TestSpawnerTileAttributes(t *testing.T) {
	level := DefaultLevel()
	sp := NewSpawner(level, rand.New(rand.NewSource(7)), 0)

	lanes := map[int]bool{}
	colors := map[string]bool{}
	var lastID uint64
	for i := 1; i <= 200; i++ {
		tile, ok := sp.Next(time.Duration(i) * level.Interval())
		if !ok {
			t.Fatalf("spawn %d failed", i)
		}
		if tile.Lane < 0 || tile.Lane >= LaneCount {
			t.Fatalf("lane %d out of range", tile.Lane)
		}
		if tile.Color != level.Theme.Primary && tile.Color != level.Theme.Secondary {
			t.Fatalf("color %q is not a theme tile color", tile.Color)
		}
		if tile.ID <= lastID {
			t.Fatalf("IDs must increase: %d after %d", tile.ID, lastID)
		}
		if tile.Played || tile.Missed {
			t.Fatal("new tiles must be unresolved")
		}
		lastID = tile.ID
		lanes[tile.Lane] = true
		colors[string(tile.Color)] = true
	}
	if len(lanes) != LaneCount {
		t.Errorf("expected every lane to be used, got %v", lanes)
	}
	if len(colors) != 2 {
		t.Errorf("expected both tile colors, got %v", colors)
	}
}

func TestProject(t *testing.T) {
	tile := TileData{ID: 4, Lane: 1, SpawnTime: time.Second}
	view := Project(tile, time.Second+960*time.Millisecond, 100)

	if view.ID != 4 || view.Lane != 1 {
		t.Errorf("Project should keep tile data, got %+v", view.TileData)
	}
	if math.Abs(view.Y-40) > 1e-9 {
		t.Errorf("Y = %f, expected 40", view.Y)
	}
}
