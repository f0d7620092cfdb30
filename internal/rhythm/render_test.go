package rhythm

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/piano-fire/internal/core"
)

func TestLayoutLanes(t *testing.T) {
	l := NewLayout(80, 24)

	if l.LaneWidth < minLaneWidth || l.LaneWidth > maxLaneWidth {
		t.Fatalf("LaneWidth = %d out of bounds", l.LaneWidth)
	}
	for lane := 0; lane < LaneCount; lane++ {
		r := l.LaneRect(lane)
		cx, cy := r.Center()
		got, ok := l.LaneAt(cx, cy)
		if !ok || got != lane {
			t.Errorf("LaneAt(center of lane %d) = %d, %v", lane, got, ok)
		}
		if lane > 0 && r.X <= l.LaneRect(lane-1).Right()-1 {
			t.Errorf("lane %d overlaps lane %d", lane, lane-1)
		}
	}

	// Separators and the sidebar are not lanes.
	if _, ok := l.LaneAt(l.Field.X, l.Field.Y+1); ok {
		t.Error("left separator should not map to a lane")
	}
	if _, ok := l.LaneAt(l.Field.Right()+3, l.Field.Y+1); ok {
		t.Error("sidebar should not map to a lane")
	}
	cx, _ := l.LaneRect(0).Center()
	if _, ok := l.LaneAt(cx, l.Field.Y-1); ok {
		t.Error("HUD row above the field should not map to a lane")
	}
	if _, ok := l.LaneAt(cx, l.Field.Bottom()); ok {
		t.Error("row below the field should not map to a lane")
	}
}

func TestLayoutHitPoint(t *testing.T) {
	l := NewLayout(80, 24)

	for lane := 0; lane < LaneCount; lane++ {
		x, y := PixelToCell(l.HitPoint(lane))
		if y != l.HitLineRow() {
			t.Errorf("hit point row = %d, expected %d", y, l.HitLineRow())
		}
		if got, ok := l.LaneAt(x, y); !ok || got != lane {
			t.Errorf("hit point of lane %d lands in lane %d (%v)", lane, got, ok)
		}
	}
}

func TestCellPixelRoundTrip(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {3, 7}, {79, 23}} {
		x, y := PixelToCell(CellToPixel(c[0], c[1]))
		if x != c[0] || y != c[1] {
			t.Errorf("round trip of %v gave (%d, %d)", c, x, y)
		}
	}
}

func TestRenderPlayfield(t *testing.T) {
	s, _, _ := newTestSession(t)
	addTile(s, 1, 0, 0)
	addTile(s, 2, 3, 0)
	s.tiles[1].Played = true

	now := 1200 * time.Millisecond // position 50
	l := NewLayout(80, 24)
	screen := core.NewScreen(80, 24)
	Render(s.Snapshot(now), l, screen)

	if !strings.Contains(screen.Row(0), "Neon Genesis") {
		t.Errorf("HUD should show the level name, got %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "BPM: 100") {
		t.Errorf("HUD should show the BPM, got %q", screen.Row(1))
	}

	hit := l.HitLineRow()
	if screen.Get(l.LaneRect(1).X, hit) != HitLineChar {
		t.Errorf("expected hit line at row %d", hit)
	}

	row := l.RowFor(55)
	cell := screen.GetCell(l.LaneRect(0).X, row)
	if cell.Rune != TileChar || cell.Color != "#06b6d4" {
		t.Errorf("expected lane 0 tile at row %d, got %q %q", row, cell.Rune, cell.Color)
	}
	if screen.Get(l.LaneRect(3).X, row) == TileChar {
		t.Error("played tiles must not be drawn")
	}
}

func TestRenderMissedTileGray(t *testing.T) {
	level := DefaultLevel()
	snap := Snapshot{
		Level:  level,
		State:  StatePlaying,
		Time:   2450 * time.Millisecond,
		Health: 85,
		Tiles: []TileView{
			{TileData: TileData{ID: 1, Lane: 2, Missed: true, Color: level.Theme.Primary}, Y: 90},
		},
		Feedback: Feedback{Judgement: JudgementEmpty, Lane: 2, At: 2400 * time.Millisecond},
	}

	l := NewLayout(80, 40)
	screen := core.NewScreen(80, 40)
	Render(snap, l, screen)

	cell := screen.GetCell(l.LaneRect(2).X, l.RowFor(95))
	if cell.Rune != MissedTileChar || cell.Color != core.ColorGray {
		t.Errorf("missed tile cell = %q %q, expected gray %q", cell.Rune, cell.Color, MissedTileChar)
	}
	if !strings.Contains(screen.Row(l.HitLineRow()+1), "MISS") {
		t.Error("miss feedback should be shown under the hit line")
	}
}

func TestRenderOverlays(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Pause(100 * time.Millisecond)

	screen := core.NewScreen(80, 24)
	Render(s.Snapshot(200*time.Millisecond), NewLayout(80, 24), screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay expected")
	}
	// Centered on the screen: box row 9, title one row below.
	if screen.Get(37, 10) != 'P' || screen.Get(42, 10) != 'D' {
		t.Errorf("PAUSED should be centered, row = %q", screen.Row(10))
	}

	s.Resume(200 * time.Millisecond)
	s.health.Adjust(-MaxHealth)
	s.Tick(300 * time.Millisecond)

	Render(s.Snapshot(300*time.Millisecond), NewLayout(80, 24), screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay expected")
	}
}

func TestRenderSmallScreen(t *testing.T) {
	s, _, _ := newTestSession(t)
	addTile(s, 1, 0, 0)

	screen := core.NewScreen(20, 6)
	// Must not panic when the field does not fit.
	Render(s.Snapshot(time.Second), NewLayout(20, 6), screen)
}
