package rhythm

import (
	"fmt"
	"math"

	"github.com/vovakirdan/piano-fire/internal/core"
)

// Particles live in pixel space; one terminal cell covers this many pixels.
const (
	PixelsPerCellX = 8
	PixelsPerCellY = 16
)

// Layout constants in cells.
const (
	hudRows      = 2
	footerRows   = 1
	minLaneWidth = 4
	maxLaneWidth = 14
	sidebarWidth = 22
	minFieldRows = 8
)

// Visual characters for rendering.
const (
	TileChar       = '█'
	MissedTileChar = '░'
	HitLineChar    = '═'
	LaneSepChar    = '│'
	HealthChar     = '█'
	HealthEmpty    = '·'
)

// Layout maps the percent-based playfield onto terminal cells.
type Layout struct {
	Screen    core.Rect // whole screen
	Field     core.Rect // lanes including separators
	LaneWidth int
}

// NewLayout computes the playfield for a screen size.
func NewLayout(screenW, screenH int) Layout {
	fieldH := screenH - hudRows - footerRows
	if fieldH < minFieldRows {
		fieldH = minFieldRows
	}

	avail := screenW - sidebarWidth - 2
	if avail < minLaneWidth*LaneCount+LaneCount+1 {
		avail = screenW - 2
	}
	laneW := core.Clamp((avail-(LaneCount+1))/LaneCount, minLaneWidth, maxLaneWidth)
	fieldW := laneW*LaneCount + LaneCount + 1

	return Layout{
		Screen:    core.NewRect(0, 0, screenW, screenH),
		Field:     core.NewRect(1, hudRows, fieldW, fieldH),
		LaneWidth: laneW,
	}
}

// LaneRect returns the interior cells of a lane.
func (l Layout) LaneRect(lane int) core.Rect {
	x := l.Field.X + 1 + lane*(l.LaneWidth+1)
	return core.NewRect(x, l.Field.Y, l.LaneWidth, l.Field.H)
}

// RowFor converts a playfield percentage to a screen row. Values past 100 map
// below the field.
func (l Layout) RowFor(percent float64) int {
	return l.Field.Y + int(math.Floor(percent/100*float64(l.Field.H)))
}

// HitLineRow returns the row of the hit line.
func (l Layout) HitLineRow() int {
	return l.RowFor(HitZoneY)
}

// LaneAt returns the lane under a screen cell, if any.
func (l Layout) LaneAt(x, y int) (int, bool) {
	for lane := 0; lane < LaneCount; lane++ {
		if l.LaneRect(lane).Contains(x, y) {
			return lane, true
		}
	}
	return 0, false
}

// CellToPixel returns the pixel center of a cell.
func CellToPixel(x, y int) core.Vec2 {
	return core.Vec2{
		X: float64(x*PixelsPerCellX + PixelsPerCellX/2),
		Y: float64(y*PixelsPerCellY + PixelsPerCellY/2),
	}
}

// PixelToCell returns the cell containing a pixel.
func PixelToCell(p core.Vec2) (int, int) {
	return int(math.Floor(p.X / PixelsPerCellX)), int(math.Floor(p.Y / PixelsPerCellY))
}

// HitPoint returns the pixel center of a lane on the hit line.
func (l Layout) HitPoint(lane int) core.Vec2 {
	cx, _ := l.LaneRect(lane).Center()
	return CellToPixel(cx, l.HitLineRow())
}

// Render draws a snapshot into dst using the layout.
func Render(snap Snapshot, l Layout, dst *core.Screen) {
	dst.Clear()
	theme := snap.Level.Theme

	drawHUD(snap, l, dst)
	drawField(l, dst)
	drawTiles(snap, l, dst)
	drawFeedback(snap, l, dst)
	drawParticles(snap, dst)
	drawHealth(snap, l, dst)
	drawSidebar(snap, l, dst)

	switch snap.State {
	case StatePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", theme.Accent)
	case StateEnded:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d", snap.Score.Score), core.ColorBrightRed)
	}
}

func drawHUD(snap Snapshot, l Layout, dst *core.Screen) {
	theme := snap.Level.Theme
	dst.DrawTextColored(1, 0, snap.Level.Name, theme.Accent)
	dst.DrawTextColored(1, 1, fmt.Sprintf("BPM: %.0f", snap.Level.BPM), core.ColorGray)

	score := fmt.Sprintf("%d", snap.Score.Score)
	right := l.Field.Right()
	dst.DrawTextColored(right-len(score), 0, score, core.ColorBrightCyan)
	if snap.Score.Combo > 5 {
		combo := fmt.Sprintf("%d COMBO!", snap.Score.Combo)
		dst.DrawTextColored(right-len(combo), 1, combo, core.ColorBrightMagenta)
	}
}

func drawField(l Layout, dst *core.Screen) {
	for i := 0; i <= LaneCount; i++ {
		x := l.Field.X + i*(l.LaneWidth+1)
		dst.DrawVLine(x, l.Field.Y, l.Field.H, LaneSepChar, core.ColorDarkGray)
	}
	dst.DrawHLine(l.Field.X, l.HitLineRow(), l.Field.W, HitLineChar, core.ColorBrightWhite)
}

func drawTiles(snap Snapshot, l Layout, dst *core.Screen) {
	for _, t := range snap.Tiles {
		if t.Played {
			continue
		}
		r := l.LaneRect(t.Lane)
		top := l.RowFor(t.Y)
		bottom := l.RowFor(t.Y + TileHeight)
		if bottom <= top {
			bottom = top + 1
		}

		ch, color := TileChar, t.Color
		if t.Missed {
			ch, color = MissedTileChar, core.ColorGray
		}
		for y := core.Clamp(top, r.Y, r.Bottom()); y < core.Clamp(bottom, r.Y, r.Bottom()); y++ {
			dst.DrawHLine(r.X, y, r.W, ch, color)
		}
	}
}

func drawFeedback(snap Snapshot, l Layout, dst *core.Screen) {
	f, ok := snap.ActiveFeedback()
	if !ok {
		return
	}
	color := core.ColorBrightRed
	switch f.Judgement {
	case JudgementPerfect:
		color = core.ColorBrightYellow
	case JudgementGood:
		color = core.ColorBrightGreen
	}
	r := l.LaneRect(f.Lane)
	label := f.Judgement.String()
	x := r.X + (r.W-len(label))/2
	dst.DrawTextColored(x, l.HitLineRow()+1, label, color)
}

func drawParticles(snap Snapshot, dst *core.Screen) {
	for _, p := range snap.Particles {
		x, y := PixelToCell(core.Vec2{X: p.X, Y: p.Y})
		ch := '·'
		switch {
		case p.Life > 0.6:
			ch = '*'
		case p.Life > 0.3:
			ch = '+'
		}
		dst.SetColored(x, y, ch, p.Color)
	}
}

func drawHealth(snap Snapshot, l Layout, dst *core.Screen) {
	x := l.Field.Right() + 1
	filled := int(math.Round(float64(snap.Health) / MaxHealth * float64(l.Field.H)))
	color := core.ColorBrightGreen
	if snap.Health < 30 {
		color = core.ColorBrightRed
	}
	for i := 0; i < l.Field.H; i++ {
		y := l.Field.Bottom() - 1 - i
		if i < filled {
			dst.SetColored(x, y, HealthChar, color)
		} else {
			dst.SetColored(x, y, HealthEmpty, core.ColorDarkGray)
		}
	}
}

func drawSidebar(snap Snapshot, l Layout, dst *core.Screen) {
	x := l.Field.Right() + 4
	if x+sidebarWidth-4 > l.Screen.W {
		return
	}
	s := snap.Score
	lines := []struct {
		text  string
		color core.Color
	}{
		{snap.Level.Description, core.ColorGray},
		{"", core.ColorDefault},
		{fmt.Sprintf("Health   %3d", snap.Health), core.ColorWhite},
		{fmt.Sprintf("Combo    %3d", s.Combo), core.ColorWhite},
		{fmt.Sprintf("Max      %3d", s.MaxCombo), core.ColorWhite},
		{fmt.Sprintf("Perfect  %3d", s.Perfects), core.ColorBrightYellow},
		{fmt.Sprintf("Good     %3d", s.Goods), core.ColorBrightGreen},
		{fmt.Sprintf("Miss     %3d", s.Misses), core.ColorBrightRed},
		{fmt.Sprintf("Accuracy %5.1f%%", s.Accuracy()), core.ColorWhite},
	}
	for i, line := range lines {
		text := line.text
		if len([]rune(text)) > sidebarWidth {
			text = string([]rune(text)[:sidebarWidth-1]) + "…"
		}
		dst.DrawTextColored(x, l.Field.Y+i, text, line.color)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, color core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), color)

	dst.DrawTextCentered(boxY+1, title, color)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorWhite)
}
