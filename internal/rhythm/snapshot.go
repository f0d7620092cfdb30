package rhythm

import "time"

// Snapshot is an immutable view of a session for rendering.
type Snapshot struct {
	SessionID string
	Level     LevelConfig
	State     State
	Time      time.Duration // simulation time the view was taken at
	Tiles     []TileView
	Particles []Particle
	Score     GameScore
	Health    int
	Feedback  Feedback
	Ticks     uint64
}

// Snapshot projects the session to wall time now without mutating it.
func (s *Session) Snapshot(now time.Duration) Snapshot {
	t := s.simTime(now)
	if t < s.lastTick {
		t = s.lastTick
	}

	tiles := make([]TileView, 0, len(s.tiles))
	for _, tile := range s.tiles {
		tiles = append(tiles, Project(tile, t, s.level.BPM))
	}

	return Snapshot{
		SessionID: s.id,
		Level:     s.level,
		State:     s.state,
		Time:      t,
		Tiles:     tiles,
		Particles: s.effects.Particles(),
		Score:     s.scorer.Score(),
		Health:    s.health.Value(),
		Feedback:  s.feedback,
		Ticks:     s.ticks,
	}
}

// ActiveFeedback returns the last judgement if it is still fresh.
func (snap Snapshot) ActiveFeedback() (Feedback, bool) {
	f := snap.Feedback
	if f.Judgement == JudgementIgnored || snap.Time-f.At > FeedbackDuration {
		return Feedback{}, false
	}
	return f, true
}
