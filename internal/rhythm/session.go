package rhythm

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/piano-fire/internal/core"
)

// State is the lifecycle state of a session.
type State int

const (
	StatePlaying State = iota
	StatePaused
	StateEnded  // health depleted, terminal
	StateClosed // torn down by Exit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Cues receives audio cue requests. Calls must not block.
type Cues interface {
	Initialize(bpm float64)
	PlayHit(lane int)
	PlayMiss()
}

// Hooks receives the session boundary events. Each fires at most once.
type Hooks interface {
	OnGameOver(final GameScore)
	OnExit()
}

// Options configures a new session.
type Options struct {
	Level  LevelConfig
	Seed   int64 // RNG seed for spawning and particles
	Cues   Cues  // nil disables audio cues
	Hooks  Hooks // nil disables boundary callbacks
	Logger *log.Logger

	// HitPoint places the particle burst for taps that carry no screen
	// coordinates (keyboard taps). Nil means such taps emit no burst.
	HitPoint func(lane int) core.Vec2
}

// FeedbackDuration is how long the last judgement stays visible in the HUD.
const FeedbackDuration = 500 * time.Millisecond

// Feedback is the most recent judgement, kept for display only.
type Feedback struct {
	Judgement Judgement
	Lane      int
	At        time.Duration // simulation time
}

// TapResult describes what a tap resolved.
type TapResult struct {
	Judgement Judgement
	TileID    uint64 // zero unless a tile was hit
	Dist      float64
	Points    int
}

// Session is the loop controller: it owns all mutable state of one game and
// advances it on every tick. Timestamps passed in are wall-clock offsets from
// an arbitrary epoch; paused time is excluded from the simulation clock.
type Session struct {
	id       string
	level    LevelConfig
	state    State
	spawner  *Spawner
	detector HitDetector
	scorer   ScoreKeeper
	health   Health
	effects  *ParticleSystem
	tiles    []TileData

	pausedTotal time.Duration // wall time spent paused
	pausedAt    time.Duration // wall time the current pause began
	endedAt     time.Duration // simulation time of depletion
	lastTick    time.Duration // simulation time of the last tick
	ticks       uint64
	feedback    Feedback

	cues     Cues
	hooks    Hooks
	hitPoint func(lane int) core.Vec2
	logger   *log.Logger
}

// NewSession starts a fresh session in the Playing state at wall time now.
func NewSession(opts Options, now time.Duration) *Session {
	level := opts.Level.Normalize()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	s := &Session{
		id:       uuid.NewString(),
		level:    level,
		state:    StatePlaying,
		spawner:  NewSpawner(level, rng, now),
		detector: HitDetector{BPM: level.BPM},
		health:   NewHealth(),
		effects:  NewParticleSystem(rng),
		tiles:    make([]TileData, 0, 16),
		lastTick: now,
		feedback: Feedback{Judgement: JudgementIgnored},
		cues:     opts.Cues,
		hooks:    opts.Hooks,
		hitPoint: opts.HitPoint,
	}
	s.logger = logger.With("session", s.id)

	if s.cues != nil {
		s.safely("initialize", func() { s.cues.Initialize(level.BPM) })
	}
	s.logger.Debug("session started", "level", level.Name, "bpm", level.BPM, "interval", level.SpawnInterval)
	return s
}

// ID returns the unique identifier of this session.
func (s *Session) ID() string {
	return s.id
}

// Level returns the normalized level the session plays.
func (s *Session) Level() LevelConfig {
	return s.level
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Score returns a copy of the current score.
func (s *Session) Score() GameScore {
	return s.scorer.Score()
}

// Health returns the current health value.
func (s *Session) Health() int {
	return s.health.Value()
}

// Ticks returns how many simulation ticks have run.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// simTime converts a wall timestamp to simulation time.
func (s *Session) simTime(now time.Duration) time.Duration {
	switch s.state {
	case StatePaused:
		return s.pausedAt - s.pausedTotal
	case StateEnded, StateClosed:
		return s.endedAt
	default:
		return now - s.pausedTotal
	}
}

// Tick advances the simulation to wall time now. Paused, ended and closed
// sessions ignore ticks.
func (s *Session) Tick(now time.Duration) {
	if s.state != StatePlaying {
		return
	}
	t := s.simTime(now)
	if t < s.lastTick {
		t = s.lastTick // clocks may jitter backwards; never rewind.
	}
	s.lastTick = t
	s.ticks++

	if tile, ok := s.spawner.Next(t); ok {
		s.tiles = append(s.tiles, tile)
	}

	s.detectMisses(t)
	s.evict(t)

	if s.health.IsDepleted() {
		s.state = StateEnded
		s.endedAt = t
		final := s.scorer.Score()
		s.logger.Debug("session ended", "score", final.Score, "max_combo", final.MaxCombo)
		if s.hooks != nil {
			s.safely("game over", func() { s.hooks.OnGameOver(final) })
		}
		return
	}

	s.effects.Step()
}

func (s *Session) detectMisses(t time.Duration) {
	for i := range s.tiles {
		tile := &s.tiles[i]
		if tile.Played || tile.Missed {
			continue
		}
		if Position(t, tile.SpawnTime, s.level.BPM) > MissLine {
			tile.Missed = true
			s.scorer.RecordMiss()
			s.health.Adjust(-MissPenalty)
			s.feedback = Feedback{Judgement: JudgementEmpty, Lane: tile.Lane, At: t}
			if s.cues != nil {
				s.safely("miss cue", s.cues.PlayMiss)
			}
		}
	}
}

func (s *Session) evict(t time.Duration) {
	kept := s.tiles[:0]
	for _, tile := range s.tiles {
		if Position(t, tile.SpawnTime, s.level.BPM) > EvictLine {
			continue
		}
		kept = append(kept, tile)
	}
	s.tiles = kept
}

// Tap resolves a tap on lane at wall time now. at carries the tap's screen
// pixel coordinates when known and only affects particle placement.
func (s *Session) Tap(lane int, now time.Duration, at *core.Vec2) TapResult {
	if s.state != StatePlaying || lane < 0 || lane >= LaneCount {
		return TapResult{Judgement: JudgementIgnored}
	}
	t := s.simTime(now)

	idx, dist, ok := s.detector.Find(s.tiles, lane, t)
	if !ok {
		s.scorer.BreakCombo()
		s.health.Adjust(-TapPenalty)
		s.feedback = Feedback{Judgement: JudgementEmpty, Lane: lane, At: t}
		return TapResult{Judgement: JudgementEmpty}
	}

	tile := &s.tiles[idx]
	tile.Played = true

	j := Classify(dist)
	if j == JudgementPerfect {
		s.scorer.RecordPerfect()
	} else {
		s.scorer.RecordGood()
	}
	s.health.Adjust(HitHeal)
	s.feedback = Feedback{Judgement: j, Lane: lane, At: t}

	if s.cues != nil {
		s.safely("hit cue", func() { s.cues.PlayHit(lane) })
	}

	switch {
	case at != nil:
		s.effects.SpawnBurst(at.X, at.Y, tile.Color)
	case s.hitPoint != nil:
		p := s.hitPoint(lane)
		s.effects.SpawnBurst(p.X, p.Y, tile.Color)
	}

	return TapResult{Judgement: j, TileID: tile.ID, Dist: dist, Points: j.Points()}
}

// Pause freezes the simulation. Only a playing session can pause.
func (s *Session) Pause(now time.Duration) bool {
	if s.state != StatePlaying {
		return false
	}
	s.pausedAt = now
	s.state = StatePaused
	return true
}

// Resume continues a paused session.
func (s *Session) Resume(now time.Duration) bool {
	if s.state != StatePaused {
		return false
	}
	if now > s.pausedAt {
		s.pausedTotal += now - s.pausedAt
	}
	s.state = StatePlaying
	return true
}

// TogglePause pauses a playing session or resumes a paused one.
func (s *Session) TogglePause(now time.Duration) bool {
	if s.state == StatePaused {
		return s.Resume(now)
	}
	return s.Pause(now)
}

// Exit tears the session down. OnExit fires once; afterwards every call is a no-op.
func (s *Session) Exit() {
	if s.state == StateClosed {
		return
	}
	if s.state != StateEnded {
		s.endedAt = s.lastTick
	}
	s.state = StateClosed
	s.logger.Debug("session closed")
	if s.hooks != nil {
		s.safely("exit", s.hooks.OnExit)
	}
}

// safely runs a collaborator call, logging instead of propagating panics.
func (s *Session) safely(call string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("collaborator call failed", "call", call, "panic", r)
		}
	}()
	fn()
}
