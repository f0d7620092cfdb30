package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/piano-fire/internal/audio"
	"github.com/vovakirdan/piano-fire/internal/config"
	"github.com/vovakirdan/piano-fire/internal/levelgen"
	"github.com/vovakirdan/piano-fire/internal/levels"
	"github.com/vovakirdan/piano-fire/internal/rhythm"
	"github.com/vovakirdan/piano-fire/internal/storage"
)

// Cues is the audio surface the game screen needs: the session's cue calls
// plus the mute toggle bound to a key.
type Cues interface {
	rhythm.Cues
	ToggleMute() bool
	IsMuted() bool
}

var (
	_ Cues = (*audio.Service)(nil)
	_ Cues = audio.Nop{}
)

// Env holds the collaborators shared by every screen of the app.
type Env struct {
	Settings config.Settings
	Levels   *levelgen.Service // nil plays the fallback level for every prompt
	Store    *storage.Store    // optional, enables the level library
	Custom   []levels.Level    // hand-written levels listed in the menu
	Cues     Cues              // nil means silent
	Logger   *log.Logger
	Seed     int64 // 0 seeds every session from the clock

	// Clock returns the current wall time. Nil uses time.Now.
	Clock func() time.Time
}

// withDefaults fills the optional fields.
func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Cues == nil {
		e.Cues = audio.Nop{}
	}
	if e.Clock == nil {
		e.Clock = time.Now
	}
	if e.Settings.TickRate == 0 {
		e.Settings = config.DefaultSettings()
	}
	if e.Levels == nil {
		e.Levels = levelgen.NewService(levelgen.Options{
			Fallback: e.Settings.Level,
			Logger:   e.Logger,
		})
	}
	return e
}

// seed returns the RNG seed for a new session.
func (e Env) seed() int64 {
	if e.Seed != 0 {
		return e.Seed
	}
	return e.Clock().UnixNano()
}
