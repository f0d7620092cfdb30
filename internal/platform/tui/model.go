package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/piano-fire/internal/config"
	"github.com/vovakirdan/piano-fire/internal/core"
	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// sessionEvents records the session boundary callbacks. The model is copied
// on every update, so the recorder lives behind a pointer.
type sessionEvents struct {
	over   bool
	final  rhythm.GameScore
	exited bool
}

func (e *sessionEvents) OnGameOver(final rhythm.GameScore) {
	e.over = true
	e.final = final
}

func (e *sessionEvents) OnExit() {
	e.exited = true
}

// GameModel is the Bubble Tea model for the game screen. It drives one
// rhythm.Session from wall-clock ticks.
type GameModel struct {
	env     Env
	level   rhythm.LevelConfig
	session *rhythm.Session
	events  *sessionEvents
	screen  *core.Screen
	layout  *rhythm.Layout // shared with the session's hit point callback
	keys    GameKeyMap
	help    help.Model
	epoch   time.Time
	gen     uint64
	width   int
	height  int

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game screen playing level. gen is the tick
// generation the first session runs under.
func NewGameModel(env Env, level rhythm.LevelConfig, width, height int, gen uint64) GameModel {
	env = env.withDefaults()
	m := GameModel{
		env:    env,
		level:  level,
		screen: core.NewScreen(width, playfieldHeight(height)),
		layout: new(rhythm.Layout),
		keys:   NewGameKeyMap(env.Settings.Keys),
		help:   help.New(),
		width:  width,
		height: height,
		gen:    gen,
	}
	*m.layout = rhythm.NewLayout(width, playfieldHeight(height))
	m.help.Width = width
	m.startSession()
	return m
}

// playfieldHeight reserves the bottom row for the help bar.
func playfieldHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// startSession replaces the current session with a fresh one.
func (m *GameModel) startSession() {
	layout := m.layout
	m.events = &sessionEvents{}
	m.epoch = m.env.Clock()
	m.session = rhythm.NewSession(rhythm.Options{
		Level:    m.level,
		Seed:     m.env.seed(),
		Cues:     m.env.Cues,
		Hooks:    m.events,
		Logger:   m.env.Logger,
		HitPoint: func(lane int) core.Vec2 { return layout.HitPoint(lane) },
	}, 0)
	m.env.Logger.Info("game started", "session", m.session.ID(), "level", m.level.Name)
}

// now converts wall time to the session's timeline.
func (m GameModel) now(t time.Time) time.Duration {
	return t.Sub(m.epoch)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.env.Settings.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	now := m.now(m.env.Clock())
	action := m.keys.Action(msg)
	if lane, ok := action.Lane(); ok {
		m.session.Tap(lane, now, nil)
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		m.stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.stop()
		m.backToMenu = true
		return m, nil

	case core.ActionPause:
		m.session.TogglePause(now)

	case core.ActionMute:
		muted := m.env.Cues.ToggleMute()
		m.env.Logger.Debug("audio toggled", "muted", muted)

	case core.ActionRestart:
		return m.restart()
	}

	return m, nil
}

// handleMouse turns a left click inside a lane into a tap at the click point.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	lane, ok := m.layout.LaneAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	at := rhythm.CellToPixel(msg.X, msg.Y)
	m.session.Tap(lane, m.now(m.env.Clock()), &at)
	return m, nil
}

// handleResize processes window resize events. The session keeps running;
// only the projection changes.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	*m.layout = rhythm.NewLayout(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.session.State() == rhythm.StateClosed {
		return m, nil
	}

	m.session.Tick(m.now(msg.Time))
	if m.events.over {
		m.env.Logger.Info("game over",
			"session", m.session.ID(),
			"score", m.events.final.Score,
			"rank", m.events.final.Rank(),
		)
		return m, nil
	}

	return m, tickCmd(m.env.Settings.TickRate, m.gen)
}

// restart replays the same level under a new tick generation.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.session.Exit()
	m.gen++
	m.startSession()
	return m, tickCmd(m.env.Settings.TickRate, m.gen)
}

// stop tears the session down and invalidates its pending tick.
func (m *GameModel) stop() {
	m.session.Exit()
	m.gen++
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	rhythm.Render(m.session.Snapshot(m.now(m.env.Clock())), *m.layout, m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("pianofire_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.Logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.env.Logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	rhythm.Render(m.session.Snapshot(m.now(m.env.Clock())), *m.layout, m.screen)
	out := RenderScreen(m.screen)
	if m.height > 1 {
		out += "\n " + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// Gen returns the tick generation of the current session.
func (m GameModel) Gen() uint64 {
	return m.gen
}

// Session returns the running session.
func (m GameModel) Session() *rhythm.Session {
	return m.session
}

// Level returns the level being played.
func (m GameModel) Level() rhythm.LevelConfig {
	return m.level
}

// GameOver returns the final score once health has been depleted.
func (m GameModel) GameOver() (rhythm.GameScore, bool) {
	return m.events.final, m.events.over
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
