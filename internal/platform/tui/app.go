package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// phase is the screen the app is showing.
type phase int

const (
	phaseMenu phase = iota
	phaseLibrary
	phaseLoading
	phaseGame
	phaseGameOver
)

// String returns the phase name for logging.
func (p phase) String() string {
	switch p {
	case phaseMenu:
		return "menu"
	case phaseLibrary:
		return "library"
	case phaseLoading:
		return "loading"
	case phaseGame:
		return "game"
	case phaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// App manages the full session flow: menu -> loading -> game -> game over.
// It is the top-level model for both local and SSH play.
type App struct {
	env     Env
	phase   phase
	width   int
	height  int
	menu    MenuModel
	library LibraryModel
	loading LoadingModel
	game    GameModel
	over    GameOverModel

	gen     uint64 // last tick generation handed to a game
	req     uint64 // id of the generation request in flight
	cancel  context.CancelFunc
	initCmd tea.Cmd

	quitting bool
}

// NewApp creates the app. A non-nil start skips the menu and plays that
// selection right away.
func NewApp(env Env, width, height int, start *Selection) App {
	env = env.withDefaults()
	m := App{
		env:    env,
		width:  width,
		height: height,
		menu:   NewMenuModel(env, width, height),
	}
	m.initCmd = m.menu.Init()
	if start != nil {
		m.initCmd = m.begin(*start)
	}
	return m
}

// Init initializes the app.
func (m App) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages for the app.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.phase {
	case phaseLibrary:
		return m.updateLibrary(msg)
	case phaseLoading:
		return m.updateLoading(msg)
	case phaseGame:
		return m.updateGame(msg)
	case phaseGameOver:
		return m.updateGameOver(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsLibrary():
		m.menu = m.menu.reset()
		m.library = NewLibraryModel(m.env.Store, m.env.Logger, m.width, m.height)
		m.setPhase(phaseLibrary)
		return m, m.library.Init()

	case m.menu.Selected() != nil:
		sel := *m.menu.Selected()
		m.menu = m.menu.reset()
		return m, m.begin(sel)
	}

	return m, cmd
}

// updateLibrary handles updates when browsing cached levels.
func (m App) updateLibrary(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLib, cmd := m.library.Update(msg)
	if lib, ok := newLib.(LibraryModel); ok {
		m.library = lib
	}

	switch {
	case m.library.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.library.IsGoingBack():
		return m, m.toMenu()

	case m.library.Selected() != nil:
		return m, m.begin(*m.library.Selected())
	}

	return m, cmd
}

// updateLoading waits for the generation request in flight.
func (m App) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelRequest()
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.env.Logger.Info("level generation cancelled")
			m.cancelRequest()
			return m, m.toMenu()
		}
		return m, nil

	case LevelReadyMsg:
		if msg.Req != m.req {
			return m, nil
		}
		m.cancelRequest()
		level := resolveLevel(msg.Selection, msg.Result)
		m.env.Logger.Info("level ready",
			"prompt", msg.Result.Prompt,
			"level", level.Name,
			"source", msg.Result.Source,
		)
		return m, m.startGame(level)
	}

	newLoading, cmd := m.loading.Update(msg)
	if loading, ok := newLoading.(LoadingModel); ok {
		m.loading = loading
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newGame, cmd := m.game.Update(msg)
	if game, ok := newGame.(GameModel); ok {
		m.game = game
	}
	m.gen = max(m.gen, m.game.Gen())

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		return m, m.toMenu()
	}

	if final, over := m.game.GameOver(); over {
		m.game.stop()
		m.gen = max(m.gen, m.game.Gen())
		m.over = NewGameOverModel(m.game.Level(), final, m.width, m.height)
		m.setPhase(phaseGameOver)
		return m, m.over.Init()
	}

	return m, cmd
}

// updateGameOver handles the replay/home choice.
func (m App) updateGameOver(msg tea.Msg) (tea.Model, tea.Cmd) {
	newOver, cmd := m.over.Update(msg)
	if over, ok := newOver.(GameOverModel); ok {
		m.over = over
	}

	switch m.over.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoiceReplay:
		return m, m.startGame(m.game.Level())
	case ChoiceHome:
		return m, m.toMenu()
	}
	return m, cmd
}

// begin plays a selection, generating its level first when needed.
func (m *App) begin(sel Selection) tea.Cmd {
	switch {
	case sel.Level != nil:
		return m.startGame(sel.Level.Normalize())
	case sel.Offline != nil && !m.env.Levels.Available():
		return m.startGame(sel.Offline.Normalize())
	}

	m.cancelRequest()
	m.req++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.loading = NewLoadingModel(sel, m.menu.theme, m.width, m.height)
	m.setPhase(phaseLoading)
	return tea.Batch(m.loading.Init(), generateCmd(ctx, m.env.Levels, m.req, sel))
}

// startGame opens the game screen under a fresh tick generation.
func (m *App) startGame(level rhythm.LevelConfig) tea.Cmd {
	m.gen++
	m.game = NewGameModel(m.env, level, m.width, m.height, m.gen)
	m.setPhase(phaseGame)
	return m.game.Init()
}

// toMenu returns to the menu, keeping the last prompt.
func (m *App) toMenu() tea.Cmd {
	m.menu = m.menu.reset()
	m.menu.width, m.menu.height = m.width, m.height
	m.setPhase(phaseMenu)
	return m.menu.syncFocus()
}

func (m *App) cancelRequest() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *App) setPhase(p phase) {
	if m.phase != p {
		m.env.Logger.Debug("screen changed", "from", m.phase, "to", p)
	}
	m.phase = p
}

// View renders the current view.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseLibrary:
		return m.library.View()
	case phaseLoading:
		return m.loading.View()
	case phaseGame:
		return m.game.View()
	case phaseGameOver:
		return m.over.View()
	default:
		return m.menu.View()
	}
}

// Run starts the Bubble Tea program with the app. A non-nil start skips the menu.
func Run(env Env, width, height int, start *Selection, opts ...tea.ProgramOption) error {
	model := NewApp(env, width, height, start)

	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks tap lanes
	}, opts...)

	_, err := tea.NewProgram(model, opts...).Run()
	return err
}
