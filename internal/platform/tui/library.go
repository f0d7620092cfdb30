package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/piano-fire/internal/core"
	"github.com/vovakirdan/piano-fire/internal/storage"
)

// Library layout constants
const (
	minWidthForDetails = 90  // Minimum width to show the level details panel
	detailsWidth       = 30  // Width of the details panel
	maxLibraryLevels   = 100 // Max cached levels to load
)

// LibraryKeyMap defines the key bindings for the level library.
type LibraryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Clear  key.Binding
	Back   key.Binding
	Quit   key.Binding
	Toggle key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LibraryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Back, k.Toggle}
}

// FullHelp returns key bindings for the full help view.
func (k LibraryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play},
		{k.Clear, k.Back, k.Quit, k.Toggle},
	}
}

// DefaultLibraryKeyMap returns default key bindings.
func DefaultLibraryKeyMap() LibraryKeyMap {
	return LibraryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear cache"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// LibraryModel is the Bubble Tea model for browsing cached generated levels.
type LibraryModel struct {
	store       *storage.Store
	logger      *log.Logger
	levels      []storage.CachedLevel
	table       table.Model
	help        help.Model
	keys        LibraryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	selected    *Selection
	showDetails bool
	loadErr     error
}

// NewLibraryModel creates a new library model.
func NewLibraryModel(store *storage.Store, logger *log.Logger, width, height int) LibraryModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := LibraryModel{
		store:       store,
		logger:      logger,
		keys:        DefaultLibraryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showDetails: width >= minWidthForDetails,
	}
	m.table = m.createTable()
	m.loadLevels()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *LibraryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 20},
		{Title: "BPM", Width: 5},
		{Title: "Difficulty", Width: 10},
		{Title: "Plays", Width: 5},
		{Title: "Prompt", Width: 20},
	}

	tableWidth := m.width - 6 // Margins and border
	if m.showDetails {
		tableWidth -= detailsWidth + 4
	}
	fixed := columns[1].Width + columns[2].Width + columns[3].Width + 2*len(columns)
	if rest := tableWidth - fixed; rest > 24 {
		columns[0].Width = rest / 2
		columns[4].Width = rest - columns[0].Width
	}

	height := m.height - 8 // header, help and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadLevels reads the most recently used levels from the cache.
func (m *LibraryModel) loadLevels() {
	m.levels = nil
	m.loadErr = nil
	if m.store != nil {
		levels, err := m.store.RecentLevels(maxLibraryLevels)
		if err != nil {
			m.loadErr = err
			if m.logger != nil {
				m.logger.Warn("cannot load level library", "err", err)
			}
		} else {
			m.levels = levels
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded levels.
func (m *LibraryModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, c := range m.levels {
		rows[i] = table.Row{
			c.Level.Name,
			fmt.Sprintf("%.0f", c.Level.BPM),
			string(c.Level.Difficulty),
			fmt.Sprintf("%d", c.Uses),
			c.Prompt,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// current returns the level under the cursor.
func (m LibraryModel) current() (storage.CachedLevel, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.levels) {
		return storage.CachedLevel{}, false
	}
	return m.levels[i], true
}

// Init initializes the library model.
func (m LibraryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the library.
func (m LibraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Play):
			if c, ok := m.current(); ok {
				level := c.Level
				m.selected = &Selection{Prompt: c.Prompt, Title: level.Name, Level: &level}
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.store != nil {
				if err := m.store.ClearLevels(); err != nil && m.logger != nil {
					m.logger.Warn("cannot clear level cache", "err", err)
				}
			}
			m.loadLevels()
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetails = m.width >= minWidthForDetails
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the library.
func (m LibraryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("LEVEL LIBRARY", m.width)))
	b.WriteString("\n\n")

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tablePanel := panelStyle.Render(m.renderTableContent())
	if m.showDetails {
		details := panelStyle.Width(detailsWidth).Render(m.renderDetails())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tablePanel, "  ", details))
	} else {
		b.WriteString(centerText(tablePanel, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m LibraryModel) renderTableContent() string {
	if len(m.levels) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		msg := "No generated levels yet.\nType a prompt in the menu to compose one!"
		if m.loadErr != nil {
			msg = "The level cache could not be read."
		}
		return emptyStyle.Render(msg)
	}
	return m.table.View()
}

// renderDetails renders the panel describing the level under the cursor.
func (m LibraryModel) renderDetails() string {
	c, ok := m.current()
	if !ok {
		return "Nothing selected"
	}
	l := c.Level

	swatch := func(col core.Color) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(string(col))).Render("██")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(string(l.Theme.Accent))).Render(l.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(detailsWidth - 2).Render(l.Description))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "BPM        %.0f\n", l.BPM)
	fmt.Fprintf(&b, "Interval   %d ms\n", l.SpawnInterval)
	fmt.Fprintf(&b, "Difficulty %s\n", l.Difficulty)
	fmt.Fprintf(&b, "Played     %d\n", c.Uses)
	fmt.Fprintf(&b, "Last used  %s\n\n", c.UpdatedAt.Format("Jan 02 15:04"))
	b.WriteString(swatch(l.Theme.Primary) + " " + swatch(l.Theme.Secondary) + " " +
		swatch(l.Theme.Accent) + " " + swatch(l.Theme.Background))
	return b.String()
}

// Selected returns the level the player chose to play, or nil.
func (m LibraryModel) Selected() *Selection {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LibraryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LibraryModel) IsQuitting() bool {
	return m.quitting
}
