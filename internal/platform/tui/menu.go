package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/piano-fire/internal/levels"
	"github.com/vovakirdan/piano-fire/internal/registry"
	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// DefaultPrompt is the prompt the menu starts with.
const DefaultPrompt = "Cyberpunk Jazz with high speed"

// Selection is what the player chose to play.
type Selection struct {
	Prompt string // sent to the level generator
	Title  string // shown while loading

	// Offline is played when the generator is unavailable or fails.
	Offline *rhythm.LevelConfig

	// Level skips generation entirely.
	Level *rhythm.LevelConfig
}

// MenuModel is the Bubble Tea model for the start menu: a free-text prompt
// and the quick-start presets.
type MenuModel struct {
	env         Env
	theme       Theme
	input       textinput.Model
	presets     []registry.Preset
	custom      []levels.Level
	cursor      int // 0 is the prompt, then presets, custom levels and the library entry
	width       int
	height      int
	quitting    bool
	selected    *Selection
	openLibrary bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(env Env, width, height int) MenuModel {
	env = env.withDefaults()

	ti := textinput.New()
	ti.Placeholder = DefaultPrompt
	ti.SetValue(DefaultPrompt)
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = "> "
	ti.Focus()

	return MenuModel{
		env:     env,
		theme:   ThemeFor(env.Settings.Level.Theme),
		input:   ti,
		presets: registry.List(),
		custom:  env.Custom,
		width:   width,
		height:  height,
	}
}

// reset clears the previous choice but keeps the prompt text.
func (m MenuModel) reset() MenuModel {
	m.selected = nil
	m.openLibrary = false
	m.quitting = false
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m MenuModel) hasLibrary() bool {
	return m.env.Store != nil
}

func (m MenuModel) itemCount() int {
	n := 1 + len(m.presets) + len(m.custom)
	if m.hasLibrary() {
		n++
	}
	return n
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.syncFocus()

	case MenuActionDown:
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
		return m, m.syncFocus()

	case MenuActionSelect:
		m.choose()
		return m, nil
	}

	if m.cursor == 0 {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// vim-style navigation away from the prompt
	switch msg.String() {
	case "k":
		m.cursor--
		return m, m.syncFocus()
	case "j":
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// syncFocus focuses the prompt only while the cursor is on it.
func (m *MenuModel) syncFocus() tea.Cmd {
	if m.cursor == 0 {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// choose records the item under the cursor.
func (m *MenuModel) choose() {
	switch {
	case m.cursor == 0:
		prompt := strings.TrimSpace(m.input.Value())
		if prompt == "" {
			prompt = DefaultPrompt
		}
		m.selected = &Selection{Prompt: prompt, Title: prompt}

	case m.cursor <= len(m.presets):
		p := m.presets[m.cursor-1]
		offline := p.Offline
		m.selected = &Selection{Prompt: p.Prompt, Title: p.Title, Offline: &offline}

	case m.cursor <= len(m.presets)+len(m.custom):
		c := m.custom[m.cursor-1-len(m.presets)]
		level := c.Config
		m.selected = &Selection{Title: level.Name, Level: &level}

	default:
		m.openLibrary = true
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("P I A N O   F I R E"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Dim.Render(m.status()), m.width))
	b.WriteString("\n\n")

	label := "Describe your vibe"
	if m.cursor == 0 {
		label = m.theme.ItemActive.Render("> " + label)
	} else {
		label = m.theme.Label.Render("  " + label)
	}
	b.WriteString(centerText(label, m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.theme.Label.Render("Quick start"), m.width))
	b.WriteString("\n")
	for i, p := range m.presets {
		b.WriteString(centerText(m.renderItem(i+1, p.Title), m.width))
		b.WriteString("\n")
	}
	if len(m.custom) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Label.Render("Your levels"), m.width))
		b.WriteString("\n")
		for i, c := range m.custom {
			b.WriteString(centerText(m.renderItem(len(m.presets)+1+i, c.Config.Name), m.width))
			b.WriteString("\n")
		}
	}
	if m.hasLibrary() {
		b.WriteString("\n")
		b.WriteString(centerText(m.renderItem(len(m.presets)+len(m.custom)+1, "Level library"), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Esc: Quit"
	b.WriteString(centerText(m.theme.Dim.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(idx int, title string) string {
	if idx == m.cursor {
		return m.theme.ItemActive.Render("> " + title)
	}
	return m.theme.Item.Render("  " + title)
}

func (m MenuModel) status() string {
	if m.env.Levels.Available() {
		return "levels generated from your prompt"
	}
	return fmt.Sprintf("offline: set %s to generate levels", m.env.Settings.Generator.APIKeyEnvOrDefault())
}

// Selected returns the chosen item, or nil if none was chosen.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// WantsLibrary returns true if the player opened the level library.
func (m MenuModel) WantsLibrary() bool {
	return m.openLibrary
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width. Styled text is measured by its
// printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
