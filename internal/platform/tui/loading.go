package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/piano-fire/internal/levelgen"
	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// LevelReadyMsg carries the outcome of a generation request.
type LevelReadyMsg struct {
	Req       uint64
	Selection Selection
	Result    levelgen.Result
}

// generateCmd resolves a selection's prompt off the update loop.
func generateCmd(ctx context.Context, svc *levelgen.Service, req uint64, sel Selection) tea.Cmd {
	return func() tea.Msg {
		return LevelReadyMsg{
			Req:       req,
			Selection: sel,
			Result:    svc.Generate(ctx, sel.Prompt),
		}
	}
}

// resolveLevel picks the level a finished request plays. A preset falls back
// to its own offline level rather than the global default.
func resolveLevel(sel Selection, res levelgen.Result) rhythm.LevelConfig {
	if res.Source == levelgen.SourceDefault && sel.Offline != nil {
		return sel.Offline.Normalize()
	}
	return res.Level
}

// LoadingModel shows a spinner while a level is generated.
type LoadingModel struct {
	spinner spinner.Model
	theme   Theme
	title   string
	width   int
	height  int
}

// NewLoadingModel creates the loading screen for a selection.
func NewLoadingModel(sel Selection, theme Theme, width, height int) LoadingModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = theme.Spinner

	title := sel.Title
	if title == "" {
		title = sel.Prompt
	}
	return LoadingModel{spinner: s, theme: theme, title: title, width: width, height: height}
}

// Init starts the spinner.
func (m LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the spinner.
func (m LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the loading screen.
func (m LoadingModel) View() string {
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" Composing level...\n\n")
	b.WriteString(m.theme.Label.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Dim.Render("esc: cancel"))

	if m.width <= 0 || m.height <= 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
