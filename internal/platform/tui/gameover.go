package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// GameOverChoice is what the player picked on the game-over screen.
type GameOverChoice int

const (
	ChoiceNone GameOverChoice = iota
	ChoiceReplay
	ChoiceHome
	ChoiceQuit
)

var gameOverButtons = []string{"Replay", "Home"}

// GameOverModel shows the final score and rank of a finished session.
type GameOverModel struct {
	level  rhythm.LevelConfig
	score  rhythm.GameScore
	cursor int
	choice GameOverChoice
	width  int
	height int
}

// NewGameOverModel creates the game-over screen.
func NewGameOverModel(level rhythm.LevelConfig, score rhythm.GameScore, width, height int) GameOverModel {
	return GameOverModel{level: level, score: score, width: width, height: height}
}

// Init initializes the model.
func (m GameOverModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the game-over screen.
func (m GameOverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.choice = ChoiceQuit
			return m, tea.Quit
		case "left", "h", "up", "shift+tab":
			m.cursor = (m.cursor + len(gameOverButtons) - 1) % len(gameOverButtons)
		case "right", "l", "down", "tab":
			m.cursor = (m.cursor + 1) % len(gameOverButtons)
		case "r":
			m.choice = ChoiceReplay
		case "esc", "b":
			m.choice = ChoiceHome
		case "enter", " ":
			if m.cursor == 0 {
				m.choice = ChoiceReplay
			} else {
				m.choice = ChoiceHome
			}
		}
	}
	return m, nil
}

// View renders the game-over screen.
func (m GameOverModel) View() string {
	theme := ThemeFor(m.level.Theme)

	s := m.score
	stats := strings.Join([]string{
		fmt.Sprintf("%-10s %8d", "Score", s.Score),
		fmt.Sprintf("%-10s %8d", "Max combo", s.MaxCombo),
		fmt.Sprintf("%-10s %8d", "Perfect", s.Perfects),
		fmt.Sprintf("%-10s %8d", "Good", s.Goods),
		fmt.Sprintf("%-10s %8d", "Miss", s.Misses),
		fmt.Sprintf("%-10s %7.1f%%", "Accuracy", s.Accuracy()),
	}, "\n")

	buttons := make([]string, len(gameOverButtons))
	for i, label := range gameOverButtons {
		if i == m.cursor {
			buttons[i] = theme.ButtonFocus.Render(label)
		} else {
			buttons[i] = theme.Button.Render(label)
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Danger.Render("GAME OVER"),
		theme.Label.Render(m.level.Name),
		"",
		theme.Rank.Render("RANK "+s.Rank()),
		"",
		stats,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, buttons[0], "  ", buttons[1]),
		"",
		theme.Dim.Render("r: replay  esc: home  q: quit"),
	)

	box := theme.Border.Render(body)
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Choice returns the player's pick, or ChoiceNone while undecided.
func (m GameOverModel) Choice() GameOverChoice {
	return m.choice
}

// Score returns the final score shown.
func (m GameOverModel) Score() rhythm.GameScore {
	return m.score
}
