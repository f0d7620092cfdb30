package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// Theme contains the lipgloss styles of the screens around the playfield.
// It is derived from a level's color theme.
type Theme struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Item        lipgloss.Style
	ItemActive  lipgloss.Style
	Dim         lipgloss.Style
	Spinner     lipgloss.Style
	Border      lipgloss.Style
	Rank        lipgloss.Style
	Button      lipgloss.Style
	ButtonFocus lipgloss.Style
	Danger      lipgloss.Style
}

// ThemeFor builds the styles for a level theme.
func ThemeFor(t rhythm.Theme) Theme {
	primary := lipgloss.Color(string(t.Primary))
	secondary := lipgloss.Color(string(t.Secondary))
	accent := lipgloss.Color(string(t.Accent))

	return Theme{
		Title:      lipgloss.NewStyle().Foreground(accent).Bold(true),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Item:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive: lipgloss.NewStyle().Foreground(primary).Bold(true),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Spinner:    lipgloss.NewStyle().Foreground(secondary),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4),
		Rank: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent),
		Button: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 2),
		ButtonFocus: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(primary).
			Bold(true).
			Padding(0, 2),
		Danger: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// DefaultTheme returns the styles of the default level.
func DefaultTheme() Theme {
	return ThemeFor(rhythm.DefaultLevel().Theme)
}
