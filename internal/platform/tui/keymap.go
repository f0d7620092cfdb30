package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/piano-fire/internal/config"
	"github.com/vovakirdan/piano-fire/internal/core"
	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// GameKeyMap holds the in-game bindings. It is built from the configured keys
// so that both the action mapping and the help bar follow the user's config.
type GameKeyMap struct {
	Lanes      [rhythm.LaneCount]key.Binding
	Tap        key.Binding // help only, covers every lane key
	Pause      key.Binding
	Restart    key.Binding
	Mute       key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// NewGameKeyMap creates the game bindings from the key configuration.
func NewGameKeyMap(cfg config.KeyConfig) GameKeyMap {
	var km GameKeyMap
	var all, first []string
	for lane := 0; lane < rhythm.LaneCount && lane < len(cfg.Lanes); lane++ {
		keys := expandKeys(cfg.Lanes[lane])
		km.Lanes[lane] = key.NewBinding(key.WithKeys(keys...))
		all = append(all, keys...)
		if len(keys) > 0 {
			first = append(first, displayKey(keys[0]))
		}
	}

	km.Tap = key.NewBinding(key.WithKeys(all...), key.WithHelp(strings.Join(first, " "), "tap"))
	km.Pause = binding(cfg.Pause, "pause")
	km.Restart = binding(cfg.Restart, "restart")
	km.Mute = binding(cfg.Mute, "mute")
	km.Back = binding(cfg.Back, "menu")
	km.Screenshot = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot"))
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	return km
}

// ShortHelp returns bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Pause, k.Mute, k.Restart, k.Back}
}

// FullHelp returns bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tap, k.Pause, k.Mute},
		{k.Restart, k.Back, k.Screenshot, k.Quit},
	}
}

// Action translates a key message to a game action.
// Lane keys win over every other binding.
func (k GameKeyMap) Action(msg tea.KeyMsg) core.Action {
	for lane, b := range k.Lanes {
		if key.Matches(msg, b) {
			return core.LaneAction(lane)
		}
	}
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Mute):
		return core.ActionMute
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

func binding(keys []string, desc string) key.Binding {
	keys = expandKeys(keys)
	help := ""
	if len(keys) > 0 {
		help = displayKey(keys[0])
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// expandKeys accepts "space" as a spelling of the space bar.
func expandKeys(keys []string) []string {
	out := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		switch k {
		case "space", " ":
			out = append(out, " ", "space")
		default:
			out = append(out, k)
		}
	}
	return out
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. Letter keys are left out
// so the prompt input can receive them.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c":
		return MenuActionQuit
	case "up", "shift+tab", "ctrl+p":
		return MenuActionUp
	case "down", "tab", "ctrl+n":
		return MenuActionDown
	case "enter":
		return MenuActionSelect
	case "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
