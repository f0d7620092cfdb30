package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/piano-fire/internal/config"
	"github.com/vovakirdan/piano-fire/internal/levels"
	"github.com/vovakirdan/piano-fire/internal/platform/tui"
	"github.com/vovakirdan/piano-fire/internal/registry"
	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

var (
	flagLevel  string
	flagPreset string
)

var playCmd = &cobra.Command{
	Use:   "play [prompt...]",
	Short: "Play a level without going through the menu",
	Long: `Start playing right away.

With a prompt, a level is generated for it (or read from the cache).
--preset plays a quick-start preset, --level plays a level file or the
id of a level in the levels directory.

Controls:
  D F J K     - Tap lanes 1-4 (mouse clicks work too)
  P/Space     - Pause
  M           - Mute
  R           - Restart
  Esc         - Back to menu
  Ctrl+C      - Quit

Examples:
  pianofire play "cyberpunk jazz with high speed"
  pianofire play --preset dubstep
  pianofire play --level ./sunset.yaml
  pianofire play --level sunset`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level file path or id in the levels directory")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Quick-start preset id (see 'pianofire list')")
}

func runPlay(_ *cobra.Command, args []string) {
	sel, err := playSelection(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pianofire list' to see available levels.")
		os.Exit(1)
	}
	runApp(&sel)
}

// playSelection turns the play flags into what the app should start with.
func playSelection(args []string) (tui.Selection, error) {
	prompt := strings.TrimSpace(strings.Join(args, " "))

	switch {
	case flagLevel != "":
		level, err := resolveLevelRef(flagLevel)
		if err != nil {
			return tui.Selection{}, err
		}
		return tui.Selection{Title: level.Name, Level: &level}, nil

	case flagPreset != "":
		p, err := registry.Get(flagPreset)
		if err != nil {
			return tui.Selection{}, err
		}
		offline := p.Offline
		return tui.Selection{Prompt: p.Prompt, Title: p.Title, Offline: &offline}, nil

	case prompt != "":
		return tui.Selection{Prompt: prompt, Title: prompt}, nil
	}
	return tui.Selection{Prompt: tui.DefaultPrompt, Title: tui.DefaultPrompt}, nil
}

// resolveLevelRef loads a level file, or a level by id from the configured
// levels directory.
func resolveLevelRef(ref string) (rhythm.LevelConfig, error) {
	settings, err := config.Load(flagConfig)
	if err != nil && flagConfig != "" {
		return rhythm.LevelConfig{}, err
	}
	lvl, err := levels.NewLoader(settings.Storage.LevelsDir).Resolve(ref)
	if err != nil {
		return rhythm.LevelConfig{}, err
	}
	return lvl.Config, nil
}
