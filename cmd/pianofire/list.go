package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/piano-fire/internal/config"
	"github.com/vovakirdan/piano-fire/internal/levels"
	"github.com/vovakirdan/piano-fire/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List quick-start presets and hand-written levels",
	Long: `Shows the built-in presets and the level files found in the
levels directory (storage.levels_dir in the settings).`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	presets := registry.List()

	fmt.Println("Presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "ID", "Title", "Prompt")
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "--", "-----", "------")

	for _, p := range presets {
		fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, p.ID, p.Title, p.Prompt)
	}

	settings, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	custom, err := levels.NewLoader(settings.Storage.LevelsDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot read levels directory: %v\n", err)
	}

	fmt.Println()
	if len(custom) == 0 {
		fmt.Printf("No level files in %s.\n", settings.Storage.LevelsDir)
	} else {
		fmt.Println("Your levels:")
		fmt.Println()
		for _, l := range custom {
			fmt.Printf("  %-16s  %-20s  %3.0f BPM  %s\n", l.ID, l.Config.Name, l.Config.BPM, l.Config.Difficulty)
		}
	}

	fmt.Println()
	fmt.Println("Run 'pianofire play --preset <id>' or 'pianofire play --level <id>' to play.")
}
