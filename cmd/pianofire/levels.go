package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/piano-fire/internal/config"
	"github.com/vovakirdan/piano-fire/internal/storage"
)

var (
	flagLevelsLimit int
	flagLevelsClear bool
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show cached generated levels",
	Long: `Display the levels generated so far, most recently used first.

Generated levels are cached by prompt, so the same vibe plays the same
level without calling the generator again.

Examples:
  pianofire levels
  pianofire levels --limit 5
  pianofire levels --clear`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevelsLimit, "limit", 20, "Number of levels to show")
	levelsCmd.Flags().BoolVar(&flagLevelsClear, "clear", false, "Delete every cached level")
}

func runLevels(_ *cobra.Command, _ []string) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	dbPath := settings.Storage.DBPath
	if flagDBPath != "" {
		dbPath = flagDBPath
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening level cache: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagLevelsClear {
		if err := store.ClearLevels(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing level cache: %v\n", err)
			return
		}
		fmt.Println("Level cache cleared.")
		return
	}

	cached, err := store.RecentLevels(flagLevelsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving levels: %v\n", err)
		return
	}

	fmt.Println("Generated Levels")
	fmt.Println()

	if len(cached) == 0 {
		fmt.Println("No levels generated yet.")
		fmt.Println()
		fmt.Println("Play 'pianofire play \"<your vibe>\"' to compose the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-20s  %-4s  %-6s  %-5s  %-16s  %s\n", "Level", "BPM", "Diff", "Plays", "Last played", "Prompt")
	fmt.Printf("  %-20s  %-4s  %-6s  %-5s  %-16s  %s\n", "-----", "---", "----", "-----", "-----------", "------")

	for _, c := range cached {
		fmt.Printf("  %-20s  %-4.0f  %-6s  %-5d  %-16s  %s\n",
			c.Level.Name,
			c.Level.BPM,
			c.Level.Difficulty,
			c.Uses,
			c.UpdatedAt.Format("2006-01-02 15:04"),
			c.Prompt,
		)
	}
}
