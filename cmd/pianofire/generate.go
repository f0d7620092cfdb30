package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/piano-fire/internal/config"
	"github.com/vovakirdan/piano-fire/internal/levelgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt...>",
	Short: "Generate a level and print it as YAML",
	Long: `Compose a level for a prompt and print it in the level file format.

The output can be saved into the levels directory and edited by hand.
Without an API key the fallback level is printed and the command fails.

Examples:
  pianofire generate "rainy night jazz"
  pianofire generate synthwave sunset > ~/.pianofire/levels/sunset.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) {
	rt, err := setup(false, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res := rt.levels.Generate(ctx, strings.Join(args, " "))

	data, err := config.MarshalLevel(res.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Print(string(data))

	if res.Source == levelgen.SourceDefault {
		rt.logger.Error("generation failed, printed the fallback level", "err", res.Err)
		rt.Close()
		os.Exit(1)
	}
	rt.logger.Info("level ready", "source", res.Source, "name", res.Level.Name)
}
