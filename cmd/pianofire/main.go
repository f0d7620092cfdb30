// pianofire is a falling-tile rhythm game for the terminal. Levels are
// composed by a language model from a free-text vibe prompt.
//
// Usage:
//
//	pianofire                    - Start the menu
//	pianofire play [prompt...]   - Play a prompt, preset or level file directly
//	pianofire list               - List presets and hand-written levels
//	pianofire levels             - Show the generated-level cache
//	pianofire generate <prompt>  - Generate a level and print it as YAML
//	pianofire serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: from config, 60)
//	--seed <value>       - Set RNG seed for reproducible tile lanes
//	--db <path>          - Set level cache path (default: ~/.pianofire/levels.db)
//	--config <path>      - Use a specific settings file
//	--log-file <path>    - Write logs to a file while the TUI runs
//	--log-level <level>  - debug, info, warn or error
//	--mute               - Start with audio muted
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/piano-fire/internal/audio"
	"github.com/vovakirdan/piano-fire/internal/config"
	"github.com/vovakirdan/piano-fire/internal/levelgen"
	"github.com/vovakirdan/piano-fire/internal/levels"
	"github.com/vovakirdan/piano-fire/internal/platform/tui"
	"github.com/vovakirdan/piano-fire/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
	flagMute     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pianofire",
	Short: "Piano Fire - a rhythm game composed from your prompt",
	Long: `Piano Fire is a falling-tile rhythm game for the terminal.

Describe a vibe, and a level is composed for it: tempo, spawn rate,
difficulty and a color theme. Tap the four lanes as tiles cross the
hit line. Without an API key the game plays built-in levels.

Available commands:
  play      - Play a prompt, preset or level file directly
  list      - Show presets and hand-written levels
  levels    - Show the generated-level cache
  generate  - Generate a level and print it as YAML
  serve     - Start SSH server for remote play

Examples:
  pianofire
  pianofire play "rainy night jazz"
  pianofire play --preset lofi
  pianofire serve --ssh :2222`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the level cache (default: from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a settings YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with audio muted")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
}

// deps holds the collaborators built from flags and settings.
type deps struct {
	settings config.Settings
	logger   *log.Logger
	store    *storage.Store
	levels   *levelgen.Service
	custom   []levels.Level
	cues     tui.Cues
	closers  []io.Closer
}

// setup loads settings and opens storage. The full-screen UI owns the
// terminal, so its logs go to --log-file or nowhere; other commands log to
// stderr. Only settings errors are fatal.
func setup(fullscreen, withAudio bool) (*deps, error) {
	rt := &deps{}

	logger, err := newLogger(fullscreen, rt)
	if err != nil {
		return nil, err
	}
	rt.logger = logger

	settings, err := config.Load(flagConfig)
	if err != nil {
		if flagConfig != "" {
			return nil, err
		}
		logger.Warn("using default settings", "err", err)
	}
	if flagFPS > 0 {
		settings.TickRate = flagFPS
	}
	if flagDBPath != "" {
		settings.Storage.DBPath = flagDBPath
	}
	if flagMute {
		settings.Audio.Enabled = false
	}
	rt.settings = settings

	store, err := storage.Open(settings.Storage.DBPath)
	if err != nil {
		logger.Warn("level cache unavailable", "path", settings.Storage.DBPath, "err", err)
	} else {
		rt.store = store
		rt.closers = append(rt.closers, store)
	}

	rt.levels = newLevelService(settings, rt.store, logger)

	custom, err := levels.NewLoader(settings.Storage.LevelsDir).LoadAll()
	if err != nil {
		logger.Warn("cannot read level files", "dir", settings.Storage.LevelsDir, "err", err)
	}
	rt.custom = custom

	rt.cues = audio.Nop{}
	if withAudio {
		svc := audio.New(audio.Options{
			Enabled: settings.Audio.Enabled,
			Volume:  settings.Audio.Volume,
			Logger:  logger,
		})
		rt.cues = svc
		rt.closers = append(rt.closers, closerFunc(svc.Close))
	}

	return rt, nil
}

func newLogger(fullscreen bool, rt *deps) (*log.Logger, error) {
	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		rt.closers = append(rt.closers, f)
		w = f
	case fullscreen:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pianofire",
	})
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger, nil
}

// newLevelService wires the Gemini provider when its API key is set.
func newLevelService(settings config.Settings, store *storage.Store, logger *log.Logger) *levelgen.Service {
	opts := levelgen.Options{
		Fallback: settings.Level,
		Timeout:  settings.Generator.Timeout,
		Logger:   logger,
	}
	if store != nil {
		opts.Cache = store
	}

	keyEnv := settings.Generator.APIKeyEnvOrDefault()
	if apiKey := os.Getenv(keyEnv); apiKey != "" {
		client, err := levelgen.NewGemini(levelgen.GeminiConfig{
			APIKey:  apiKey,
			Model:   settings.Generator.Model,
			BaseURL: settings.Generator.BaseURL,
		})
		if err != nil {
			logger.Warn("level generator unavailable", "err", err)
		} else {
			opts.Provider = client
		}
	} else {
		logger.Info("no API key, playing built-in levels", "env", keyEnv)
	}

	return levelgen.NewService(opts)
}

func (rt *deps) env() tui.Env {
	return tui.Env{
		Settings: rt.settings,
		Levels:   rt.levels,
		Store:    rt.store,
		Custom:   rt.custom,
		Cues:     rt.cues,
		Logger:   rt.logger,
		Seed:     flagSeed,
	}
}

// Close releases everything setup opened, newest first.
func (rt *deps) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i].Close()
	}
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runMenu(_ *cobra.Command, _ []string) {
	runApp(nil)
}

// runApp starts the full-screen UI, skipping the menu when start is set.
func runApp(start *tui.Selection) {
	rt, err := setup(true, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	runErr := tui.Run(rt.env(), width, height, start)

	// Close before potential exit
	rt.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
