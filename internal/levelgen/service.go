package levelgen

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/piano-fire/internal/core"
	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// Cache stores generated levels by prompt.
type Cache interface {
	LookupLevel(prompt string) (rhythm.LevelConfig, bool, error)
	SaveLevel(prompt string, level rhythm.LevelConfig) error
}

// Source says where a level came from.
type Source int

const (
	SourceDefault Source = iota
	SourceCache
	SourceGenerated
)

// String returns a short label for the source.
func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceGenerated:
		return "generated"
	default:
		return "default"
	}
}

// Result is the outcome of a generation request. Level is always playable.
type Result struct {
	Prompt string
	Level  rhythm.LevelConfig
	Source Source
	Err    error // why the fallback was used, if it was
}

// Options configures a Service.
type Options struct {
	Provider Provider // nil when no API key is configured
	Cache    Cache    // optional
	Fallback rhythm.LevelConfig
	Timeout  time.Duration
	Logger   *log.Logger
}

// Service resolves prompts to levels without ever failing the caller.
type Service struct {
	provider Provider
	cache    Cache
	fallback rhythm.LevelConfig
	timeout  time.Duration
	logger   *log.Logger
}

// NewService creates a generation service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fallback := opts.Fallback
	if fallback.Name == "" {
		fallback = rhythm.DefaultLevel()
	}
	return &Service{
		provider: opts.Provider,
		cache:    opts.Cache,
		fallback: fallback.Normalize(),
		timeout:  opts.Timeout,
		logger:   logger.With("component", "levelgen"),
	}
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s.provider != nil
}

// Fallback returns the level used when generation is unavailable.
func (s *Service) Fallback() rhythm.LevelConfig {
	return s.fallback
}

// Generate resolves a prompt: cache first, then the provider, then the fallback.
func (s *Service) Generate(ctx context.Context, prompt string) Result {
	prompt = strings.TrimSpace(prompt)
	res := Result{Prompt: prompt, Level: s.fallback, Source: SourceDefault}
	if prompt == "" {
		return res
	}

	if s.cache != nil {
		level, ok, err := s.cache.LookupLevel(prompt)
		switch {
		case err != nil:
			s.logger.Warn("level cache lookup failed", "err", err)
		case ok:
			s.logger.Info("level cache hit", "prompt", prompt, "level", level.Name)
			res.Level = level.Normalize()
			res.Source = SourceCache
			return res
		}
	}

	if s.provider == nil {
		s.logger.Warn("no API key configured, using default level")
		return res
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	level, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("level generation failed", "prompt", prompt, "err", err)
		res.Err = err
		return res
	}

	level = enforceContract(level, s.logger).Normalize()
	s.logger.Info("level generated",
		"prompt", prompt,
		"level", level.Name,
		"bpm", level.BPM,
		"interval", level.SpawnInterval,
		"took", time.Since(start).Round(time.Millisecond),
	)

	if s.cache != nil {
		if err := s.cache.SaveLevel(prompt, level); err != nil {
			s.logger.Warn("cannot cache level", "err", err)
		}
	}

	res.Level = level
	res.Source = SourceGenerated
	return res
}

// enforceContract clamps generator output into the promised interval range.
func enforceContract(level rhythm.LevelConfig, logger *log.Logger) rhythm.LevelConfig {
	if level.SpawnInterval > 0 && !level.InGeneratorRange() {
		clamped := core.Clamp(level.SpawnInterval, rhythm.MinSpawnInterval, rhythm.MaxSpawnInterval)
		logger.Warn("spawn interval out of range", "got", level.SpawnInterval, "clamped", clamped)
		level.SpawnInterval = clamped
	}
	return level
}
