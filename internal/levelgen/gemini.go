// Package levelgen turns a free-text mood prompt into a level configuration
// using the Gemini API, falling back to a fixed default level whenever
// generation is unavailable or fails.
package levelgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

// Provider generates a level from a prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (rhythm.LevelConfig, error)
}

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("levelgen: empty response")

// GeminiConfig configures a GeminiClient.
type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string       // empty uses the public endpoint
	HTTPClient *http.Client // nil uses the SDK default
}

// GeminiClient generates levels through the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGemini creates a client. The API key must be non-empty.
func NewGemini(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("levelgen: missing API key")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/"
	}

	// The API key backend does no credential lookup, so no request context is needed.
	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, fmt.Errorf("levelgen: create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

// levelSchema mirrors the JSON shape DecodeLevel reads.
func levelSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":          str(),
			"description":   str(),
			"bpm":           {Type: genai.TypeNumber},
			"spawnInterval": {Type: genai.TypeNumber},
			"difficulty": {
				Type: genai.TypeString,
				Enum: []string{"Easy", "Medium", "Hard", "Extreme"},
			},
			"theme": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"primary":    str(),
					"secondary":  str(),
					"accent":     str(),
					"background": str(),
				},
				Required: []string{"primary", "secondary", "accent", "background"},
			},
		},
		Required: []string{"name", "bpm", "spawnInterval", "difficulty", "theme"},
	}
}

// buildPrompt wraps the user's description in the generation instructions.
func buildPrompt(prompt string) string {
	return fmt.Sprintf(`Create a rhythm game level configuration based on this description: %q.
Return a JSON object only.
Make sure the spawnInterval is between %d (fast) and %d (slow).
Make sure colors are vibrant hex codes.`, prompt, rhythm.MinSpawnInterval, rhythm.MaxSpawnInterval)
}

// Generate asks the model for a level. The result is decoded but not normalized.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (rhythm.LevelConfig, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(buildPrompt(prompt)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   levelSchema(),
		},
	)
	if err != nil {
		return rhythm.LevelConfig{}, fmt.Errorf("levelgen: request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return rhythm.LevelConfig{}, ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return rhythm.LevelConfig{}, ErrEmptyResponse
	}

	return DecodeLevel([]byte(text))
}

// wireLevel is the model's JSON output. Numbers may arrive as floats.
type wireLevel struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	BPM           *float64     `json:"bpm"`
	SpawnInterval *float64     `json:"spawnInterval"`
	Difficulty    string       `json:"difficulty"`
	Theme         rhythm.Theme `json:"theme"`
}

// DecodeLevel parses a level JSON object as produced by the model.
func DecodeLevel(data []byte) (rhythm.LevelConfig, error) {
	data = bytes.TrimSpace(data)
	// Some replies wrap the object in a markdown code fence.
	if bytes.HasPrefix(data, []byte("```")) {
		data = bytes.TrimPrefix(data, []byte("```json"))
		data = bytes.TrimPrefix(data, []byte("```"))
		data = bytes.TrimSuffix(bytes.TrimSpace(data), []byte("```"))
	}

	var w wireLevel
	if err := json.Unmarshal(data, &w); err != nil {
		return rhythm.LevelConfig{}, fmt.Errorf("levelgen: decode level: %w", err)
	}
	if strings.TrimSpace(w.Name) == "" {
		return rhythm.LevelConfig{}, errors.New("levelgen: level has no name")
	}
	if w.BPM == nil || *w.BPM <= 0 {
		return rhythm.LevelConfig{}, errors.New("levelgen: level has no valid bpm")
	}
	if w.SpawnInterval == nil || *w.SpawnInterval <= 0 {
		return rhythm.LevelConfig{}, errors.New("levelgen: level has no valid spawnInterval")
	}

	return rhythm.LevelConfig{
		Name:          w.Name,
		Description:   w.Description,
		BPM:           *w.BPM,
		SpawnInterval: int(math.Round(*w.SpawnInterval)),
		Difficulty:    rhythm.Difficulty(w.Difficulty),
		Theme:         w.Theme,
	}, nil
}
