package levelgen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

const levelJSON = `{"name":"Cyber Jazz","description":"Smoky neon club","bpm":132,"spawnInterval":742.6,"difficulty":"Hard","theme":{"primary":"#ff00aa","secondary":"#00e5ff","accent":"#ffd500","background":"#120024"}}`

func geminiReply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

// wireRequest is the part of a generateContent request body the tests inspect.
type wireRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string      `json:"responseMimeType"`
		ResponseSchema   *wireSchema `json:"responseSchema"`
	} `json:"generationConfig"`
}

type wireSchema struct {
	Type       string                 `json:"type"`
	Properties map[string]*wireSchema `json:"properties"`
	Enum       []string               `json:"enum"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewGemini(GeminiConfig{APIKey: "test-key", Model: "gemini-test", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewGemini() failed: %v", err)
	}
	return c
}

func TestGeminiGenerate(t *testing.T) {
	var gotReq wireRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, expected POST", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-test:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header = %q", r.Header.Get("x-goog-api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiReply(levelJSON)))
	})

	level, err := c.Generate(context.Background(), "Cyberpunk Jazz with high speed")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	expected := rhythm.LevelConfig{
		Name:          "Cyber Jazz",
		Description:   "Smoky neon club",
		BPM:           132,
		SpawnInterval: 743,
		Difficulty:    rhythm.DifficultyHard,
		Theme: rhythm.Theme{
			Primary:    "#ff00aa",
			Secondary:  "#00e5ff",
			Accent:     "#ffd500",
			Background: "#120024",
		},
	}
	if level != expected {
		t.Errorf("Generate() = %+v, expected %+v", level, expected)
	}

	if gotReq.GenerationConfig.ResponseMimeType != "application/json" {
		t.Errorf("responseMimeType = %q", gotReq.GenerationConfig.ResponseMimeType)
	}
	sch := gotReq.GenerationConfig.ResponseSchema
	if sch == nil || sch.Type != "OBJECT" || sch.Properties["theme"] == nil {
		t.Fatalf("response schema missing: %+v", sch)
	}
	if len(sch.Properties["difficulty"].Enum) != 4 {
		t.Errorf("difficulty enum = %v", sch.Properties["difficulty"].Enum)
	}
	if len(gotReq.Contents) != 1 || !strings.Contains(gotReq.Contents[0].Parts[0].Text, "Cyberpunk Jazz with high speed") {
		t.Errorf("prompt not forwarded: %+v", gotReq.Contents)
	}
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errPart string
	}{
		{"api error", http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`, "API key not valid"},
		{"bare status", http.StatusBadRequest, `oops`, "request failed"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, "empty response"},
		{"empty text", http.StatusOK, geminiReply("  "), "empty response"},
		{"not json", http.StatusOK, geminiReply("sure! here is a level"), "decode level"},
		{"missing bpm", http.StatusOK, geminiReply(`{"name":"x","spawnInterval":800}`), "bpm"},
		{"missing interval", http.StatusOK, geminiReply(`{"name":"x","bpm":90}`), "spawnInterval"},
		{"missing name", http.StatusOK, geminiReply(`{"bpm":90,"spawnInterval":800}`), "name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := c.Generate(context.Background(), "anything")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.errPart) {
				t.Errorf("error %q should mention %q", err, tc.errPart)
			}
		})
	}
}

func TestGeminiContextCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Generate(ctx, "slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := NewGemini(GeminiConfig{}); err == nil {
		t.Error("NewGemini() without key should fail")
	}
}

func TestDecodeLevelCodeFence(t *testing.T) {
	level, err := DecodeLevel([]byte("```json\n" + levelJSON + "\n```"))
	if err != nil {
		t.Fatalf("DecodeLevel() failed: %v", err)
	}
	if level.Name != "Cyber Jazz" {
		t.Errorf("Name = %q", level.Name)
	}
}
