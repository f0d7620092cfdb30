package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/piano-fire/internal/platform/tui"
)

func resetPlayFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagLevel, flagPreset, flagConfig = "", "", ""
	})
}

func TestPlaySelectionPrompt(t *testing.T) {
	resetPlayFlags(t)

	sel, err := playSelection([]string{"rainy", " night ", "jazz"})
	if err != nil {
		t.Fatalf("playSelection failed: %v", err)
	}
	if sel.Prompt != "rainy  night  jazz" || sel.Level != nil || sel.Offline != nil {
		t.Errorf("unexpected selection %+v", sel)
	}

	sel, err = playSelection(nil)
	if err != nil || sel.Prompt != tui.DefaultPrompt {
		t.Errorf("empty prompt = %+v, %v, expected default prompt", sel, err)
	}
}

func TestPlaySelectionPreset(t *testing.T) {
	resetPlayFlags(t)

	flagPreset = "lofi"
	sel, err := playSelection(nil)
	if err != nil {
		t.Fatalf("playSelection failed: %v", err)
	}
	if sel.Offline == nil || sel.Prompt == "" {
		t.Errorf("preset selection should carry its prompt and offline level: %+v", sel)
	}

	flagPreset = "polka"
	if _, err := playSelection(nil); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPlaySelectionLevelFile(t *testing.T) {
	resetPlayFlags(t)

	path := filepath.Join(t.TempDir(), "sunset.yaml")
	if err := os.WriteFile(path, []byte("name: Sunset Drive\nbpm: 118\nspawn_interval: 750\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	flagLevel = path
	sel, err := playSelection([]string{"ignored"})
	if err != nil {
		t.Fatalf("playSelection failed: %v", err)
	}
	if sel.Level == nil || sel.Level.Name != "Sunset Drive" || sel.Level.BPM != 118 {
		t.Errorf("unexpected selection %+v", sel)
	}
}
