package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/piano-fire/internal/rhythm"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sunsetYAML = `
name: Sunset Drive
description: Synthwave cruise.
bpm: 118
spawn_interval: 750
difficulty: medium
theme:
  primary: "#f97316"
  secondary: "#a855f7"
  accent: "#facc15"
  background: "#1e1b4b"
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sunset.yaml", sunsetYAML)

	lvl, err := NewLoader(dir).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if lvl.ID != "sunset" {
		t.Errorf("ID = %q, expected file name", lvl.ID)
	}
	if lvl.Config.Name != "Sunset Drive" || lvl.Config.BPM != 118 || lvl.Config.SpawnInterval != 750 {
		t.Errorf("unexpected config %+v", lvl.Config)
	}
	if lvl.Config.Difficulty != rhythm.DifficultyMedium {
		t.Errorf("Difficulty = %q, expected normalized Medium", lvl.Config.Difficulty)
	}
	if lvl.Config.Theme.Accent != "#facc15" {
		t.Errorf("Accent = %q", lvl.Config.Theme.Accent)
	}
	if lvl.FilePath != path {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}
}

func TestLoadFileExplicitID(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "whatever.yml", "id: rain\nname: Rain\nbpm: 70\n")

	lvl, err := NewLoader(dir).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if lvl.ID != "rain" {
		t.Errorf("ID = %q, expected rain", lvl.ID)
	}
	if lvl.Config.SpawnInterval != rhythm.DefaultLevel().SpawnInterval {
		t.Errorf("missing interval not repaired: %d", lvl.Config.SpawnInterval)
	}
}

func TestLoadFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jazz.json", `{"name": "Jazz", "bpm": 132, "spawn_interval": 650}`)

	lvl, err := NewLoader(dir).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if lvl.Config.Name != "Jazz" || lvl.Config.BPM != 132 || lvl.Config.SpawnInterval != 650 {
		t.Errorf("unexpected config %+v", lvl.Config)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir)

	if _, err := loader.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := writeFile(t, dir, "bad.yaml", "name: [unterminated")
	if _, err := loader.LoadFile(bad); err == nil {
		t.Error("expected error for invalid YAML")
	}
	nameless := writeFile(t, dir, "nameless.yaml", "bpm: 90\n")
	if _, err := loader.LoadFile(nameless); err == nil {
		t.Error("expected error for level without a name")
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "name: Bravo\n")
	writeFile(t, dir, "nested/a.yaml", "name: Alpha\n")
	writeFile(t, dir, "c.yml", "name: Charlie\n")
	writeFile(t, dir, "broken.yaml", "name: [")
	writeFile(t, dir, "notes.txt", "name: Ignored\n")

	all, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	var ids []string
	for _, l := range all {
		ids = append(ids, l.ID)
	}
	expected := []string{"a", "b", "c"}
	if len(ids) != len(expected) {
		t.Fatalf("ids = %v, expected %v", ids, expected)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("ids[%d] = %q, expected %q", i, ids[i], expected[i])
		}
	}
}

func TestLoadAllMissingDir(t *testing.T) {
	all, err := NewLoader(filepath.Join(t.TempDir(), "nope")).LoadAll()
	if err != nil {
		t.Fatalf("missing directory should not fail: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no levels, got %d", len(all))
	}
}

func TestLoadByIDAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sunset.yaml", sunsetYAML)
	loader := NewLoader(dir)

	lvl, err := loader.LoadByID("sunset")
	if err != nil || lvl.Config.Name != "Sunset Drive" {
		t.Fatalf("LoadByID = %+v, %v", lvl, err)
	}
	if _, err := loader.LoadByID("nope"); err == nil {
		t.Error("expected error for unknown id")
	}

	byPath, err := loader.Resolve(path)
	if err != nil || byPath.ID != "sunset" {
		t.Errorf("Resolve(path) = %+v, %v", byPath, err)
	}
	byID, err := loader.Resolve("sunset")
	if err != nil || byID.FilePath != path {
		t.Errorf("Resolve(id) = %+v, %v", byID, err)
	}

	ids, err := loader.ListIDs()
	if err != nil || len(ids) != 1 || ids[0] != "sunset" {
		t.Errorf("ListIDs = %v, %v", ids, err)
	}
}

func TestNewLoaderExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	loader := NewLoader("~/.pianofire/levels")
	expected := filepath.Join(home, ".pianofire", "levels")
	if loader.Root != expected {
		t.Errorf("Root = %q, expected %q", loader.Root, expected)
	}
}
