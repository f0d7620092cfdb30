package registry

import "github.com/vovakirdan/piano-fire/internal/rhythm"

func init() {
	Register(Preset{
		ID:     "classic",
		Title:  "Classic Piano",
		Prompt: "Classical piano masterpiece, fast tempo, blue theme",
		Offline: rhythm.LevelConfig{
			Name:          "Moonlight Sprint",
			Description:   "A classical run at full speed.",
			BPM:           140,
			SpawnInterval: 700,
			Difficulty:    rhythm.DifficultyHard,
			Theme: rhythm.Theme{
				Primary:    "#3b82f6",
				Secondary:  "#60a5fa",
				Accent:     "#93c5fd",
				Background: "#0b1120",
			},
		},
	})

	Register(Preset{
		ID:     "dubstep",
		Title:  "Dubstep Fire",
		Prompt: "Aggressive dubstep, neon red and purple, extreme speed",
		Offline: rhythm.LevelConfig{
			Name:          "Bass Inferno",
			Description:   "Hold on through the drop.",
			BPM:           150,
			SpawnInterval: 600,
			Difficulty:    rhythm.DifficultyExtreme,
			Theme: rhythm.Theme{
				Primary:    "#ef4444",
				Secondary:  "#a855f7",
				Accent:     "#f43f5e",
				Background: "#1a0b1e",
			},
		},
	})

	Register(Preset{
		ID:     "lofi",
		Title:  "Chill Lo-Fi",
		Prompt: "Relaxing lofi beats, slow, purple and gold",
		Offline: rhythm.LevelConfig{
			Name:          "Rainy Window",
			Description:   "Slow beats for a slow evening.",
			BPM:           75,
			SpawnInterval: 1100,
			Difficulty:    rhythm.DifficultyEasy,
			Theme: rhythm.Theme{
				Primary:    "#8b5cf6",
				Secondary:  "#f59e0b",
				Accent:     "#fcd34d",
				Background: "#1e1b2e",
			},
		},
	})
}
