package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sokoban.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
// It matches defaults/sokoban.yaml.
func Default() Config {
	return Config{
		Levels: LevelsConfig{
			MaxWidth:  20,
			MaxHeight: 20,
			PageSize:  6,
		},
		Scores: ScoresConfig{
			DB:  "~/.sokoban/scores.db",
			Top: 10,
		},
		SSH: SSHConfig{
			Address:     ":2222",
			HostKey:     ".ssh/sokoban_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		Theme: ThemeConfig{
			Wall:           Glyph{Rune: "█", Color: "gray"},
			Floor:          Glyph{Rune: " ", Color: "default"},
			Target:         Glyph{Rune: "·", Color: "red"},
			Crate:          Glyph{Rune: "▣", Color: "brown"},
			CrateOnTarget:  Glyph{Rune: "▣", Color: "green"},
			Player:         Glyph{Rune: "@", Color: "blue"},
			PlayerOnTarget: Glyph{Rune: "@", Color: "magenta"},
		},
		Log: LogConfig{Level: "info"},
	}
}
