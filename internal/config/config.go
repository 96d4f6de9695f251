// Package config provides YAML-based configuration loading for the
// Sokoban platform, with environment overrides.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// Config contains all configuration for the platform.
type Config struct {
	Levels LevelsConfig `yaml:"levels"`
	Scores ScoresConfig `yaml:"scores"`
	SSH    SSHConfig    `yaml:"ssh"`
	Theme  ThemeConfig  `yaml:"theme"`
	Log    LogConfig    `yaml:"log"`
}

// LevelsConfig defines where levels come from and how they are listed.
type LevelsConfig struct {
	Dir       string `yaml:"dir"`
	MaxWidth  int    `yaml:"max_width"`
	MaxHeight int    `yaml:"max_height"`
	PageSize  int    `yaml:"page_size"`
}

// ScoresConfig defines highscore persistence.
type ScoresConfig struct {
	DB  string `yaml:"db"`
	Top int    `yaml:"top"` // entries shown on a highscore list
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// ThemeConfig maps every level symbol to a glyph.
type ThemeConfig struct {
	Wall           Glyph `yaml:"wall"`
	Floor          Glyph `yaml:"floor"`
	Target         Glyph `yaml:"target"`
	Crate          Glyph `yaml:"crate"`
	CrateOnTarget  Glyph `yaml:"crate_on_target"`
	Player         Glyph `yaml:"player"`
	PlayerOnTarget Glyph `yaml:"player_on_target"`
}

// Glyph is the on-screen look of one level symbol.
type Glyph struct {
	Rune  string `yaml:"rune"`
	Color string `yaml:"color"`
}

// Cell converts the glyph to a screen cell.
// Call Validate first; invalid glyphs render as '?'.
func (g Glyph) Cell() core.Cell {
	r, size := utf8.DecodeRuneInString(g.Rune)
	if size == 0 || r == utf8.RuneError {
		r = '?'
	}
	c, _ := core.ParseColor(g.Color)
	return core.Cell{Rune: r, Color: c}
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Levels.MaxWidth <= 0 || c.Levels.MaxHeight <= 0:
		return fmt.Errorf("%w: levels max size %dx%d must be positive", ErrInvalid, c.Levels.MaxWidth, c.Levels.MaxHeight)
	case c.Levels.PageSize <= 0:
		return fmt.Errorf("%w: levels.page_size %d must be positive", ErrInvalid, c.Levels.PageSize)
	case c.Scores.DB == "":
		return fmt.Errorf("%w: scores.db is empty", ErrInvalid)
	case c.Scores.Top <= 0:
		return fmt.Errorf("%w: scores.top %d must be positive", ErrInvalid, c.Scores.Top)
	case c.SSH.IdleTimeout < 0:
		return fmt.Errorf("%w: ssh.idle_timeout %s is negative", ErrInvalid, c.SSH.IdleTimeout)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	glyphs := map[string]Glyph{
		"wall":             c.Theme.Wall,
		"floor":            c.Theme.Floor,
		"target":           c.Theme.Target,
		"crate":            c.Theme.Crate,
		"crate_on_target":  c.Theme.CrateOnTarget,
		"player":           c.Theme.Player,
		"player_on_target": c.Theme.PlayerOnTarget,
	}
	for name, g := range glyphs {
		if utf8.RuneCountInString(g.Rune) != 1 {
			return fmt.Errorf("%w: theme.%s.rune %q must be a single character", ErrInvalid, name, g.Rune)
		}
		if _, ok := core.ParseColor(g.Color); !ok {
			return fmt.Errorf("%w: theme.%s.color %q is unknown", ErrInvalid, name, g.Color)
		}
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
