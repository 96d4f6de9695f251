// Package game runs one Sokoban level as a platform game: it maps input
// frames to moves, tracks the move counter and renders the board and HUD
// onto a core.Screen.
package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// HUDHeight is the number of rows above the board reserved for the HUD.
const HUDHeight = 2

// Game is a level in play.
type Game struct {
	level  levels.Level
	state  *sokoban.State
	theme  Theme
	logger *log.Logger

	// Screen dimensions
	screenW int
	screenH int

	tooSmall bool
}

// New creates a game for level with the default theme.
func New(level levels.Level) (*Game, error) {
	state, err := level.NewState()
	if err != nil {
		return nil, fmt.Errorf("game: level %s: %w", level.ID, err)
	}

	g := &Game{
		level: level,
		state: state,
		theme: DefaultTheme(),
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// SetTheme changes the glyphs used by Render.
func (g *Game) SetTheme(t Theme) {
	g.theme = t
}

// SetLogger sets the logger for rejected moves.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Reset reloads the level, discarding progress, and adopts the screen size.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	// The source rows were validated by New, so reloading cannot fail.
	_ = g.state.Reset()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adopts a new screen size without touching progress.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < g.level.Width || h < g.level.Height+HUDHeight
}

// Step handles one input frame.
// Restart reloads the level. Moves are ignored once the level is finished
// or while the screen is too small.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		moved := g.state.Moves() > 0
		_ = g.state.Reset()
		return core.StepResult{State: g.State(), Moved: moved}
	}

	if g.state.Finished() || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	d, ok := direction(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	return g.move(d)
}

func (g *Game) move(d sokoban.Direction) core.StepResult {
	res, err := g.state.Move(d)
	if err != nil {
		l := g.logger
		if l == nil {
			l = log.Default()
		}
		l.Error("move rejected", "level", g.level.ID, "error", err)
		return core.StepResult{State: g.State()}
	}
	return core.StepResult{State: g.State(), Moved: res.Moved()}
}

// HasMove reports whether the frame holds a movement action.
func HasMove(in core.InputFrame) bool {
	_, ok := direction(in)
	return ok
}

// direction picks the first movement action in the frame.
func direction(in core.InputFrame) (sokoban.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return sokoban.Up, true
	case in.Has(core.ActionDown):
		return sokoban.Down, true
	case in.Has(core.ActionLeft):
		return sokoban.Left, true
	case in.Has(core.ActionRight):
		return sokoban.Right, true
	}
	return sokoban.Direction{}, false
}

// State returns the platform view of the game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Moves:    g.state.Moves(),
		Finished: g.state.Finished(),
		TooSmall: g.tooSmall,
	}
}

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	LevelID  string
	Moves    int
	Player   sokoban.Point
	Crates   []sokoban.Point
	Finished bool
	Rows     []string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		LevelID:  g.level.ID,
		Moves:    g.state.Moves(),
		Player:   g.state.Player(),
		Crates:   g.state.Crates(),
		Finished: g.state.Finished(),
		Rows:     g.state.Rows(),
	}
}
