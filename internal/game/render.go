package game

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// Theme holds the screen cell drawn for each level symbol.
type Theme struct {
	Wall           core.Cell
	Floor          core.Cell
	Target         core.Cell
	Crate          core.Cell
	CrateOnTarget  core.Cell
	Player         core.Cell
	PlayerOnTarget core.Cell
}

// ThemeFromConfig builds a theme from validated configuration.
func ThemeFromConfig(c config.ThemeConfig) Theme {
	return Theme{
		Wall:           c.Wall.Cell(),
		Floor:          c.Floor.Cell(),
		Target:         c.Target.Cell(),
		Crate:          c.Crate.Cell(),
		CrateOnTarget:  c.CrateOnTarget.Cell(),
		Player:         c.Player.Cell(),
		PlayerOnTarget: c.PlayerOnTarget.Cell(),
	}
}

// DefaultTheme returns the theme of the default configuration.
func DefaultTheme() Theme {
	return ThemeFromConfig(config.Default().Theme)
}

// Cell returns the cell for a level symbol.
func (t Theme) Cell(symbol byte) core.Cell {
	switch symbol {
	case sokoban.Wall:
		return t.Wall
	case sokoban.Target:
		return t.Target
	case sokoban.Crate:
		return t.Crate
	case sokoban.CrateOnTarget:
		return t.CrateOnTarget
	case sokoban.Player:
		return t.Player
	case sokoban.PlayerOnTarget:
		return t.PlayerOnTarget
	default:
		return t.Floor
	}
}

// HUD returns the status line shown above the board.
func (g *Game) HUD() string {
	return fmt.Sprintf("ESC - return to menu | R - restart | MOVES: %d", g.state.Moves())
}

// BoardRect returns where the board is drawn on a w×h screen.
func (g *Game) BoardRect(w, h int) core.Rect {
	area := core.NewRect(0, HUDHeight, w, h-HUDHeight)
	return area.Centered(g.level.Width, g.level.Height)
}

// Render draws the HUD and the board onto screen.
func (g *Game) Render(screen *core.Screen) {
	screen.Clear()
	w, h := screen.Width(), screen.Height()

	if g.tooSmall {
		screen.DrawBox(screen.Bounds(), core.ColorGray)
		screen.DrawTextCentered(h/2-1, "Window too small", core.ColorBrightRed)
		screen.DrawTextCentered(h/2, fmt.Sprintf("Need %dx%d", g.level.Width, g.level.Height+HUDHeight), core.ColorWhite)
		return
	}

	hudColor := core.ColorWhite
	if g.state.Finished() {
		hudColor = core.ColorBrightGreen
	}
	screen.DrawTextWithColor(0, 0, g.HUD(), hudColor)
	screen.FillRect(core.NewRect(0, 1, w, 1), '─', core.ColorGray)

	bounds := screen.Bounds()
	board := g.BoardRect(w, h)
	for y, row := range g.state.Rows() {
		for x := 0; x < len(row); x++ {
			px, py := board.X+x, board.Y+y
			if !bounds.Contains(px, py) {
				continue
			}
			cell := g.theme.Cell(row[x])
			screen.SetWithColor(px, py, cell.Rune, cell.Color)
		}
	}
}
