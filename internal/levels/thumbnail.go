package levels

import "github.com/vovakirdan/tui-sokoban/internal/sokoban"

// ThumbCell is one cell of a level preview.
type ThumbCell uint8

const (
	ThumbEmpty ThumbCell = iota
	ThumbWall
	ThumbTarget
	ThumbPlayer
	ThumbPlayerOnTarget
	ThumbCrate
	ThumbCrateOnTarget
)

// Thumbnail renders the level's initial layout into a w×h preview with the
// level centered. Cells falling outside the preview are dropped.
func Thumbnail(l Level, w, h int) [][]ThumbCell {
	thumb := make([][]ThumbCell, h)
	for y := range thumb {
		thumb[y] = make([]ThumbCell, w)
	}

	left := (w - l.Width) / 2
	top := (h - l.Height) / 2
	for y, row := range l.Rows {
		ty := top + y
		if ty < 0 || ty >= h {
			continue
		}
		for x := 0; x < len(row); x++ {
			tx := left + x
			if tx < 0 || tx >= w {
				continue
			}
			thumb[ty][tx] = thumbCell(row[x])
		}
	}
	return thumb
}

func thumbCell(c byte) ThumbCell {
	switch c {
	case sokoban.Wall:
		return ThumbWall
	case sokoban.Target:
		return ThumbTarget
	case sokoban.Player:
		return ThumbPlayer
	case sokoban.PlayerOnTarget:
		return ThumbPlayerOnTarget
	case sokoban.Crate:
		return ThumbCrate
	case sokoban.CrateOnTarget:
		return ThumbCrateOnTarget
	default:
		return ThumbEmpty
	}
}
