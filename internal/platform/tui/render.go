package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrown:        lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBlack:        lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// thumbColors are the thumbnail colors of the level selector.
var thumbColors = map[levels.ThumbCell]lipgloss.Color{
	levels.ThumbEmpty:          lipgloss.Color("52"),  // brown board
	levels.ThumbWall:           lipgloss.Color("242"), // grey
	levels.ThumbTarget:         lipgloss.Color("196"), // red
	levels.ThumbPlayer:         lipgloss.Color("33"),  // blue
	levels.ThumbPlayerOnTarget: lipgloss.Color("199"), // purple
	levels.ThumbCrate:          lipgloss.Color("16"),  // black
	levels.ThumbCrateOnTarget:  lipgloss.Color("46"),  // green
}

// RenderThumbnail draws a thumbnail grid with half blocks, two grid rows
// per terminal line.
func RenderThumbnail(grid [][]levels.ThumbCell) string {
	var sb strings.Builder
	for y := 0; y < len(grid); y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range grid[y] {
			top := thumbColors[grid[y][x]]
			bottom := thumbColors[levels.ThumbEmpty]
			if y+1 < len(grid) {
				bottom = thumbColors[grid[y+1][x]]
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀"))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
