package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
)

// SelectorModel lists levels page by page with a thumbnail of the
// highlighted one. Choosing a level loads it but keeps the selector open.
type SelectorModel struct {
	pager    *levels.Pager
	pageSize int
	loadedID string
	thumbW   int
	thumbH   int
	width    int
	height   int
}

// NewSelectorModel creates a selector over lvls.
// Thumbnails are thumbW×thumbH grid cells.
func NewSelectorModel(lvls []levels.Level, pageSize, thumbW, thumbH int) SelectorModel {
	return SelectorModel{
		pager:    levels.NewPager(lvls, pageSize),
		pageSize: pageSize,
		thumbW:   thumbW,
		thumbH:   thumbH,
	}
}

// SetSize updates the layout size.
func (m *SelectorModel) SetSize(width, height int) {
	m.width, m.height = width, height
}

// SetLevels replaces the level list, keeping the highlighted level if it
// still exists.
func (m *SelectorModel) SetLevels(lvls []levels.Level) {
	current, ok := m.pager.Selected()
	m.pager = levels.NewPager(lvls, m.pageSize)
	if ok {
		m.pager.SelectID(current.ID)
	}
}

// SetLoaded marks the level with the given ID as loaded; "" clears the mark.
func (m *SelectorModel) SetLoaded(id string) {
	m.loadedID = id
}

// Selected returns the highlighted level.
func (m SelectorModel) Selected() (levels.Level, bool) {
	return m.pager.Selected()
}

// Handle applies an action. It returns the chosen level on confirm.
func (m *SelectorModel) Handle(a core.Action) (levels.Level, bool) {
	switch a {
	case core.ActionUp:
		m.pager.Move(-1)
	case core.ActionDown:
		m.pager.Move(1)
	case core.ActionLeft:
		m.pager.Move(-m.pager.Cursor() - 1)
	case core.ActionRight:
		m.pager.Move(len(m.pager.Page()) - m.pager.Cursor())
	case core.ActionConfirm:
		lvl, ok := m.pager.Selected()
		if ok {
			m.loadedID = lvl.ID
		}
		return lvl, ok
	}
	return levels.Level{}, false
}

// View renders the selector.
func (m SelectorModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	if m.pager.Len() == 0 {
		content := titleStyle.Render("LOAD LEVEL") + "\n\n" +
			dim.Render("No levels found") + "\n\n" +
			dim.Render("esc menu")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	var list strings.Builder
	for i, lvl := range m.pager.Page() {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.pager.Cursor() {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("220"))
		}
		mark := " "
		if lvl.ID == m.loadedID {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %-16s %2dx%-2d", cursor, mark, lvl.Name, lvl.Width, lvl.Height)
		list.WriteString(style.Render(line))
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(dim.Render(fmt.Sprintf("page %d/%d", m.pager.PageIndex()+1, m.pager.PageCount())))

	listBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(list.String())

	body := listBox
	if lvl, ok := m.pager.Selected(); ok {
		thumb := RenderThumbnail(levels.Thumbnail(lvl, m.thumbW, m.thumbH))
		thumbBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(thumb)
		body = lipgloss.JoinHorizontal(lipgloss.Top, listBox, "  ", thumbBox)
	}

	hint := dim.Render("↑/↓ move  •  ←/→ page  •  enter load  •  esc menu")
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("LOAD LEVEL"), "", body, "", hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
