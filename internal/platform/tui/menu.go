package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// Main menu options.
const (
	OptionContinue = iota
	OptionHighscores
	OptionLoad
)

var menuOptions = []string{"Continue", "Highscores", "Load"}

// MenuModel is the main menu. Continue and Highscores are disabled until a
// level is loaded.
type MenuModel struct {
	cursor int
	loaded bool
	width  int
	height int
}

// NewMenuModel creates a menu with the cursor on the first option.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{width: width, height: height}
}

// SetSize updates the layout size.
func (m *MenuModel) SetSize(width, height int) {
	m.width, m.height = width, height
}

// SetLoaded enables or disables the options that need a loaded level.
func (m *MenuModel) SetLoaded(loaded bool) {
	m.loaded = loaded
}

// Loaded reports whether a level is loaded.
func (m MenuModel) Loaded() bool {
	return m.loaded
}

// Cursor returns the highlighted option.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Enabled reports whether option can be chosen.
func (m MenuModel) Enabled(option int) bool {
	return m.loaded || option == OptionLoad
}

// Move moves the cursor, wrapping around at both ends.
// Disabled options can be highlighted but not chosen.
func (m *MenuModel) Move(delta int) {
	n := len(menuOptions)
	m.cursor = ((m.cursor+delta)%n + n) % n
}

// Handle applies an action. It returns the chosen option, or -1.
func (m *MenuModel) Handle(a core.Action) int {
	switch a {
	case core.ActionUp:
		m.Move(-1)
	case core.ActionDown:
		m.Move(1)
	case core.ActionConfirm:
		if m.Enabled(m.cursor) {
			return m.cursor
		}
	}
	return -1
}

// View renders the menu.
func (m MenuModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	button := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(24).
		Align(lipgloss.Center)
	selected := button.BorderForeground(lipgloss.Color("220")).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("S O K O B A N"))
	b.WriteString("\n\n")

	for i, opt := range menuOptions {
		style := button
		if i == m.cursor {
			style = selected
		}
		if !m.Enabled(i) {
			style = style.Foreground(lipgloss.Color("240"))
		}
		b.WriteString(style.Render(opt))
		b.WriteString("\n")
	}

	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render("↑/↓ move  •  enter select  •  q quit")
	b.WriteString("\n")
	b.WriteString(hint)

	content := lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
