package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// RegisterModel asks for the player's name after a finished level.
// Only ASCII letters are accepted; they are uppercased as typed.
type RegisterModel struct {
	levelID string
	moves   int
	input   textinput.Model
	done    bool
	width   int
	height  int
}

// NewRegisterModel creates a name prompt for a level finished in moves.
func NewRegisterModel(levelID string, moves int) RegisterModel {
	ti := textinput.New()
	ti.Prompt = "NAME: "
	ti.Placeholder = "YOUR NAME"
	ti.CharLimit = storage.MaxNameLen
	ti.Width = storage.MaxNameLen + 1
	ti.Focus()

	return RegisterModel{
		levelID: levelID,
		moves:   moves,
		input:   ti,
	}
}

// SetSize updates the layout size.
func (m *RegisterModel) SetSize(width, height int) {
	m.width, m.height = width, height
}

// LevelID returns the finished level.
func (m RegisterModel) LevelID() string {
	return m.levelID
}

// Moves returns the move count being registered.
func (m RegisterModel) Moves() int {
	return m.moves
}

// Name returns the name typed so far.
func (m RegisterModel) Name() string {
	return m.input.Value()
}

// Done reports whether the name was submitted.
func (m RegisterModel) Done() bool {
	return m.done
}

// Update handles a key press. Enter submits; other keys edit the name.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyEnter:
		m.done = true
		return m, nil
	case tea.KeyBackspace, tea.KeyLeft, tea.KeyRight, tea.KeyDelete, tea.KeyHome, tea.KeyEnd:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(keyMsg)
		return m, cmd
	case tea.KeyRunes:
		letters := make([]rune, 0, len(keyMsg.Runes))
		for _, r := range keyMsg.Runes {
			if storage.IsNameRune(r) {
				letters = append(letters, unicode.ToUpper(r))
			}
		}
		if len(letters) == 0 {
			return m, nil
		}
		keyMsg.Runes = letters
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

// View renders the prompt.
func (m RegisterModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("LEVEL COMPLETE"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s solved in %d moves", m.levelID, m.moves))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dim.Render("enter save  •  esc skip"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
