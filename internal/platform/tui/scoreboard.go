package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// NoScoresText is shown for a level without highscores.
const NoScoresText = "No available highscores yet"

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l", "d"),
			key.WithHelp("tab/→", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h", "a"),
			key.WithHelp("S-tab/←", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "enter", " "),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best scores of one or more levels, one level
// at a time.
type ScoreboardModel struct {
	levelIDs []string
	cursor   int
	store    *storage.Store
	top      int
	scores   []storage.ScoreEntry
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard over levelIDs showing top entries each.
func NewScoreboardModel(store *storage.Store, levelIDs []string, top, width, height int) ScoreboardModel {
	if top <= 0 {
		top = storage.DefaultTop
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		levelIDs: levelIDs,
		store:    store,
		top:      top,
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.Refresh()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: storage.MaxNameLen + 2},
		{Title: "Moves", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, min(m.top+1, m.height-10))),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// LevelID returns the level currently shown, or "".
func (m ScoreboardModel) LevelID() string {
	if len(m.levelIDs) == 0 {
		return ""
	}
	return m.levelIDs[m.cursor]
}

// Scores returns the entries currently shown.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

// Refresh reloads the scores of the current level.
func (m *ScoreboardModel) Refresh() {
	m.scores, m.err = nil, nil
	if m.store != nil && m.LevelID() != "" {
		m.scores, m.err = m.store.TopScores(m.LevelID(), m.top)
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Name,
			fmt.Sprintf("%d", s.Moves),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// SetSize updates the layout size.
func (m *ScoreboardModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.table = m.createTable()
	m.Refresh()
	m.help.Width = width
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil

		case key.Matches(msg, m.keys.NextLevel):
			if len(m.levelIDs) > 0 {
				m.cursor = (m.cursor + 1) % len(m.levelIDs)
				m.Refresh()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.levelIDs) > 0 {
				m.cursor = (m.cursor - 1 + len(m.levelIDs)) % len(m.levelIDs)
				m.Refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// IsGoingBack returns true if user wants to leave the scoreboard.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "HIGHSCORES"
	if id := m.LevelID(); id != "" {
		title = fmt.Sprintf("HIGHSCORES - %s", id)
	}
	if len(m.levelIDs) > 1 {
		title = fmt.Sprintf("< %s >", title)
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	content := lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not load highscores: " + m.err.Error())
	case len(m.scores) == 0:
		return emptyStyle.Render(NoScoresText)
	}
	return m.table.View()
}

// scoreboardProgram adapts ScoreboardModel to a standalone tea.Model.
type scoreboardProgram struct {
	ScoreboardModel
}

func (p scoreboardProgram) Init() tea.Cmd { return nil }

func (p scoreboardProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.ScoreboardModel, cmd = p.ScoreboardModel.Update(msg)
	if p.IsQuitting() || p.IsGoingBack() {
		return p, tea.Quit
	}
	return p, cmd
}

func (p scoreboardProgram) View() string {
	if p.IsQuitting() || p.IsGoingBack() {
		return ""
	}
	return p.ScoreboardModel.View()
}

// RunScoreboard runs the scoreboard as its own program.
func RunScoreboard(store *storage.Store, levelIDs []string, top, width, height int) error {
	model := scoreboardProgram{NewScoreboardModel(store, levelIDs, top, width, height)}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
