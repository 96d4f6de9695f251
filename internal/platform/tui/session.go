package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// Mode is the screen a session is showing.
type Mode int

const (
	ModeMenu Mode = iota
	ModeGame
	ModeRegister
	ModeSelector
	ModeHighscores
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeGame:
		return "game"
	case ModeRegister:
		return "register"
	case ModeSelector:
		return "selector"
	case ModeHighscores:
		return "highscores"
	default:
		return "unknown"
	}
}

// Options configures a session.
type Options struct {
	Store   *storage.Store // nil disables highscores
	Library *levels.Library
	Theme   game.Theme

	PageSize int // selector entries per page
	ThumbW   int // thumbnail grid size
	ThumbH   int
	Top      int // highscore entries shown

	Logger    *log.Logger
	SessionID string // generated when empty

	// StartLevel, if set, is loaded and played right away.
	StartLevel string

	// Context ends the session's background work when done, e.g. when an
	// SSH connection closes. Defaults to context.Background().
	Context context.Context
}

// LevelsChangedMsg is sent when the level library was reloaded.
type LevelsChangedMsg struct{}

// SessionModel manages the full flow of one player:
// menu -> selector -> game -> register -> highscores -> menu.
type SessionModel struct {
	opts   Options
	logger *log.Logger
	keys   KeyMap

	mode     Mode
	menu     MenuModel
	selector SelectorModel
	register RegisterModel
	scores   ScoreboardModel

	game   *game.Game
	screen *core.Screen
	config core.RuntimeConfig

	quitting bool
	done     chan struct{} // closed on quit
	stop     func()
}

// NewSessionModel creates a session sized for cfg.
func NewSessionModel(opts Options, cfg core.RuntimeConfig) SessionModel {
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = levels.DefaultPageSize
	}
	if opts.ThumbW <= 0 || opts.ThumbH <= 0 {
		opts.ThumbW, opts.ThumbH = levels.DefaultMaxWidth, levels.DefaultMaxHeight
	}
	if opts.Top <= 0 {
		opts.Top = storage.DefaultTop
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Theme == (game.Theme{}) {
		opts.Theme = game.DefaultTheme()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	done := make(chan struct{})

	m := SessionModel{
		opts:     opts,
		logger:   opts.Logger.With("session", opts.SessionID),
		keys:     DefaultKeyMap(),
		mode:     ModeMenu,
		menu:     NewMenuModel(cfg.ScreenW, cfg.ScreenH),
		selector: NewSelectorModel(opts.Library.Levels(), opts.PageSize, opts.ThumbW, opts.ThumbH),
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:   cfg,
		done:     done,
		stop:     sync.OnceFunc(func() { close(done) }),
	}
	m.selector.SetSize(cfg.ScreenW, cfg.ScreenH)

	if opts.StartLevel != "" {
		if lvl, ok := opts.Library.Get(opts.StartLevel); ok {
			m.loadLevel(lvl)
			m.mode = ModeGame
		} else {
			m.logger.Warn("start level not found", "level", opts.StartLevel)
		}
	}
	return m
}

// Init starts listening for level library changes.
func (m SessionModel) Init() tea.Cmd {
	return m.waitForLevels()
}

// waitForLevels blocks until the library reloads or the session ends.
func (m SessionModel) waitForLevels() tea.Cmd {
	changed := m.opts.Library.Changed()
	ctx, done := m.opts.Context, m.done
	return func() tea.Msg {
		select {
		case <-changed:
			return LevelsChangedMsg{}
		case <-done:
		case <-ctx.Done():
		}
		return nil
	}
}

// Mode returns the current screen.
func (m SessionModel) Mode() Mode {
	return m.mode
}

// Game returns the loaded game, or nil.
func (m SessionModel) Game() *game.Game {
	return m.game
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case LevelsChangedMsg:
		m.selector.SetLevels(m.opts.Library.Levels())
		return m, m.waitForLevels()

	case tea.KeyMsg:
		if isForceQuit(msg) {
			return m.quit()
		}
		// ESC returns to the menu from any screen
		if msg.Type == tea.KeyEsc {
			if m.mode == ModeRegister {
				m.logger.Info("highscore skipped", "level", m.register.LevelID())
			}
			m.mode = ModeMenu
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.mode == ModeRegister {
		var cmd tea.Cmd
		m.register, cmd = m.register.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeMenu:
		return m.updateMenu(msg)
	case ModeSelector:
		return m.updateSelector(msg)
	case ModeGame:
		return m.updateGame(msg)
	case ModeRegister:
		return m.updateRegister(msg)
	case ModeHighscores:
		return m.updateHighscores(msg)
	}
	return m, nil
}

func (m SessionModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		return m.quit()
	}

	switch m.menu.Handle(action) {
	case OptionContinue:
		m.mode = ModeGame
	case OptionHighscores:
		m.showHighscores(m.game.Level().ID)
	case OptionLoad:
		m.mode = ModeSelector
	}
	return m, nil
}

func (m SessionModel) updateSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		return m.quit()
	}

	if lvl, ok := m.selector.Handle(action); ok {
		m.loadLevel(lvl)
	}
	return m, nil
}

func (m SessionModel) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frame := m.keys.Frame(msg)
	if frame.Has(core.ActionQuit) {
		return m.quit()
	}
	if m.game == nil {
		m.mode = ModeMenu
		return m, nil
	}

	res := m.game.Step(frame)
	if !game.HasMove(frame) || !res.State.Finished {
		return m, nil
	}

	// A finished level is unloaded and its score goes to the name prompt.
	lvl := m.game.Level()
	m.logger.Info("level finished", "level", lvl.ID, "moves", res.State.Moves)
	m.unloadLevel()
	m.register = NewRegisterModel(lvl.ID, res.State.Moves)
	m.register.SetSize(m.config.ScreenW, m.config.ScreenH)
	m.mode = ModeRegister
	return m, nil
}

func (m SessionModel) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.register, cmd = m.register.Update(msg)
	if !m.register.Done() {
		return m, cmd
	}

	levelID := m.register.LevelID()
	if m.opts.Store != nil {
		_, err := m.opts.Store.SaveScore(levelID, m.register.Name(), m.register.Moves())
		switch {
		case err == nil:
			m.logger.Info("highscore saved", "level", levelID, "moves", m.register.Moves())
		case errors.Is(err, storage.ErrEmptyName):
			// no name, nothing to save
		default:
			m.logger.Error("saving highscore", "level", levelID, "error", err)
		}
	}

	m.showHighscores(levelID)
	return m, cmd
}

func (m SessionModel) updateHighscores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)
	switch {
	case m.scores.IsQuitting():
		return m.quit()
	case m.scores.IsGoingBack():
		m.mode = ModeMenu
	}
	return m, cmd
}

func (m *SessionModel) showHighscores(levelID string) {
	m.scores = NewScoreboardModel(m.opts.Store, []string{levelID}, m.opts.Top, m.config.ScreenW, m.config.ScreenH)
	m.mode = ModeHighscores
}

func (m *SessionModel) loadLevel(lvl levels.Level) {
	g, err := game.New(lvl)
	if err != nil {
		m.logger.Error("loading level", "level", lvl.ID, "error", err)
		return
	}
	g.SetTheme(m.opts.Theme)
	g.SetLogger(m.logger)
	g.Resize(m.config.ScreenW, m.config.ScreenH)

	m.game = g
	m.menu.SetLoaded(true)
	m.selector.SetLoaded(lvl.ID)
	m.logger.Info("level loaded", "level", lvl.ID, "pack", lvl.Pack)
}

func (m *SessionModel) unloadLevel() {
	m.game = nil
	m.menu.SetLoaded(false)
	m.selector.SetLoaded("")
}

func (m *SessionModel) resize(w, h int) {
	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen.Resize(w, h)
	m.menu.SetSize(w, h)
	m.selector.SetSize(w, h)
	m.register.SetSize(w, h)
	if m.mode == ModeHighscores {
		m.scores.SetSize(w, h)
	}
	if m.game != nil {
		m.game.Resize(w, h)
	}
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.stop()
	return m, tea.Quit
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case ModeGame:
		if m.game == nil {
			return m.menu.View()
		}
		m.game.Render(m.screen)
		return RenderScreen(m.screen)
	case ModeSelector:
		return m.selector.View()
	case ModeRegister:
		return m.register.View()
	case ModeHighscores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}
