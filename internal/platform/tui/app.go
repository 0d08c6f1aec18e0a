package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-collector/internal/core"
	"github.com/vovakirdan/maze-collector/internal/engine"
	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/levels"
	"github.com/vovakirdan/maze-collector/internal/storage"
)

// Services are the collaborators shared by every screen and session.
type Services struct {
	Levels   []levels.Level
	Engine   *engine.Engine
	Messages level.Formatter
	Store    *storage.Store // optional
	Logger   *log.Logger    // optional
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenHistory
)

// SessionModel manages the full flow: menu -> play -> history -> back.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	svc      Services
	config   core.RuntimeConfig
	screen   screen
	prev     screen
	menu     MenuModel
	play     *PlayModel
	history  *HistoryModel
	err      error
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(svc Services, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		svc:    svc,
		config: cfg,
		menu:   NewMenuModel(svc, cfg),
	}
}

// NewSessionModelAt creates a session that opens directly on one level.
func NewSessionModelAt(svc Services, cfg core.RuntimeConfig, lvl levels.Level) (SessionModel, error) {
	m := NewSessionModel(svc, cfg)
	play, err := NewPlayModel(svc, lvl, cfg)
	if err != nil {
		return m, err
	}
	m.play = &play
	m.screen = screenPlay
	return m, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		lvl, _ := m.menu.Current()
		m.menu.wantHistory = false
		m.openHistory(lvl.ID, screenMenu)
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		m.menu.selected = nil
		play, err := NewPlayModel(m.svc, *selected, m.config)
		if err != nil {
			m.err = err
			m.svc.logger().Error("cannot start level", "level", selected.ID, "error", err)
			return m, nil
		}
		m.err = nil
		m.play = &play
		m.screen = screenPlay
		return m, play.Init()
	}

	return m, cmd
}

func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(PlayModel); ok {
		m.play = &playModel
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.WantsHistory() {
		m.play.wantHistory = false
		m.openHistory(m.play.LevelID(), screenPlay)
		return m, nil
	}

	if m.play.BackToMenu() {
		m.play = nil
		// Rebuild so progress marks include the runs just made
		m.menu = NewMenuModel(m.svc, m.config)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = &historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		m.history = nil
		m.screen = m.prev
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) openHistory(levelID string, from screen) {
	h := NewHistoryModel(m.svc.Store, m.svc.Levels, levelID, m.config.ScreenW, m.config.ScreenH)
	m.history = &h
	m.prev = from
	m.screen = screenHistory
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenHistory:
		return m.history.View()
	}

	v := m.menu.View()
	if m.err != nil {
		v += "\n" + errorStyle.Render(m.err.Error())
	}
	return v
}

// Run starts the Bubble Tea program on the level menu, or directly on
// lvl when it is non-nil.
func Run(svc Services, cfg core.RuntimeConfig, lvl *levels.Level) error {
	model := NewSessionModel(svc, cfg)
	if lvl != nil {
		var err error
		model, err = NewSessionModelAt(svc, cfg, *lvl)
		if err != nil {
			return err
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
