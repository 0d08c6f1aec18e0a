package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/maze-collector/internal/core"
	"github.com/vovakirdan/maze-collector/internal/engine"
	"github.com/vovakirdan/maze-collector/internal/levels"
	"github.com/vovakirdan/maze-collector/internal/maze"
	"github.com/vovakirdan/maze-collector/internal/program"
	"github.com/vovakirdan/maze-collector/internal/storage"
)

// PlayModel runs a level's sample programs and animates each run.
//
// A run is executed to completion first; the recorded steps are then
// replayed on the reset grid so the board shows the state the variant
// classified.
type PlayModel struct {
	svc       Services
	cfg       core.RuntimeConfig
	session   *engine.Session
	programs  []string
	progIdx   int
	screen    *core.Screen
	keyMapper *KeyMapper
	help      help.Model

	agent     maze.Agent
	steps     []engine.Step
	cursor    int
	gen       int
	replaying bool
	result    *engine.Result
	err       error

	quitting    bool
	backToMenu  bool
	wantHistory bool
}

// NewPlayModel creates the play screen for one level.
func NewPlayModel(svc Services, lvl levels.Level, cfg core.RuntimeConfig) (PlayModel, error) {
	session, err := engine.NewSession(lvl, svc.Messages, svc.Logger)
	if err != nil {
		return PlayModel{}, err
	}
	h := help.New()
	h.ShowAll = false
	return PlayModel{
		svc:       svc,
		cfg:       cfg,
		session:   session,
		programs:  lvl.ProgramNames(),
		screen:    core.NewScreen(BoardSize(session.Grid)),
		keyMapper: NewKeyMapper(),
		help:      h,
		agent:     maze.NewAgent(session.Grid),
	}, nil
}

// Init implements tea.Model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case StepMsg:
		if msg.Gen != m.gen || !m.replaying {
			return m, nil
		}
		m.advance()
		if m.replaying {
			return m, stepCmd(m.cfg.StepDelay, m.gen)
		}
		return m, nil
	}
	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapPlayKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		return m, nil
	case core.ActionHistory:
		m.wantHistory = true
		return m, nil
	case core.ActionRun:
		return m.startRun()
	case core.ActionSkip:
		for m.replaying {
			m.advance()
		}
		return m, nil
	case core.ActionReset:
		m.reset()
		return m, nil
	case core.ActionNextProgram:
		if len(m.programs) > 0 {
			m.progIdx = (m.progIdx + 1) % len(m.programs)
			m.reset()
		}
	case core.ActionPrevProgram:
		if len(m.programs) > 0 {
			m.progIdx = (m.progIdx - 1 + len(m.programs)) % len(m.programs)
			m.reset()
		}
	}
	return m, nil
}

// reset abandons any replay and puts the board back to its start state.
func (m *PlayModel) reset() {
	m.gen++
	m.session.Grid.Reset()
	m.agent = maze.NewAgent(m.session.Grid)
	m.steps = nil
	m.cursor = 0
	m.replaying = false
	m.result = nil
	m.err = nil
}

// currentProgram returns the selected sample program.
func (m PlayModel) currentProgram() (program.Program, error) {
	if len(m.programs) == 0 {
		return program.Program{}, fmt.Errorf("level %s has no programs", m.session.Level.ID)
	}
	return m.session.Level.Program(m.programs[m.progIdx])
}

func (m PlayModel) startRun() (tea.Model, tea.Cmd) {
	m.reset()

	prog, err := m.currentProgram()
	if err != nil {
		m.err = err
		return m, nil
	}

	res, err := m.svc.Engine.Execute(context.Background(), m.session, prog, nil)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.saveRun(prog.Name, res)

	m.session.Grid.Reset()
	m.agent = maze.NewAgent(m.session.Grid)
	m.result = &res
	m.steps = res.Steps
	m.replaying = len(m.steps) > 0
	if !m.replaying {
		return m, nil
	}
	return m, stepCmd(m.cfg.StepDelay, m.gen)
}

// advance applies the next recorded step to the board.
func (m *PlayModel) advance() {
	if m.cursor >= len(m.steps) {
		m.replaying = false
		return
	}
	st := m.steps[m.cursor]
	if st.Op == program.OpCollect {
		if err := m.session.Grid.Collect(st.Agent.Pos); err != nil {
			m.svc.logger().Warn("replay collect failed", "pos", st.Agent.Pos, "error", err)
		}
	}
	m.agent = st.Agent
	m.cursor++
	if m.cursor >= len(m.steps) {
		m.replaying = false
	}
}

func (m PlayModel) saveRun(programName string, res engine.Result) {
	if m.svc.Store == nil {
		return
	}
	_, err := m.svc.Store.SaveRun(storage.RunRecord{
		LevelID:    m.session.Level.ID,
		Program:    programName,
		Player:     m.cfg.Player,
		Outcome:    res.Outcome,
		Grade:      res.Grade,
		BlocksUsed: res.BlocksUsed,
		Collected:  res.Collected,
	})
	if err != nil {
		m.svc.logger().Warn("could not save run", "level", m.session.Level.ID, "error", err)
	}
}

// View renders the board, the program and the result panel.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	DrawBoard(m.screen, m.session.Grid, m.session.Variant, m.agent)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.session.Level.Name))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  [%s]", m.session.Level.Type)))
	b.WriteString("\n\n")

	board := RenderScreen(m.screen)
	side := m.sidePanel()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "   ", side))
	b.WriteString("\n\n")

	if panel := m.resultPanel(); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keyMapper.keys))
	return b.String()
}

func (m PlayModel) sidePanel() string {
	var b strings.Builder
	if len(m.programs) == 0 {
		return labelStyle.Render("no programs")
	}

	b.WriteString(labelStyle.Render("Program "))
	b.WriteString(activeStyle.Render(m.programs[m.progIdx]))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  (%d/%d)", m.progIdx+1, len(m.programs))))
	b.WriteString("\n")

	prog, err := m.currentProgram()
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		return b.String()
	}
	b.WriteString(labelStyle.Render("Blocks  "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d / %d", prog.BlockCount(), m.session.Level.Ideal)))
	b.WriteString("\n\n")
	b.WriteString(normalStyle.Render(prog.String()))

	if m.replaying {
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("step %d/%d", m.cursor, len(m.steps))))
	}
	return b.String()
}

func (m PlayModel) resultPanel() string {
	if m.result == nil || m.replaying {
		return ""
	}
	res := m.result

	var lines []string
	lines = append(lines, fmt.Sprintf("%s  %s", gradeBadge(res.Grade), labelStyle.Render(res.Outcome.String())))
	if res.HasMessage {
		lines = append(lines, valueStyle.Render(res.Message))
	}
	if res.Hint != "" {
		lines = append(lines, labelStyle.Render(res.Hint))
	}
	if m.session.Variant.IsCollectorLevel() {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("collected %g of %g", res.Collected, res.Potential)))
	}
	return messageStyle.Render(strings.Join(lines, "\n"))
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsHistory returns true if user asked for this level's history.
func (m PlayModel) WantsHistory() bool {
	return m.wantHistory
}

// Result returns the last completed run, if any.
func (m PlayModel) Result() *engine.Result {
	return m.result
}

// LevelID returns the level being played.
func (m PlayModel) LevelID() string {
	return m.session.Level.ID
}
