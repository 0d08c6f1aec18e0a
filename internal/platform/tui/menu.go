package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maze-collector/internal/core"
	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/levels"
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	levels      []levels.Level
	progress    map[string]level.Grade
	cursor      int
	width       int
	height      int
	keyMapper   *KeyMapper
	help        help.Model
	quitting    bool
	selected    *levels.Level // Set when user selects a level
	wantHistory bool
}

// NewMenuModel creates a new menu model. Progress comes from the run store;
// a nil store shows every level as unplayed.
func NewMenuModel(svc Services, cfg core.RuntimeConfig) MenuModel {
	progress := map[string]level.Grade{}
	if svc.Store != nil {
		p, err := svc.Store.PassedLevels()
		if err != nil {
			svc.logger().Warn("could not load progress", "error", err)
		} else {
			progress = p
		}
	}

	return MenuModel{
		levels:    svc.Levels,
		progress:  progress,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapMenuKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case core.ActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}

	case core.ActionConfirm:
		if len(m.levels) > 0 {
			selected := m.levels[m.cursor]
			m.selected = &selected
		}

	case core.ActionHistory:
		if len(m.levels) > 0 {
			m.wantHistory = true
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  C O L L E C T O R  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(labelStyle.Render("Select a level"), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(errorStyle.Render("no levels found"), m.width))
		b.WriteString("\n")
	}

	for i, lvl := range m.levels {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}

		mark := labelStyle.Render("   -  ")
		if g, ok := m.progress[lvl.ID]; ok {
			mark = " " + gradeBadge(g) + " "
		}

		line := fmt.Sprintf("%s%s %s", cursor, style.Render(lvl.Name), labelStyle.Render("("+lvl.Type+")"))
		b.WriteString(centerText(line+mark, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(menuHelp{m.keyMapper.keys}), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *levels.Level {
	return m.selected
}

// Current returns the level under the cursor.
func (m MenuModel) Current() (levels.Level, bool) {
	if len(m.levels) == 0 {
		return levels.Level{}, false
	}
	return m.levels[m.cursor], true
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the history screen.
func (m MenuModel) WantsHistory() bool {
	return m.wantHistory
}
