package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/maze-collector/internal/collector"
	"github.com/vovakirdan/maze-collector/internal/core"
	"github.com/vovakirdan/maze-collector/internal/engine"
	_ "github.com/vovakirdan/maze-collector/internal/goal"
	"github.com/vovakirdan/maze-collector/internal/i18n"
	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/levels"
	"github.com/vovakirdan/maze-collector/internal/maze"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testServices(t *testing.T) Services {
	t.Helper()
	lvls, err := levels.NewBundledLoader().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	return Services{
		Levels:   lvls,
		Engine:   engine.New(engine.Options{}),
		Messages: i18n.MustLoad("en"),
	}
}

func testLevel(t *testing.T, svc Services, id string) levels.Level {
	t.Helper()
	for _, l := range svc.Levels {
		if l.ID == id {
			return l
		}
	}
	t.Fatalf("level %s not bundled", id)
	return levels.Level{}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		play core.Action
		menu core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionRun, core.ActionNone},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRun, core.ActionConfirm},
		{"s", runeKey('s'), core.ActionSkip, core.ActionDown},
		{"r", runeKey('r'), core.ActionReset, core.ActionNone},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextProgram, core.ActionNextProgram},
		{"h", runeKey('h'), core.ActionHistory, core.ActionHistory},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, core.ActionBack},
		{"q", runeKey('q'), core.ActionQuit, core.ActionQuit},
		{"k", runeKey('k'), core.ActionNone, core.ActionUp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapPlayKey(tc.msg); got != tc.play {
				t.Errorf("MapPlayKey = %v, expected %v", got, tc.play)
			}
			if got := km.MapMenuKey(tc.msg); got != tc.menu {
				t.Errorf("MapMenuKey = %v, expected %v", got, tc.menu)
			}
		})
	}
}

type recordingVariant struct {
	level.Variant
	drew bool
}

func (v *recordingVariant) Draw(port level.RenderPort) {
	v.drew = true
	port.DrawCount(maze.C(1, 0), 2, 2)
	port.DrawCorner(maze.C(1, 0), level.CornerTopLeft)
	port.DrawCorner(maze.C(1, 0), level.CornerBottomRight)
	port.DrawFinish(maze.C(2, 0))
}

func TestDrawBoard(t *testing.T) {
	g := maze.NewGrid(3, 1)
	g.Set(maze.C(1, 0), maze.CollectibleCell(2))
	g.Set(maze.C(2, 0), maze.Open())
	agent := maze.Agent{Pos: maze.C(2, 0), Dir: maze.DirEast}

	s := core.NewScreen(1, 1)
	v := &recordingVariant{}
	DrawBoard(s, g, v, agent)

	if !v.drew {
		t.Fatal("variant Draw was not called")
	}
	if s.Width() != 3*cellW || s.Height() != cellH {
		t.Fatalf("screen = %dx%d, expected %dx%d", s.Width(), s.Height(), 3*cellW, cellH)
	}

	checks := []struct {
		name  string
		x, y  int
		r     rune
		color core.Color
	}{
		{"wall fill", 0, 0, '█', core.ColorWall},
		{"count", cellW + 3, 1, '2', core.ColorCount},
		{"top-left corner", cellW, 0, '╭', core.ColorCorner},
		{"bottom-right corner", 2*cellW - 1, cellH - 1, '╯', core.ColorCorner},
		{"finish", 2*cellW + 3, 1, 'F', core.ColorFinish},
		{"agent", 2*cellW + 1, 1, '>', core.ColorAgent},
	}
	for _, c := range checks {
		got := s.GetCell(c.x, c.y)
		if got.Rune != c.r || got.Color != c.color {
			t.Errorf("%s at (%d,%d) = %q/%d, expected %q/%d", c.name, c.x, c.y, got.Rune, got.Color, c.r, c.color)
		}
	}
}

func TestBoardPainterAnomaly(t *testing.T) {
	s := core.NewScreen(cellW, cellH)
	p := boardPainter{screen: s}

	p.DrawCount(maze.C(0, 0), -1, 2)
	if got := s.GetCell(3, 1); got.Color != core.ColorAnomaly {
		t.Errorf("negative count color = %d, expected anomaly", got.Color)
	}

	p.DrawCount(maze.C(0, 0), 0, 2)
	if got := s.GetCell(3, 1); got.Color != core.ColorEmptied {
		t.Errorf("emptied count color = %d, expected emptied", got.Color)
	}
}

func TestPlayModelRunAndReplay(t *testing.T) {
	svc := testServices(t)
	cfg := core.DefaultConfig()

	m, err := NewPlayModel(svc, testLevel(t, svc, "c01"), cfg)
	if err != nil {
		t.Fatalf("NewPlayModel: %v", err)
	}
	if m.programs[m.progIdx] != "all" {
		t.Fatalf("first program = %q, expected all", m.programs[m.progIdx])
	}

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = model.(PlayModel)
	if cmd == nil || !m.replaying {
		t.Fatal("run should start a replay")
	}
	if m.Result() == nil {
		t.Fatal("result should be available as soon as the run executes")
	}

	// Replay starts from the reset board.
	if m.session.Grid.At(maze.C(2, 1)).CurrentValue() != 2 {
		t.Error("replay should start from a reset grid")
	}
	// The message was captured before the reset and keeps the real count.
	if msg := m.Result().Message; msg != "Congratulations! You collected all 5." {
		t.Errorf("Message after reset = %q", msg)
	}

	// Stale ticks from another generation are ignored.
	model, _ = m.Update(StepMsg{Gen: m.gen + 1})
	m = model.(PlayModel)
	if m.cursor != 0 {
		t.Errorf("stale tick advanced replay to %d", m.cursor)
	}

	model, _ = m.Update(StepMsg{Gen: m.gen})
	m = model.(PlayModel)
	if m.cursor != 1 {
		t.Errorf("cursor after one tick = %d, expected 1", m.cursor)
	}

	model, _ = m.Update(runeKey('s'))
	m = model.(PlayModel)
	if m.replaying {
		t.Fatal("skip should finish the replay")
	}

	res := m.Result()
	if res.Outcome != level.OutcomeCollectedEverything || res.Grade != level.GradePass {
		t.Errorf("result = %v/%v, expected collected_everything/pass", res.Outcome, res.Grade)
	}
	if m.session.Grid.At(maze.C(2, 1)).CurrentValue() != 0 || m.session.Grid.At(maze.C(4, 1)).CurrentValue() != 0 {
		t.Error("replayed board should end emptied")
	}

	view := m.View()
	if !strings.Contains(view, "PASS") {
		t.Errorf("view should show the grade badge, got:\n%s", view)
	}
}

func TestPlayModelProgramCycling(t *testing.T) {
	svc := testServices(t)
	m, err := NewPlayModel(svc, testLevel(t, svc, "c01"), core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewPlayModel: %v", err)
	}
	n := len(m.programs)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = model.(PlayModel)
	if m.progIdx != n-1 {
		t.Errorf("shift+tab from first program = %d, expected %d", m.progIdx, n-1)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(PlayModel)
	if m.progIdx != 0 {
		t.Errorf("tab should wrap to 0, got %d", m.progIdx)
	}
}

func TestPlayModelReset(t *testing.T) {
	svc := testServices(t)
	m, err := NewPlayModel(svc, testLevel(t, svc, "c01"), core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewPlayModel: %v", err)
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = model.(PlayModel)
	model, _ = m.Update(runeKey('s'))
	m = model.(PlayModel)
	gen := m.gen

	model, _ = m.Update(runeKey('r'))
	m = model.(PlayModel)
	if m.Result() != nil || m.replaying {
		t.Error("reset should clear the result")
	}
	if m.gen == gen {
		t.Error("reset should invalidate pending ticks")
	}
	if !m.session.Grid.Equal(m.session.Level.Grid) {
		t.Error("reset should restore the starting board")
	}
}

func TestSessionModelNavigation(t *testing.T) {
	svc := testServices(t)
	cfg := core.DefaultConfig()
	m := NewSessionModel(svc, cfg)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(SessionModel)
	if m.screen != screenPlay || m.play == nil {
		t.Fatalf("enter on menu should open the play screen, screen=%d", m.screen)
	}

	model, _ = m.Update(runeKey('h'))
	m = model.(SessionModel)
	if m.screen != screenHistory {
		t.Fatalf("h should open history, screen=%d", m.screen)
	}
	if m.history.Rows() != 0 {
		t.Errorf("history without a store should be empty, got %d rows", m.history.Rows())
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(SessionModel)
	if m.screen != screenPlay {
		t.Fatalf("esc in history should return to play, screen=%d", m.screen)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(SessionModel)
	if m.screen != screenMenu {
		t.Fatalf("esc in play should return to menu, screen=%d", m.screen)
	}

	model, cmd := m.Update(runeKey('q'))
	m = model.(SessionModel)
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
}

func TestMenuModelCursorBounds(t *testing.T) {
	svc := testServices(t)
	m := NewMenuModel(svc, core.DefaultConfig())

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor moved above first item: %d", m.cursor)
	}

	for range len(svc.Levels) + 2 {
		model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = model.(MenuModel)
	}
	if m.cursor != len(svc.Levels)-1 {
		t.Errorf("cursor = %d, expected clamp at %d", m.cursor, len(svc.Levels)-1)
	}

	if !strings.Contains(m.View(), "First Harvest") {
		t.Error("menu should list level names")
	}
}
