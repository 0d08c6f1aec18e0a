package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/maze-collector/internal/core"
	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/maze"
)

// Board cell geometry in screen characters.
const (
	cellW = 5
	cellH = 3
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorFloor:   lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	core.ColorAgent:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
	core.ColorCount:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	core.ColorCorner:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	core.ColorEmptied: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorAnomaly: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorFinish:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
}

// Text styles for the HUD and menus.
var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	normalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	messageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("255")).
			Padding(0, 1)
	gradeStyles = map[level.Grade]lipgloss.Style{
		level.GradeFail:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		level.GradeAcceptable: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		level.GradePass:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
	}
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

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

// BoardSize returns the screen size needed to draw a grid.
func BoardSize(g *maze.Grid) (w, h int) {
	gw, gh := g.Size()
	return gw * cellW, gh * cellH
}

// boardPainter implements level.RenderPort on top of a screen buffer.
type boardPainter struct {
	screen *core.Screen
}

var _ level.RenderPort = boardPainter{}

func (p boardPainter) origin(at maze.Coord) (int, int) {
	return at.X * cellW, at.Y * cellH
}

// DrawCount writes the remaining quantity in the cell's right half.
func (p boardPainter) DrawCount(at maze.Coord, remaining, original float64) {
	x, y := p.origin(at)
	color := core.ColorCount
	switch {
	case math.IsNaN(remaining) || remaining < 0:
		color = core.ColorAnomaly
	case remaining == 0 && original > 0:
		color = core.ColorEmptied
	}
	p.screen.SetColored(x+3, y+1, maze.CountGlyph(remaining), color)
}

// DrawCorner marks one corner of a cell.
func (p boardPainter) DrawCorner(at maze.Coord, corner level.Corner) {
	x, y := p.origin(at)
	switch corner {
	case level.CornerTopLeft:
		p.screen.SetColored(x, y, '╭', core.ColorCorner)
	case level.CornerTopRight:
		p.screen.SetColored(x+cellW-1, y, '╮', core.ColorCorner)
	case level.CornerBottomLeft:
		p.screen.SetColored(x, y+cellH-1, '╰', core.ColorCorner)
	case level.CornerBottomRight:
		p.screen.SetColored(x+cellW-1, y+cellH-1, '╯', core.ColorCorner)
	}
}

// DrawFinish flags the finish cell.
func (p boardPainter) DrawFinish(at maze.Coord) {
	x, y := p.origin(at)
	p.screen.SetColored(x+3, y+1, 'F', core.ColorFinish)
}

// DrawBoard paints the grid, the variant's decorations and the agent.
// The variant only ever sees the painter, never the screen.
func DrawBoard(s *core.Screen, g *maze.Grid, v level.Variant, agent maze.Agent) {
	w, h := BoardSize(g)
	s.Resize(w, h)
	s.Clear()

	gw, gh := g.Size()
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			r := core.NewRect(x*cellW, y*cellH, cellW, cellH)
			if g.At(maze.C(x, y)).Kind == maze.KindWall {
				s.DrawRect(r, '█', core.ColorWall)
				continue
			}
			s.SetColored(r.X+2, r.Y+1, '·', core.ColorFloor)
		}
	}

	if v != nil {
		v.Draw(boardPainter{screen: s})
	}

	x, y := agent.Pos.X*cellW, agent.Pos.Y*cellH
	s.SetColored(x+1, y+1, agent.Glyph(), core.ColorAgent)
}

// gradeBadge renders a grade with its color.
func gradeBadge(g level.Grade) string {
	style, ok := gradeStyles[g]
	if !ok {
		style = valueStyle
	}
	return style.Render(strings.ToUpper(g.String()))
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	tw := lipgloss.Width(text)
	if tw >= width {
		return text
	}
	return strings.Repeat(" ", (width-tw)/2) + text
}
