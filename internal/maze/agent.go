package maze

import "errors"

// ErrBlocked is returned when the agent walks into a wall or off the grid.
var ErrBlocked = errors.New("maze: path blocked")

// Agent is the player-controlled walker.
type Agent struct {
	Pos Coord
	Dir Dir
}

// NewAgent places an agent on the grid's start cell.
func NewAgent(g *Grid) Agent {
	return Agent{Pos: g.Start, Dir: g.StartDir}
}

// Ahead returns the coordinate in front of the agent.
func (a Agent) Ahead() Coord {
	return a.Pos.Step(a.Dir)
}

// PathAhead reports whether the cell in front of the agent can be entered.
func (a Agent) PathAhead(g *Grid) bool {
	return g.CanEnter(a.Ahead())
}

// MoveForward advances one cell. The agent does not move when blocked.
func (a *Agent) MoveForward(g *Grid) error {
	next := a.Ahead()
	if !g.CanEnter(next) {
		return ErrBlocked
	}
	a.Pos = next
	return nil
}

// TurnLeft rotates a quarter turn counter-clockwise.
func (a *Agent) TurnLeft() {
	a.Dir = a.Dir.Left()
}

// TurnRight rotates a quarter turn clockwise.
func (a *Agent) TurnRight() {
	a.Dir = a.Dir.Right()
}

// Glyph returns the arrow used to draw the agent.
func (a Agent) Glyph() rune {
	switch a.Dir {
	case DirNorth:
		return '^'
	case DirEast:
		return '>'
	case DirSouth:
		return 'v'
	default:
		return '<'
	}
}
