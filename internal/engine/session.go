package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/levels"
	"github.com/vovakirdan/maze-collector/internal/maze"
	"github.com/vovakirdan/maze-collector/internal/registry"
)

// Session is one player's time on one level. It owns the grid the agent
// mutates; the variant only sees it through maze.View.
type Session struct {
	Level    levels.Level
	Grid     *maze.Grid
	Variant  level.Variant
	Messages level.Formatter
}

// NewSession builds the level's variant over a fresh copy of its grid.
func NewSession(lvl levels.Level, messages level.Formatter, logger *log.Logger) (*Session, error) {
	grid := lvl.NewGrid()
	variant, err := registry.Create(lvl.Type, level.Env{
		Grid:     grid,
		Config:   lvl.Config(),
		Messages: messages,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: level %s: %w", lvl.ID, err)
	}
	return &Session{
		Level:    lvl,
		Grid:     grid,
		Variant:  variant,
		Messages: messages,
	}, nil
}
