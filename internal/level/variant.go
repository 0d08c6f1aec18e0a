package level

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-collector/internal/maze"
)

// Config is the immutable per-level configuration shared by all variants.
type Config struct {
	// BlockLimit is the level's ideal block count. Collector levels treat it
	// as a hard limit; other variants only use it for hints.
	BlockLimit int
	// MinCollected is an optional secondary threshold; nil means not enforced.
	MinCollected *int
}

// Formatter renders a localized message template.
type Formatter interface {
	Format(key string, params map[string]any) string
}

// Corner identifies one of the four corners of a cell.
type Corner uint8

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// RenderPort is the drawing surface handed to a variant's Draw hook.
// Variants never reach for rendering state on their own.
type RenderPort interface {
	DrawCount(at maze.Coord, remaining, original float64)
	DrawCorner(at maze.Coord, corner Corner)
	DrawFinish(at maze.Coord)
}

// Env is everything a variant is built from.
type Env struct {
	Grid     maze.View // read-only view of the host-owned grid
	Config   Config
	Messages Formatter
	Logger   *log.Logger
}

// Variant is the capability interface every level type implements.
type Variant interface {
	// Kind is the registry key, e.g. "collector".
	Kind() string

	// IsCollectorLevel enables block-limit-is-a-hard-requirement semantics.
	IsCollectorLevel() bool

	// CheckSuccessOnlyAtEnd tells the engine to skip OnMove entirely.
	CheckSuccessOnlyAtEnd() bool

	// OnMove is called after every agent move when CheckSuccessOnlyAtEnd is false.
	OnMove(run Telemetry, agent maze.Agent)

	// OnExecutionEnd is called exactly once when execution stops.
	OnExecutionEnd(run Telemetry) (Outcome, error)

	// HasMessage reports whether runs of this level always produce a message.
	HasMessage() bool

	// Message returns the localized message for a terminal value.
	Message(o Outcome) (string, bool)

	// Grade maps a terminal value to a grade.
	Grade(o Outcome, hadError bool) Grade

	// Draw paints variant-specific decorations.
	Draw(port RenderPort)
}
