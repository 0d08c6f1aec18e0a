package collector

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/maze"
	"github.com/vovakirdan/maze-collector/internal/registry"
)

// Kind is the registry key for collector levels.
const Kind = "collector"

func init() {
	registry.Register(Kind, func(env level.Env) level.Variant {
		return New(env)
	})
}

// Level is the collector variant of level.Variant.
type Level struct {
	classifier Classifier
	reporter   Reporter
	logger     *log.Logger
}

// New builds a collector level over the host's grid view.
func New(env level.Env) *Level {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cls := Classifier{Grid: env.Grid, Config: env.Config}
	return &Level{
		classifier: cls,
		reporter:   Reporter{Classifier: cls, Messages: env.Messages},
		logger:     logger,
	}
}

// Kind returns "collector".
func (l *Level) Kind() string { return Kind }

// IsCollectorLevel is always true.
func (l *Level) IsCollectorLevel() bool { return true }

// CheckSuccessOnlyAtEnd is always true: collector runs are never judged mid-execution.
func (l *Level) CheckSuccessOnlyAtEnd() bool { return true }

// OnMove does nothing.
func (l *Level) OnMove(level.Telemetry, maze.Agent) {}

// HasMessage is always true; every collector outcome has a message.
func (l *Level) HasMessage() bool { return true }

// Classifier exposes the level's classifier.
func (l *Level) Classifier() Classifier { return l.classifier }

// Classify evaluates the grid against blocksUsed without recording anything.
func (l *Level) Classify(blocksUsed int) level.Outcome {
	return l.classifier.Classify(blocksUsed)
}

// OnExecutionEnd classifies the finished run and records the result as the
// run's terminal value.
func (l *Level) OnExecutionEnd(run level.Telemetry) (level.Outcome, error) {
	code := l.classifier.Classify(run.BlocksUsed())
	if err := run.RecordTerminalOutcome(code); err != nil {
		return run.Outcome(), fmt.Errorf("collector: %w", err)
	}
	l.logger.Debug("run classified",
		"outcome", code,
		"blocks", run.BlocksUsed(),
		"limit", l.classifier.Config.BlockLimit,
		"collected", l.classifier.TotalCollected(),
		"potential", l.classifier.PotentialMax(),
	)
	return code, nil
}

// Message returns the localized message for o. It must be called before
// the grid is reset; see Reporter.Message.
func (l *Level) Message(o level.Outcome) (string, bool) {
	return l.reporter.Message(o)
}

// Grade returns the grade for o.
func (l *Level) Grade(o level.Outcome, hadError bool) level.Grade {
	return l.reporter.Grade(o, hadError)
}

// Draw paints every collectible's remaining count and marks the four
// corners of cells that still hold something.
func (l *Level) Draw(port level.RenderPort) {
	w, h := l.classifier.Grid.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := maze.C(x, y)
			cell := l.classifier.Grid.At(c)
			if !cell.IsCollectible() {
				continue
			}
			port.DrawCount(c, cell.CurrentValue(), cell.OriginalValue())
			if cell.CurrentValue() > 0 {
				for _, corner := range []level.Corner{
					level.CornerTopLeft, level.CornerTopRight,
					level.CornerBottomLeft, level.CornerBottomRight,
				} {
					port.DrawCorner(c, corner)
				}
			}
		}
	}
}
