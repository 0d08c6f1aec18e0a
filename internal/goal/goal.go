// Package goal implements the classic maze level: walk the agent onto the
// finish cell. Success is checked after every move.
package goal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/maze"
	"github.com/vovakirdan/maze-collector/internal/registry"
)

// Kind is the registry key for goal levels.
const Kind = "goal"

// Message keys in the i18n catalogs.
const (
	MsgFinished = "goal.finished"
	MsgCrashed  = "goal.crashed"
)

func init() {
	registry.Register(Kind, func(env level.Env) level.Variant {
		return New(env)
	})
}

// Level is the goal variant of level.Variant.
type Level struct {
	grid     maze.View
	finish   *maze.Coord
	messages level.Formatter
	logger   *log.Logger
}

// finisher is satisfied by grids that know their finish cell.
type finisher interface {
	FinishCell() (maze.Coord, bool)
}

// New builds a goal level. A grid without a finish cell can never be won.
func New(env level.Env) *Level {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Level{grid: env.Grid, messages: env.Messages, logger: logger}
	if f, ok := env.Grid.(finisher); ok {
		if c, ok := f.FinishCell(); ok {
			l.finish = &c
		}
	}
	return l
}

func (l *Level) Kind() string                { return Kind }
func (l *Level) IsCollectorLevel() bool      { return false }
func (l *Level) CheckSuccessOnlyAtEnd() bool { return false }

// HasMessage is false: running out of program without reaching the finish
// is a silent failure.
func (l *Level) HasMessage() bool { return false }

// OnMove records OutcomeFinished the first time the agent stands on the finish.
func (l *Level) OnMove(run level.Telemetry, agent maze.Agent) {
	if l.finish == nil || run.Finished() || agent.Pos != *l.finish {
		return
	}
	if err := run.RecordTerminalOutcome(level.OutcomeFinished); err != nil {
		l.logger.Warn("finish already recorded", "error", err)
	}
}

// OnExecutionEnd fills in the terminal value if OnMove did not.
func (l *Level) OnExecutionEnd(run level.Telemetry) (level.Outcome, error) {
	if run.Finished() {
		return run.Outcome(), nil
	}
	code := level.OutcomeNotFinished
	if run.HadError() {
		code = level.OutcomeCrashed
	}
	if err := run.RecordTerminalOutcome(code); err != nil {
		return run.Outcome(), fmt.Errorf("goal: %w", err)
	}
	return code, nil
}

// Message returns text for finishing and crashing only.
func (l *Level) Message(o level.Outcome) (string, bool) {
	var key string
	switch o {
	case level.OutcomeFinished:
		key = MsgFinished
	case level.OutcomeCrashed:
		key = MsgCrashed
	default:
		return "", false
	}
	if l.messages == nil {
		return key, true
	}
	return l.messages.Format(key, nil), true
}

// Grade passes a finished run and leaves everything else to the generic grader.
func (l *Level) Grade(o level.Outcome, hadError bool) level.Grade {
	if o == level.OutcomeFinished {
		return level.GradePass
	}
	if o == level.OutcomeNotFinished {
		return level.GradeFail
	}
	return level.GenericGrade(hadError)
}

// Draw marks the finish cell.
func (l *Level) Draw(port level.RenderPort) {
	if l.finish != nil {
		port.DrawFinish(*l.finish)
	}
}
