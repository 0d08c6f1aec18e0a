// Package engine runs a block program against a level session and asks the
// level's variant for the outcome.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/maze"
	"github.com/vovakirdan/maze-collector/internal/program"
)

// MsgFewerBlocks is the hint shown when a non-collector level is solved
// with more blocks than its ideal.
const MsgFewerBlocks = "hint.fewer_blocks"

// DefaultMaxSteps bounds execution when Options.MaxSteps is zero.
const DefaultMaxSteps = 1000

var (
	errBudget  = errors.New("step budget exhausted")
	errStopped = errors.New("terminal outcome recorded")
)

// StopReason says why execution ended.
type StopReason int

const (
	StopCompleted StopReason = iota // program ran to its last block
	StopTerminal                    // the variant recorded an outcome mid-run
	StopCrashed                     // the agent walked into a wall
	StopBudget                      // the step budget ran out
)

// String returns a human-readable stop reason.
func (r StopReason) String() string {
	switch r {
	case StopCompleted:
		return "completed"
	case StopTerminal:
		return "terminal"
	case StopCrashed:
		return "crashed"
	case StopBudget:
		return "step budget"
	default:
		return "unknown"
	}
}

// Step is one executed primitive, recorded for replay.
type Step struct {
	Op      program.Op
	Agent   maze.Agent // agent after the step
	Blocked bool       // move_forward hit a wall
}

// Result is everything the host needs after a run.
type Result struct {
	Outcome    level.Outcome
	Grade      level.Grade
	Message    string
	HasMessage bool
	Hint       string
	BlocksUsed int
	BlockLimit int
	Collected  float64
	Potential  float64
	Steps      []Step
	Stop       StopReason
	HadError   bool
	Agent      maze.Agent
}

// StepFunc observes each executed step.
type StepFunc func(Step)

// Options configures an Engine.
type Options struct {
	MaxSteps int
	Logger   *log.Logger
}

// Engine interprets programs. It is stateless between runs and safe to
// share, but a Session must only run one program at a time.
type Engine struct {
	maxSteps int
	logger   *log.Logger
}

// New creates an engine.
func New(opts Options) *Engine {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Engine{maxSteps: opts.MaxSteps, logger: opts.Logger}
}

// execution is the mutable state of one Execute call.
type execution struct {
	ctx     context.Context
	s       *Session
	run     *level.Run
	agent   maze.Agent
	steps   []Step
	budget  int
	onStep  StepFunc
	checkEv bool
}

// Execute resets the session grid, runs p, and evaluates the outcome.
// Only context cancellation and variant bookkeeping failures are errors;
// crashes and runaway loops are reported through the Result.
func (e *Engine) Execute(ctx context.Context, s *Session, p program.Program, onStep StepFunc) (Result, error) {
	s.Grid.Reset()

	x := &execution{
		ctx:     ctx,
		s:       s,
		run:     level.NewRun(p.BlockCount()),
		agent:   maze.NewAgent(s.Grid),
		budget:  e.maxSteps,
		onStep:  onStep,
		checkEv: !s.Variant.CheckSuccessOnlyAtEnd(),
	}

	e.logger.Debug("run started", "level", s.Level.ID, "program", p.Name, "blocks", x.run.BlocksUsed())

	stop := StopCompleted
	if err := x.exec(p.Blocks); err != nil {
		switch {
		case errors.Is(err, errStopped):
			stop = StopTerminal
		case errors.Is(err, maze.ErrBlocked):
			stop = StopCrashed
			x.run.MarkError()
		case errors.Is(err, errBudget):
			stop = StopBudget
			x.run.MarkError()
		default:
			return Result{}, err
		}
	}

	outcome, err := s.Variant.OnExecutionEnd(x.run)
	if err != nil {
		return Result{}, fmt.Errorf("engine: %w", err)
	}

	res := Result{
		Outcome:    outcome,
		Grade:      s.Variant.Grade(outcome, x.run.HadError()),
		BlocksUsed: x.run.BlocksUsed(),
		BlockLimit: s.Level.Ideal,
		Steps:      x.steps,
		Stop:       stop,
		HadError:   x.run.HadError(),
		Agent:      x.agent,
	}
	res.Message, res.HasMessage = s.Variant.Message(outcome)
	res.Collected, res.Potential = tally(s.Grid)

	if !s.Variant.IsCollectorLevel() && res.Grade.Passed() && res.BlocksUsed > res.BlockLimit && s.Messages != nil {
		res.Hint = s.Messages.Format(MsgFewerBlocks, map[string]any{"limit": res.BlockLimit})
	}

	e.logger.Info("run finished",
		"level", s.Level.ID,
		"program", p.Name,
		"outcome", res.Outcome,
		"grade", res.Grade,
		"stop", res.Stop,
		"steps", len(res.Steps),
	)
	return res, nil
}

func (x *execution) exec(blocks []program.Block) error {
	for _, b := range blocks {
		if err := x.block(b); err != nil {
			return err
		}
	}
	return nil
}

func (x *execution) block(b program.Block) error {
	switch b.Op {
	case program.OpRepeat:
		for i := 0; i < b.Times; i++ {
			if err := x.tick(); err != nil {
				return err
			}
			if err := x.exec(b.Body); err != nil {
				return err
			}
		}
		return nil

	case program.OpWhilePathAhead:
		for {
			if err := x.tick(); err != nil {
				return err
			}
			if !x.agent.PathAhead(x.s.Grid) {
				return nil
			}
			if err := x.exec(b.Body); err != nil {
				return err
			}
		}

	case program.OpIfCollectible:
		if err := x.tick(); err != nil {
			return err
		}
		if cell := x.s.Grid.At(x.agent.Pos); cell.IsCollectible() && cell.CurrentValue() > 0 {
			return x.exec(b.Body)
		}
		return nil

	case program.OpMoveForward:
		if err := x.tick(); err != nil {
			return err
		}
		moveErr := x.agent.MoveForward(x.s.Grid)
		x.record(Step{Op: b.Op, Agent: x.agent, Blocked: moveErr != nil})
		if moveErr != nil {
			return moveErr
		}
		if x.checkEv {
			x.s.Variant.OnMove(x.run, x.agent)
			if x.run.Finished() {
				return errStopped
			}
		}
		return nil

	case program.OpTurnLeft, program.OpTurnRight:
		if err := x.tick(); err != nil {
			return err
		}
		if b.Op == program.OpTurnLeft {
			x.agent.TurnLeft()
		} else {
			x.agent.TurnRight()
		}
		x.record(Step{Op: b.Op, Agent: x.agent})
		return nil

	case program.OpCollect:
		if err := x.tick(); err != nil {
			return err
		}
		if err := x.s.Grid.Collect(x.agent.Pos); err != nil {
			return err
		}
		x.record(Step{Op: b.Op, Agent: x.agent})
		return nil
	}
	return fmt.Errorf("engine: unknown block %q", b.Op)
}

// tick spends one unit of the step budget and honours cancellation.
func (x *execution) tick() error {
	if err := x.ctx.Err(); err != nil {
		return err
	}
	if x.budget <= 0 {
		return errBudget
	}
	x.budget--
	return nil
}

func (x *execution) record(s Step) {
	x.steps = append(x.steps, s)
	if x.onStep != nil {
		x.onStep(s)
	}
}

// tally returns collected and potential totals for display.
func tally(v maze.View) (collected, potential float64) {
	v.ForEachCollectibleCell(func(c maze.Cell) {
		collected += c.OriginalValue() - c.CurrentValue()
		potential += c.OriginalValue()
	})
	return collected, potential
}
