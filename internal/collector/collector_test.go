package collector

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/maze"
	"github.com/vovakirdan/maze-collector/internal/registry"
)

// pileGrid lays collectibles in a single row; currents default to originals.
func pileGrid(originals []float64, currents []float64) *maze.Grid {
	g := maze.NewGrid(len(originals)+2, 1)
	for i, o := range originals {
		cell := maze.CollectibleCell(o)
		if currents != nil {
			cell.Current = currents[i]
		}
		g.Set(maze.C(i+1, 0), cell)
	}
	return g
}

func intPtr(v int) *int { return &v }

// echoFormatter renders "key{name=value,...}" with sorted params.
type echoFormatter struct{}

func (echoFormatter) Format(key string, params map[string]any) string {
	if len(params) == 0 {
		return key
	}
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%v", k, params[k])
	}
	return key + "{" + strings.Join(parts, ",") + "}"
}

func TestClassifyScenarios(t *testing.T) {
	originals := []float64{2, 3, 5}

	tests := []struct {
		name       string
		currents   []float64
		blocksUsed int
		config     level.Config
		want       level.Outcome
		grade      level.Grade
		message    string
	}{
		{
			name:       "A everything collected",
			currents:   []float64{0, 0, 0},
			blocksUsed: 10,
			config:     level.Config{BlockLimit: 15, MinCollected: intPtr(5)},
			want:       level.OutcomeCollectedEverything,
			grade:      level.GradePass,
			message:    MsgCollectedEverything + "{count=10}",
		},
		{
			name:       "B nothing collected",
			currents:   []float64{2, 3, 5},
			blocksUsed: 5,
			config:     level.Config{BlockLimit: 15, MinCollected: intPtr(5)},
			want:       level.OutcomeCollectedNothing,
			grade:      level.GradeFail,
			message:    MsgCollectedNothing,
		},
		{
			name:       "C over block limit",
			currents:   []float64{0, 3, 5},
			blocksUsed: 20,
			config:     level.Config{BlockLimit: 15},
			want:       level.OutcomeTooManyBlocks,
			grade:      level.GradeFail,
			message:    MsgTooManyBlocks + "{limit=15}",
		},
		{
			name:       "D below minimum",
			currents:   []float64{0, 0, 5},
			blocksUsed: 10,
			config:     level.Config{BlockLimit: 15, MinCollected: intPtr(8)},
			want:       level.OutcomeCollectedNotEnough,
			grade:      level.GradeFail,
			message:    MsgCollectedNotEnough + "{goal=8}",
		},
		{
			name:       "E negative balance beats block count",
			currents:   []float64{-1, 3, 5},
			blocksUsed: 99,
			config:     level.Config{BlockLimit: 15},
			want:       level.OutcomeCollectedTooMany,
			grade:      level.GradeFail,
			message:    MsgCollectedTooMany,
		},
		{
			name:       "NaN balance",
			currents:   []float64{math.NaN(), 3, 5},
			blocksUsed: 1,
			config:     level.Config{BlockLimit: 15},
			want:       level.OutcomeCollectedTooMany,
			grade:      level.GradeFail,
			message:    MsgCollectedTooMany,
		},
		{
			name:       "some without minimum",
			currents:   []float64{0, 3, 5},
			blocksUsed: 10,
			config:     level.Config{BlockLimit: 15},
			want:       level.OutcomeCollectedSome,
			grade:      level.GradeAcceptable,
			message:    MsgCollectedSome + "{count=2}",
		},
		{
			name:       "some meeting minimum exactly",
			currents:   []float64{0, 0, 5},
			blocksUsed: 15,
			config:     level.Config{BlockLimit: 15, MinCollected: intPtr(5)},
			want:       level.OutcomeCollectedSome,
			grade:      level.GradeAcceptable,
			message:    MsgCollectedSome + "{count=5}",
		},
		{
			name:       "everything beats unreachable minimum",
			currents:   []float64{0, 0, 0},
			blocksUsed: 10,
			config:     level.Config{BlockLimit: 15, MinCollected: intPtr(20)},
			want:       level.OutcomeCollectedEverything,
			grade:      level.GradePass,
			message:    MsgCollectedEverything + "{count=10}",
		},
		{
			name:       "nothing beats block limit",
			currents:   []float64{2, 3, 5},
			blocksUsed: 40,
			config:     level.Config{BlockLimit: 15, MinCollected: intPtr(5)},
			want:       level.OutcomeCollectedNothing,
			grade:      level.GradeFail,
			message:    MsgCollectedNothing,
		},
		{
			name:       "everything but over limit",
			currents:   []float64{0, 0, 0},
			blocksUsed: 16,
			config:     level.Config{BlockLimit: 15},
			want:       level.OutcomeTooManyBlocks,
			grade:      level.GradeFail,
			message:    MsgTooManyBlocks + "{limit=15}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := pileGrid(originals, tc.currents)
			lvl := New(level.Env{Grid: g, Config: tc.config, Messages: echoFormatter{}})

			got := lvl.Classify(tc.blocksUsed)
			if got != tc.want {
				t.Fatalf("Classify(%d) = %v, expected %v", tc.blocksUsed, got, tc.want)
			}
			if grade := lvl.Grade(got, false); grade != tc.grade {
				t.Errorf("Grade(%v) = %v, expected %v", got, grade, tc.grade)
			}
			msg, ok := lvl.Message(got)
			if !ok {
				t.Fatalf("Message(%v) reported no message", got)
			}
			if msg != tc.message {
				t.Errorf("Message(%v) = %q, expected %q", got, msg, tc.message)
			}
		})
	}
}

func TestClassifyEmptyGridIsNothing(t *testing.T) {
	// total == potential == 0; collected-nothing wins over everything.
	g := maze.NewGrid(3, 3)
	cls := Classifier{Grid: g, Config: level.Config{BlockLimit: 5}}

	if cls.PotentialMax() != 0 || cls.TotalCollected() != 0 {
		t.Fatalf("empty grid totals = %v/%v", cls.TotalCollected(), cls.PotentialMax())
	}
	if got := cls.Classify(1); got != level.OutcomeCollectedNothing {
		t.Errorf("Classify on empty grid = %v, expected collected_nothing", got)
	}
}

func TestClassifyNetZeroAnomalyIsNothing(t *testing.T) {
	// One pile over-collected, another somehow grown: the balances net to
	// zero, and the nothing check runs before the anomaly check.
	g := pileGrid([]float64{2, 3}, []float64{-1, 6})
	cls := Classifier{Grid: g, Config: level.Config{BlockLimit: 5}}

	if !cls.CollectedTooMany() {
		t.Fatal("grid should be anomalous")
	}
	if got := cls.Classify(1); got != level.OutcomeCollectedNothing {
		t.Errorf("Classify = %v, expected collected_nothing", got)
	}
}

func TestClassifyIsReadOnlyAndIdempotent(t *testing.T) {
	g := pileGrid([]float64{2, 3, 5}, []float64{0, 3, 5})
	before := g.Clone()
	cls := Classifier{Grid: g, Config: level.Config{BlockLimit: 15}}

	first := cls.Classify(4)
	for i := 0; i < 3; i++ {
		if got := cls.Classify(4); got != first {
			t.Fatalf("call %d returned %v, first was %v", i+2, got, first)
		}
	}
	if !g.Equal(before) {
		t.Error("Classify mutated the grid")
	}
}

func TestClassifyTracksLiveGrid(t *testing.T) {
	g := pileGrid([]float64{2, 3}, nil)
	cls := Classifier{Grid: g, Config: level.Config{BlockLimit: 10}}

	if got := cls.Classify(1); got != level.OutcomeCollectedNothing {
		t.Fatalf("before collecting: %v", got)
	}

	prev := cls.TotalCollected()
	for _, c := range []maze.Coord{maze.C(1, 0), maze.C(1, 0), maze.C(2, 0)} {
		g.Collect(c)
		total := cls.TotalCollected()
		if total < prev {
			t.Errorf("total decreased from %v to %v", prev, total)
		}
		prev = total
	}
	if got := cls.Classify(1); got != level.OutcomeCollectedSome {
		t.Errorf("after partial collection: %v", got)
	}

	g.Collect(maze.C(2, 0))
	g.Collect(maze.C(2, 0))
	if got := cls.Classify(1); got != level.OutcomeCollectedEverything {
		t.Errorf("after collecting everything: %v", got)
	}
}

func TestReporterTotality(t *testing.T) {
	cls := Classifier{Grid: pileGrid([]float64{1}, nil), Config: level.Config{BlockLimit: 3, MinCollected: intPtr(1)}}
	rep := Reporter{Classifier: cls, Messages: echoFormatter{}}

	collectorCodes := []level.Outcome{
		level.OutcomeCollectedNothing,
		level.OutcomeCollectedTooMany,
		level.OutcomeTooManyBlocks,
		level.OutcomeCollectedEverything,
		level.OutcomeCollectedNotEnough,
		level.OutcomeCollectedSome,
	}
	for _, o := range collectorCodes {
		msg, ok := rep.Message(o)
		if !ok || msg == "" {
			t.Errorf("%v has no message", o)
		}
		// hadError must not matter for codes in the table
		if rep.Grade(o, true) != rep.Grade(o, false) {
			t.Errorf("%v grade depends on hadError", o)
		}
	}

	for _, o := range []level.Outcome{level.OutcomeUnset, level.OutcomeFinished, level.OutcomeCrashed} {
		if msg, ok := rep.Message(o); ok || msg != "" {
			t.Errorf("%v should have no message, got %q", o, msg)
		}
		if rep.Grade(o, false) != level.GenericGrade(false) || rep.Grade(o, true) != level.GenericGrade(true) {
			t.Errorf("%v should fall back to the generic grade", o)
		}
	}
}

func TestReporterNilFormatter(t *testing.T) {
	rep := Reporter{Classifier: Classifier{Grid: maze.NewGrid(1, 1)}}
	if msg, ok := rep.Message(level.OutcomeCollectedNothing); !ok || msg != MsgCollectedNothing {
		t.Errorf("nil formatter should return the key, got %q", msg)
	}
}

func TestOnExecutionEndWriteOnce(t *testing.T) {
	g := pileGrid([]float64{2}, []float64{0})
	lvl := New(level.Env{Grid: g, Config: level.Config{BlockLimit: 4}})

	run := level.NewRun(3)
	got, err := lvl.OnExecutionEnd(run)
	if err != nil {
		t.Fatalf("OnExecutionEnd: %v", err)
	}
	if got != level.OutcomeCollectedEverything || run.Outcome() != got {
		t.Fatalf("recorded %v, returned %v", run.Outcome(), got)
	}

	// The grid changes but the run already has its value.
	g.Collect(maze.C(1, 0))
	again, err := lvl.OnExecutionEnd(run)
	if !errors.Is(err, level.ErrTerminalSet) {
		t.Fatalf("second OnExecutionEnd error = %v, expected ErrTerminalSet", err)
	}
	if again != level.OutcomeCollectedEverything || run.Outcome() != level.OutcomeCollectedEverything {
		t.Errorf("terminal value changed to %v / %v", again, run.Outcome())
	}

	// A fresh run sees the new state.
	next := level.NewRun(3)
	if got, _ := lvl.OnExecutionEnd(next); got != level.OutcomeCollectedTooMany {
		t.Errorf("new run classified %v, expected collected_too_many", got)
	}
}

// countingTelemetry records what a variant asks of its run.
type countingTelemetry struct {
	blocks   int
	recorded []level.Outcome
	failWith error
}

func (c *countingTelemetry) BlocksUsed() int { return c.blocks }
func (c *countingTelemetry) HadError() bool  { return false }
func (c *countingTelemetry) Finished() bool  { return len(c.recorded) > 0 }

func (c *countingTelemetry) RecordTerminalOutcome(o level.Outcome) error {
	if c.failWith != nil {
		return c.failWith
	}
	c.recorded = append(c.recorded, o)
	return nil
}

func (c *countingTelemetry) Outcome() level.Outcome {
	if len(c.recorded) == 0 {
		return level.OutcomeUnset
	}
	return c.recorded[len(c.recorded)-1]
}

func TestOnExecutionEndUsesTelemetry(t *testing.T) {
	g := pileGrid([]float64{2, 3}, []float64{0, 0})
	lvl := New(level.Env{Grid: g, Config: level.Config{BlockLimit: 4}})

	tel := &countingTelemetry{blocks: 9}
	got, err := lvl.OnExecutionEnd(tel)
	if err != nil {
		t.Fatalf("OnExecutionEnd: %v", err)
	}
	if got != level.OutcomeTooManyBlocks {
		t.Errorf("outcome = %v, expected too_many_blocks from reported block count", got)
	}
	if diff := cmp.Diff([]level.Outcome{level.OutcomeTooManyBlocks}, tel.recorded); diff != "" {
		t.Errorf("recorded outcomes mismatch (-want +got):\n%s", diff)
	}

	lvl.OnMove(tel, maze.Agent{})
	if len(tel.recorded) != 1 {
		t.Error("OnMove must not record anything")
	}

	refused := &countingTelemetry{blocks: 1, failWith: level.ErrTerminalSet}
	if _, err := lvl.OnExecutionEnd(refused); !errors.Is(err, level.ErrTerminalSet) {
		t.Errorf("expected ErrTerminalSet to propagate, got %v", err)
	}
}

func TestLevelCapabilities(t *testing.T) {
	v, err := registry.Create(Kind, level.Env{Grid: maze.NewGrid(1, 1)})
	if err != nil {
		t.Fatalf("registry.Create: %v", err)
	}
	if v.Kind() != Kind || !v.IsCollectorLevel() || !v.CheckSuccessOnlyAtEnd() || !v.HasMessage() {
		t.Errorf("unexpected capabilities: kind=%s collector=%v atEnd=%v msg=%v",
			v.Kind(), v.IsCollectorLevel(), v.CheckSuccessOnlyAtEnd(), v.HasMessage())
	}

	run := level.NewRun(1)
	v.OnMove(run, maze.Agent{})
	if run.Finished() {
		t.Error("OnMove must not record anything")
	}
}

type paintCall struct {
	Op        string
	At        maze.Coord
	Remaining float64
	Corner    level.Corner
}

type recordingPort struct {
	calls []paintCall
}

func (p *recordingPort) DrawCount(at maze.Coord, remaining, _ float64) {
	p.calls = append(p.calls, paintCall{Op: "count", At: at, Remaining: remaining})
}

func (p *recordingPort) DrawCorner(at maze.Coord, corner level.Corner) {
	p.calls = append(p.calls, paintCall{Op: "corner", At: at, Corner: corner})
}

func (p *recordingPort) DrawFinish(at maze.Coord) {
	p.calls = append(p.calls, paintCall{Op: "finish", At: at})
}

func TestDraw(t *testing.T) {
	g := pileGrid([]float64{2, 1}, []float64{2, 0})
	lvl := New(level.Env{Grid: g, Config: level.Config{BlockLimit: 4}})

	port := &recordingPort{}
	lvl.Draw(port)

	want := []paintCall{
		{Op: "count", At: maze.C(1, 0), Remaining: 2},
		{Op: "corner", At: maze.C(1, 0), Corner: level.CornerTopLeft},
		{Op: "corner", At: maze.C(1, 0), Corner: level.CornerTopRight},
		{Op: "corner", At: maze.C(1, 0), Corner: level.CornerBottomLeft},
		{Op: "corner", At: maze.C(1, 0), Corner: level.CornerBottomRight},
		{Op: "count", At: maze.C(2, 0), Remaining: 0},
	}
	if diff := cmp.Diff(want, port.calls); diff != "" {
		t.Errorf("Draw calls mismatch (-want +got):\n%s", diff)
	}
}
