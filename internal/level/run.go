package level

// Telemetry is the view of a run a variant works through: what the
// program cost, whether execution failed, and the write-once terminal value.
type Telemetry interface {
	BlocksUsed() int
	HadError() bool
	RecordTerminalOutcome(o Outcome) error
	Outcome() Outcome
	Finished() bool
}

// Run is the per-attempt context. A new Run is created for every execution
// and discarded when the next one starts; there is no reset.
type Run struct {
	blocksUsed int
	hadError   bool
	terminal   Terminal[Outcome]
}

// NewRun creates the context for one execution of a program.
func NewRun(blocksUsed int) *Run {
	return &Run{blocksUsed: blocksUsed}
}

// BlocksUsed returns the number of blocks in the executed program.
func (r *Run) BlocksUsed() int {
	return r.blocksUsed
}

// RecordTerminalOutcome stores the run's single terminal value.
func (r *Run) RecordTerminalOutcome(o Outcome) error {
	return r.terminal.Set(o)
}

// Outcome returns the recorded terminal value, or OutcomeUnset.
func (r *Run) Outcome() Outcome {
	o, _ := r.terminal.Get()
	return o
}

// Finished reports whether a terminal value has been recorded.
func (r *Run) Finished() bool {
	return r.terminal.IsSet()
}

// MarkError flags that execution hit an error (crash, step budget).
func (r *Run) MarkError() {
	r.hadError = true
}

// HadError reports whether execution hit an error.
func (r *Run) HadError() bool {
	return r.hadError
}
