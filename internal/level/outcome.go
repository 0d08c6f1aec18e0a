// Package level defines what every level variant shares: the terminal
// outcome codes, grades, per-run telemetry and the capability interface the
// execution engine drives.
package level

import "fmt"

// Outcome is the single terminal value recorded for a run.
type Outcome int

const (
	// OutcomeUnset means no variant recorded a value. It never maps to a
	// message and always defers grading to GenericGrade.
	OutcomeUnset Outcome = iota

	// Goal levels.
	OutcomeFinished
	OutcomeNotFinished
	OutcomeCrashed

	// Collector levels.
	OutcomeCollectedNothing
	OutcomeCollectedTooMany
	OutcomeTooManyBlocks
	OutcomeCollectedEverything
	OutcomeCollectedNotEnough
	OutcomeCollectedSome
)

var outcomeNames = map[Outcome]string{
	OutcomeUnset:               "unset",
	OutcomeFinished:            "finished",
	OutcomeNotFinished:         "not_finished",
	OutcomeCrashed:             "crashed",
	OutcomeCollectedNothing:    "collected_nothing",
	OutcomeCollectedTooMany:    "collected_too_many",
	OutcomeTooManyBlocks:       "too_many_blocks",
	OutcomeCollectedEverything: "collected_everything",
	OutcomeCollectedNotEnough:  "collected_not_enough",
	OutcomeCollectedSome:       "collected_some",
}

// String returns the stable snake_case name used in storage and logs.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// ParseOutcome is the inverse of String.
func ParseOutcome(s string) (Outcome, error) {
	for o, name := range outcomeNames {
		if name == s {
			return o, nil
		}
	}
	return OutcomeUnset, fmt.Errorf("level: unknown outcome %q", s)
}

// Grade is the generic test-grading scale shared by all level variants.
type Grade int

const (
	GradeFail       Grade = iota // hard failure, level not passed
	GradeAcceptable              // passed but imperfect
	GradePass                    // full pass
)

// String returns a human-readable grade name.
func (g Grade) String() string {
	switch g {
	case GradeFail:
		return "fail"
	case GradeAcceptable:
		return "acceptable"
	case GradePass:
		return "pass"
	default:
		return "unknown"
	}
}

// ParseGrade is the inverse of String.
func ParseGrade(s string) (Grade, error) {
	switch s {
	case "fail":
		return GradeFail, nil
	case "acceptable":
		return GradeAcceptable, nil
	case "pass":
		return GradePass, nil
	}
	return GradeFail, fmt.Errorf("level: unknown grade %q", s)
}

// Passed reports whether the grade clears the level.
func (g Grade) Passed() bool {
	return g >= GradeAcceptable
}

// GenericGrade is the fallback used for codes a variant does not know.
// It only looks at whether execution raised an error.
func GenericGrade(hadError bool) Grade {
	if hadError {
		return GradeFail
	}
	return GradePass
}
