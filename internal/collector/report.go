package collector

import "github.com/vovakirdan/maze-collector/internal/level"

// Message keys in the i18n catalogs.
const (
	MsgTooManyBlocks       = "collector.too_many_blocks"
	MsgCollectedNothing    = "collector.collected_nothing"
	MsgCollectedTooMany    = "collector.collected_too_many"
	MsgCollectedNotEnough  = "collector.collected_not_enough"
	MsgCollectedSome       = "collector.collected_some"
	MsgCollectedEverything = "collector.collected_everything"
)

// Reporter derives the message and grade for a stored outcome.
type Reporter struct {
	Classifier Classifier
	Messages   level.Formatter
}

// Message returns the localized text for o. Codes this level never
// produces return false. The count parameter is read from the live grid,
// so call Message before the grid is reset for the next attempt.
func (r Reporter) Message(o level.Outcome) (string, bool) {
	cfg := r.Classifier.Config

	switch o {
	case level.OutcomeTooManyBlocks:
		return r.format(MsgTooManyBlocks, map[string]any{"limit": cfg.BlockLimit}), true
	case level.OutcomeCollectedNothing:
		return r.format(MsgCollectedNothing, nil), true
	case level.OutcomeCollectedTooMany:
		return r.format(MsgCollectedTooMany, nil), true
	case level.OutcomeCollectedNotEnough:
		goal := 0
		if cfg.MinCollected != nil {
			goal = *cfg.MinCollected
		}
		return r.format(MsgCollectedNotEnough, map[string]any{"goal": goal}), true
	case level.OutcomeCollectedSome:
		return r.format(MsgCollectedSome, map[string]any{"count": r.Classifier.TotalCollected()}), true
	case level.OutcomeCollectedEverything:
		return r.format(MsgCollectedEverything, map[string]any{"count": r.Classifier.TotalCollected()}), true
	default:
		return "", false
	}
}

// Grade maps o onto the generic grading scale. Codes outside the table
// fall back to level.GenericGrade.
func (r Reporter) Grade(o level.Outcome, hadError bool) level.Grade {
	switch o {
	case level.OutcomeTooManyBlocks,
		level.OutcomeCollectedNothing,
		level.OutcomeCollectedTooMany,
		level.OutcomeCollectedNotEnough:
		return level.GradeFail
	case level.OutcomeCollectedSome:
		return level.GradeAcceptable
	case level.OutcomeCollectedEverything:
		return level.GradePass
	default:
		return level.GenericGrade(hadError)
	}
}

func (r Reporter) format(key string, params map[string]any) string {
	if r.Messages == nil {
		return key
	}
	return r.Messages.Format(key, params)
}
