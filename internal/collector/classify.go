// Package collector implements collector levels: the agent gathers
// collectible units from the maze and the run is judged once, when the
// program stops, from the grid's balances and the program's block count.
package collector

import (
	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/maze"
)

// Classifier turns end-of-run grid state into a terminal outcome.
// It reads the live grid on every call and never writes to it.
type Classifier struct {
	Grid   maze.View
	Config level.Config
}

// PotentialMax is the sum of every collectible cell's original quantity.
func (c Classifier) PotentialMax() float64 {
	total := 0.0
	c.Grid.ForEachCollectibleCell(func(cell maze.Cell) {
		total += cell.OriginalValue()
	})
	return total
}

// TotalCollected is the sum of original minus remaining over collectible cells.
// A NaN balance anywhere makes the total NaN.
func (c Classifier) TotalCollected() float64 {
	total := 0.0
	c.Grid.ForEachCollectibleCell(func(cell maze.Cell) {
		total += cell.OriginalValue() - cell.CurrentValue()
	})
	return total
}

// CollectedTooMany reports a negative or NaN balance on any collectible cell.
func (c Classifier) CollectedTooMany() bool {
	bad := false
	c.Grid.ForEachCollectibleCell(func(cell maze.Cell) {
		if cell.Anomalous() {
			bad = true
		}
	})
	return bad
}

// CollectedAll reports whether everything that could be collected was.
func (c Classifier) CollectedAll() bool {
	return c.TotalCollected() == c.PotentialMax()
}

// Classify returns the outcome for a run that used blocksUsed blocks.
// The checks are ordered; the first that holds wins. Collected-nothing is
// tested before the anomaly check, so a grid whose corrupt balances net to
// zero reads as nothing collected.
func (c Classifier) Classify(blocksUsed int) level.Outcome {
	total := c.TotalCollected()

	switch {
	case total == 0:
		return level.OutcomeCollectedNothing
	case c.CollectedTooMany():
		return level.OutcomeCollectedTooMany
	case blocksUsed > c.Config.BlockLimit:
		return level.OutcomeTooManyBlocks
	case total == c.PotentialMax():
		return level.OutcomeCollectedEverything
	case c.Config.MinCollected != nil && total < float64(*c.Config.MinCollected):
		return level.OutcomeCollectedNotEnough
	default:
		return level.OutcomeCollectedSome
	}
}
