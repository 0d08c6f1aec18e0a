// Package maze provides the grid the player's agent walks on.
// Cells may hold a countable collectible quantity; the level variants only
// ever read the grid through the View interface.
package maze

import (
	"fmt"
	"math"
	"strings"
)

// Dir is the direction the agent is facing.
type Dir uint8

const (
	DirNorth Dir = iota
	DirEast
	DirSouth
	DirWest
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirNorth:
		return "North"
	case DirEast:
		return "East"
	case DirSouth:
		return "South"
	case DirWest:
		return "West"
	default:
		return "Unknown"
	}
}

// ParseDir parses a direction name. Accepts full names and first letters.
func ParseDir(s string) (Dir, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n", "north", "up":
		return DirNorth, nil
	case "e", "east", "right":
		return DirEast, nil
	case "s", "south", "down":
		return DirSouth, nil
	case "w", "west", "left":
		return DirWest, nil
	}
	return DirNorth, fmt.Errorf("maze: unknown direction %q", s)
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// North decreases Y, South increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirEast:
		return 1, 0
	case DirSouth:
		return 0, 1
	case DirWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// Left returns the direction after a quarter turn counter-clockwise.
func (d Dir) Left() Dir {
	return (d + 3) % 4
}

// Right returns the direction after a quarter turn clockwise.
func (d Dir) Right() Dir {
	return (d + 1) % 4
}

// Kind is the terrain of a cell.
type Kind uint8

const (
	KindWall Kind = iota
	KindOpen
)

// Cell is a single grid square.
// Original is the quantity placed by the level; Current is what remains.
// Current is only meaningful when Collectible is set and may drift below
// zero (or become NaN) when gameplay collects from an exhausted cell.
type Cell struct {
	Kind        Kind
	Collectible bool
	Original    float64
	Current     float64
}

// Wall returns a wall cell.
func Wall() Cell {
	return Cell{Kind: KindWall}
}

// Open returns an open cell with nothing on it.
func Open() Cell {
	return Cell{Kind: KindOpen}
}

// CollectibleCell returns an open cell holding n collectible units.
func CollectibleCell(n float64) Cell {
	return Cell{Kind: KindOpen, Collectible: true, Original: n, Current: n}
}

// IsCollectible reports whether the cell carries a collectible quantity.
func (c Cell) IsCollectible() bool {
	return c.Collectible
}

// OriginalValue returns the quantity the level placed on the cell.
func (c Cell) OriginalValue() float64 {
	return c.Original
}

// CurrentValue returns the quantity still on the cell.
func (c Cell) CurrentValue() float64 {
	return c.Current
}

// Anomalous reports a remaining quantity that valid play cannot produce.
func (c Cell) Anomalous() bool {
	return c.Collectible && (c.Current < 0 || math.IsNaN(c.Current))
}

// Passable reports whether the agent may stand on the cell.
func (c Cell) Passable() bool {
	return c.Kind != KindWall
}
