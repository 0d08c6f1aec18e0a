package maze

import "fmt"

// View is the read-only face of a grid handed to level variants.
// Traversal order is row-major but callers must not depend on it.
type View interface {
	ForEachCollectibleCell(fn func(Cell))
	At(c Coord) Cell
	Size() (w, h int)
}

// Grid represents the maze as a rectangular grid of cells.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W        int    // Width of the grid
	H        int    // Height of the grid
	Cells    []Cell // Flat array of cells, length W*H
	Start    Coord  // Agent spawn position
	StartDir Dir    // Agent spawn heading
	Finish   *Coord // Optional finish cell (goal levels)
}

// NewGrid creates a grid of the given size with every cell walled.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the cell at the given coordinate.
// Out-of-bounds coordinates read as walls.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return Wall()
	}
	return g.Cells[g.index(c)]
}

// Set replaces the cell at the given coordinate.
func (g *Grid) Set(c Coord, cell Cell) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = cell
	}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (w, h int) {
	return g.W, g.H
}

// CanEnter reports whether the agent may step onto c.
func (g *Grid) CanEnter(c Coord) bool {
	return g.InBounds(c) && g.At(c).Passable()
}

// Collect takes one unit from the cell at c.
// The decrement is unconditional: collecting from an empty or
// non-collectible square drives the balance negative so the anomaly is
// visible to outcome evaluation instead of being silently ignored.
func (g *Grid) Collect(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("maze: collect out of bounds at %s", c)
	}
	cell := &g.Cells[g.index(c)]
	if !cell.Collectible {
		cell.Collectible = true
		cell.Original = 0
		cell.Current = 0
	}
	cell.Current--
	return nil
}

// ForEachCollectibleCell calls fn for every collectible cell.
func (g *Grid) ForEachCollectibleCell(fn func(Cell)) {
	for _, cell := range g.Cells {
		if cell.Collectible {
			fn(cell)
		}
	}
}

// Reset restores every collectible to its original quantity.
// Cells that only became collectible through over-collection are cleared.
func (g *Grid) Reset() {
	for i := range g.Cells {
		cell := &g.Cells[i]
		if !cell.Collectible {
			continue
		}
		if cell.Original == 0 {
			cell.Collectible = false
			cell.Current = 0
			continue
		}
		cell.Current = cell.Original
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	clone := &Grid{
		W:        g.W,
		H:        g.H,
		Cells:    cells,
		Start:    g.Start,
		StartDir: g.StartDir,
	}
	if g.Finish != nil {
		f := *g.Finish
		clone.Finish = &f
	}
	return clone
}

// CollectibleCount returns the number of collectible cells.
func (g *Grid) CollectibleCount() int {
	count := 0
	g.ForEachCollectibleCell(func(Cell) { count++ })
	return count
}

// Equal returns true if two grids have the same dimensions and contents.
// NaN balances never compare equal.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H || g.Start != other.Start || g.StartDir != other.StartDir {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// FinishCell returns the finish coordinate, if the level has one.
func (g *Grid) FinishCell() (Coord, bool) {
	if g.Finish == nil {
		return Coord{}, false
	}
	return *g.Finish, true
}
