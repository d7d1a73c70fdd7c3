package gridsearch

import (
	"fmt"
	"math"
)

// Grid is a fixed rows x cols board of Cells.
//
// Barriers and endpoints survive across searches. The grid must not be edited
// while a Stepper bound to it is Running; doing so leaves the path undefined.
type Grid struct {
	rows, cols int
	cells      []*Cell
	start, end *Cell
}

// NewGrid allocates a grid with every cell passable. Sizes whose cell count
// does not fit in an int are rejected.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidGrid, rows, cols)
	}
	if rows > math.MaxInt/cols {
		return nil, fmt.Errorf("%w: size %dx%d overflows the cell count", ErrInvalidGrid, rows, cols)
	}
	grid := &Grid{rows: rows, cols: cols, cells: make([]*Cell, rows*cols)}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			grid.cells[row*cols+col] = newCell(row, col)
		}
	}
	return grid, nil
}

// Rows is the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols is the grid width.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cell returns the cell at (row, col), or nil when out of bounds.
func (g *Grid) Cell(row, col int) *Cell {
	if !g.InBounds(row, col) {
		return nil
	}
	return g.cells[row*g.cols+col]
}

// CellAt is Cell for a Coord.
func (g *Grid) CellAt(coord Coord) *Cell { return g.Cell(coord.Row, coord.Col) }

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

func (g *Grid) owns(cell *Cell) bool {
	return cell != nil && g.Cell(cell.coord.Row, cell.coord.Col) == cell
}

// Start is the designated start cell, nil until set.
func (g *Grid) Start() *Cell { return g.start }

// End is the designated end cell, nil until set.
func (g *Grid) End() *Cell { return g.end }

// SetBlocked toggles the barrier flag of a single cell. Endpoints are never
// blockable; the call is a no-op for them and for cells of another grid.
// It reports whether the cell was changed.
func (g *Grid) SetBlocked(cell *Cell, blocked bool) bool {
	if !g.owns(cell) || cell == g.start || cell == g.end {
		return false
	}
	if cell.blocked == blocked {
		return false
	}
	cell.blocked = blocked
	return true
}

// SetStart moves the start endpoint. A nil cell clears it. The chosen cell is
// unblocked, and if it was the end the end is cleared.
func (g *Grid) SetStart(cell *Cell) error {
	if cell == nil {
		g.start = nil
		return nil
	}
	if !g.owns(cell) {
		return endpointf("start %s does not belong to this grid", cell.coord)
	}
	if cell == g.end {
		g.end = nil
	}
	cell.blocked = false
	g.start = cell
	return nil
}

// SetEnd mirrors SetStart for the end endpoint.
func (g *Grid) SetEnd(cell *Cell) error {
	if cell == nil {
		g.end = nil
		return nil
	}
	if !g.owns(cell) {
		return endpointf("end %s does not belong to this grid", cell.coord)
	}
	if cell == g.start {
		g.start = nil
	}
	cell.blocked = false
	g.end = cell
	return nil
}

var directions = [4]Coord{{Row: -1}, {Col: 1}, {Row: 1}, {Col: -1}}

// NeighborsOf returns the passable, in-bounds 4-neighbours of cell.
// The order is fixed (N, E, S, W) but carries no meaning; the FrontierQueue
// decides which one is expanded first.
func (g *Grid) NeighborsOf(cell *Cell) []*Cell {
	if !g.owns(cell) {
		return nil
	}
	neighbors := make([]*Cell, 0, len(directions))
	for _, d := range directions {
		next := g.Cell(cell.coord.Row+d.Row, cell.coord.Col+d.Col)
		if next != nil && !next.blocked {
			neighbors = append(neighbors, next)
		}
	}
	return neighbors
}

// ResetSearchState clears state, cameFrom and scores on every cell.
func (g *Grid) ResetSearchState() {
	for _, cell := range g.cells {
		cell.resetSearch()
	}
}

// ClearBarriers unblocks every cell and clears search state. Endpoints stay.
func (g *Grid) ClearBarriers() {
	for _, cell := range g.cells {
		cell.blocked = false
		cell.resetSearch()
	}
}

// Clone copies the layout (barriers and endpoints) into a new grid with fresh
// search state, so several searches can run side by side.
func (g *Grid) Clone() *Grid {
	clone, _ := NewGrid(g.rows, g.cols)
	for i, cell := range g.cells {
		clone.cells[i].blocked = cell.blocked
	}
	if g.start != nil {
		clone.start = clone.CellAt(g.start.coord)
	}
	if g.end != nil {
		clone.end = clone.CellAt(g.end.coord)
	}
	return clone
}
