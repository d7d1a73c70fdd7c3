package gridsearch

import (
	"fmt"
	"math"
)

// Coord is a (row, col) position on a grid.
type Coord struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Adjacent reports whether the two coordinates share an edge.
func (c Coord) Adjacent(other Coord) bool {
	dr, dc := absInt(c.Row-other.Row), absInt(c.Col-other.Col)
	return dr+dc == 1
}

// CellState is the display-relevant progress of a cell in the current run.
type CellState uint8

const (
	Unvisited CellState = iota
	Frontier
	Visited
	Path
)

func (s CellState) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Frontier:
		return "frontier"
	case Visited:
		return "visited"
	case Path:
		return "path"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// Cell is a single square of a Grid.
//
// The coordinate and the barrier flag belong to the grid layout; state,
// cameFrom and the scores belong to the current search and are cleared by
// Grid.ResetSearchState. cameFrom never owns the referenced cell.
type Cell struct {
	coord   Coord
	blocked bool

	state    CellState
	cameFrom *Cell
	gScore   float64
	fScore   float64
}

func newCell(row, col int) *Cell {
	cell := &Cell{coord: Coord{Row: row, Col: col}}
	cell.resetSearch()
	return cell
}

func (c *Cell) resetSearch() {
	c.state = Unvisited
	c.cameFrom = nil
	c.gScore = math.Inf(1)
	c.fScore = math.Inf(1)
}

// Coord is the cell's fixed position.
func (c *Cell) Coord() Coord { return c.coord }

// Row is the zero-based row index.
func (c *Cell) Row() int { return c.coord.Row }

// Col is the zero-based column index.
func (c *Cell) Col() int { return c.coord.Col }

// Blocked reports whether the cell is a barrier.
func (c *Cell) Blocked() bool { return c.blocked }

// State is the cell's search state in the current run.
func (c *Cell) State() CellState { return c.state }

// GScore is the best known cost from start; +Inf until discovered.
func (c *Cell) GScore() float64 { return c.gScore }

// FScore is GScore plus the heuristic estimate when one is in use.
func (c *Cell) FScore() float64 { return c.fScore }

// CameFrom is the predecessor on the best known path, nil for start.
func (c *Cell) CameFrom() *Cell { return c.cameFrom }

func (c *Cell) String() string { return c.coord.String() }

func (c *Cell) isFinalized() bool  { return c.state == Visited || c.state == Path }
func (c *Cell) isDiscovered() bool { return c.state != Unvisited }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
