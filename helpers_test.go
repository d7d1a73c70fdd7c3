package gridsearch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestGrid builds a grid from an ASCII layout: '#' barrier, 'S' start,
// 'E' end, anything else passable.
func newTestGrid(t *testing.T, layout ...string) *Grid {
	t.Helper()
	require.NotEmpty(t, layout)
	grid, err := NewGrid(len(layout), len(layout[0]))
	require.NoError(t, err)
	for row, line := range layout {
		require.Len(t, line, grid.Cols(), "row %d", row)
		for col, ch := range line {
			cell := grid.Cell(row, col)
			switch ch {
			case '#':
				grid.SetBlocked(cell, true)
			case 'S':
				require.NoError(t, grid.SetStart(cell))
			case 'E':
				require.NoError(t, grid.SetEnd(cell))
			}
		}
	}
	return grid
}

func newTestStepper(t *testing.T, grid *Grid, algorithm Algorithm, options ...Option) *Stepper {
	t.Helper()
	stepper, err := NewStepper(grid, algorithm, grid.Start(), grid.End(), options...)
	require.NoError(t, err)
	return stepper
}

// runAll steps until a terminal status and returns the visitation order.
func runAll(t *testing.T, stepper *Stepper) []Coord {
	t.Helper()
	var order []Coord
	limit := stepper.Grid().Rows()*stepper.Grid().Cols()*4 + 2
	for i := 0; !stepper.Done(); i++ {
		require.Less(t, i, limit, "stepper did not terminate")
		result, err := stepper.Step()
		require.NoError(t, err)
		if result.Status != Exhausted {
			order = append(order, result.Current)
		}
	}
	return order
}

// requireValidPath checks endpoints, adjacency and passability.
func requireValidPath(t *testing.T, grid *Grid, path []*Cell, start, end *Cell) {
	t.Helper()
	require.NotEmpty(t, path)
	require.Same(t, start, path[0])
	require.Same(t, end, path[len(path)-1])
	for i, cell := range path {
		require.False(t, cell.Blocked(), "path cell %s is blocked", cell)
		require.Same(t, cell, grid.CellAt(cell.Coord()))
		if i > 0 {
			require.True(t, path[i-1].Coord().Adjacent(cell.Coord()), "%s and %s are not adjacent", path[i-1], cell)
		}
	}
}

// shortestCells is a brute-force reference: plain BFS over the barrier
// matrix, returning the number of cells on a shortest path or -1.
func shortestCells(grid *Grid, from, to Coord) int {
	dist := make(map[Coord]int, grid.Rows()*grid.Cols())
	dist[from] = 1
	queue := []Coord{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return dist[cur]
		}
		for _, d := range []Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := Coord{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			cell := grid.CellAt(next)
			if cell == nil || cell.Blocked() {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return -1
}
