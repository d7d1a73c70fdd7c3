package gridsearch

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_RejectsNonPositiveSize(t *testing.T) {
	for _, size := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		_, err := NewGrid(size[0], size[1])
		assert.ErrorIs(t, err, ErrInvalidGrid, "size %v", size)
	}
}

func TestNewGrid_RejectsOverflowingSize(t *testing.T) {
	for _, size := range [][2]int{{math.MaxInt/2 + 1, 2}, {2, math.MaxInt/2 + 1}, {math.MaxInt, math.MaxInt}} {
		assert.NotPanics(t, func() {
			_, err := NewGrid(size[0], size[1])
			assert.ErrorIs(t, err, ErrInvalidGrid, "size %v", size)
		})
	}
}

func TestGrid_CellBounds(t *testing.T) {
	grid, err := NewGrid(2, 3)
	require.NoError(t, err)

	assert.Nil(t, grid.Cell(-1, 0))
	assert.Nil(t, grid.Cell(2, 0))
	assert.Nil(t, grid.Cell(0, 3))

	cell := grid.Cell(1, 2)
	require.NotNil(t, cell)
	assert.Equal(t, Coord{Row: 1, Col: 2}, cell.Coord())
	assert.Equal(t, Unvisited, cell.State())
	assert.True(t, math.IsInf(cell.GScore(), 1))
	assert.Len(t, grid.Cells(), 6)
}

func TestGrid_SetBlockedIgnoresEndpoints(t *testing.T) {
	grid := newTestGrid(t,
		"S..",
		"..E",
	)
	assert.False(t, grid.SetBlocked(grid.Start(), true))
	assert.False(t, grid.SetBlocked(grid.End(), true))
	assert.False(t, grid.Start().Blocked())
	assert.False(t, grid.End().Blocked())

	middle := grid.Cell(0, 1)
	assert.True(t, grid.SetBlocked(middle, true))
	assert.True(t, middle.Blocked())
	assert.False(t, grid.SetBlocked(middle, true), "already blocked")

	other, err := NewGrid(2, 3)
	require.NoError(t, err)
	assert.False(t, grid.SetBlocked(other.Cell(1, 1), true), "foreign cell")
	assert.False(t, grid.SetBlocked(nil, true))
}

func TestGrid_SetEndpoints(t *testing.T) {
	grid, err := NewGrid(3, 3)
	require.NoError(t, err)

	wall := grid.Cell(1, 1)
	grid.SetBlocked(wall, true)
	require.NoError(t, grid.SetStart(wall))
	assert.False(t, wall.Blocked(), "start is unblocked")

	require.NoError(t, grid.SetEnd(wall))
	assert.Same(t, wall, grid.End())
	assert.Nil(t, grid.Start(), "moving end onto start clears start")

	other, err := NewGrid(3, 3)
	require.NoError(t, err)
	err = grid.SetStart(other.Cell(0, 0))
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
	var endpointErr *EndpointError
	assert.True(t, errors.As(err, &endpointErr))

	require.NoError(t, grid.SetEnd(nil))
	assert.Nil(t, grid.End())
}

func TestGrid_NeighborsOf(t *testing.T) {
	grid := newTestGrid(t,
		".#.",
		"...",
		".#.",
	)
	neighbors := Coords(grid.NeighborsOf(grid.Cell(1, 1)))
	want := []Coord{{1, 2}, {1, 0}}
	if diff := cmp.Diff(want, neighbors); diff != "" {
		t.Errorf("NeighborsOf center mismatch (-want +got):\n%s", diff)
	}

	corner := Coords(grid.NeighborsOf(grid.Cell(0, 0)))
	if diff := cmp.Diff([]Coord{{1, 0}}, corner); diff != "" {
		t.Errorf("NeighborsOf corner mismatch (-want +got):\n%s", diff)
	}
}

func TestGrid_ResetSearchStateKeepsBarriers(t *testing.T) {
	grid := newTestGrid(t,
		"S#.",
		"..E",
	)
	stepper := newTestStepper(t, grid, BFS)
	runAll(t, stepper)

	grid.ResetSearchState()
	for _, cell := range grid.Cells() {
		assert.Equal(t, Unvisited, cell.State(), "cell %s", cell)
		assert.Nil(t, cell.CameFrom())
		assert.True(t, math.IsInf(cell.GScore(), 1))
	}
	assert.True(t, grid.Cell(0, 1).Blocked())
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	grid := newTestGrid(t,
		"S#.",
		"..E",
	)
	clone := grid.Clone()
	assert.Equal(t, grid.Start().Coord(), clone.Start().Coord())
	assert.Equal(t, grid.End().Coord(), clone.End().Coord())
	assert.True(t, clone.Cell(0, 1).Blocked())

	clone.SetBlocked(clone.Cell(1, 0), true)
	assert.False(t, grid.Cell(1, 0).Blocked())
}

func TestGrid_ClearBarriers(t *testing.T) {
	grid := newTestGrid(t,
		"S##",
		"#.E",
	)
	grid.ClearBarriers()
	for _, cell := range grid.Cells() {
		assert.False(t, cell.Blocked())
	}
	assert.NotNil(t, grid.Start())
	assert.NotNil(t, grid.End())
}
