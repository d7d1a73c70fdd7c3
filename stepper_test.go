package gridsearch

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openGrid(t *testing.T) *Grid {
	return newTestGrid(t,
		"S....",
		".....",
		".....",
		".....",
		"....E",
	)
}

func TestStepper_OpenGridCornerToCorner(t *testing.T) {
	for _, algorithm := range Algorithms() {
		t.Run(algorithm.String(), func(t *testing.T) {
			grid := openGrid(t)
			stepper := newTestStepper(t, grid, algorithm)
			runAll(t, stepper)
			require.Equal(t, Found, stepper.Status())

			path, err := stepper.ReconstructPath()
			require.NoError(t, err)
			requireValidPath(t, grid, path, grid.Start(), grid.End())
			if algorithm != DFS {
				assert.Len(t, path, 9)
			}
			for _, cell := range path {
				assert.Equal(t, Path, cell.State())
			}
		})
	}
}

func TestStepper_AStarMatchesBFSLength(t *testing.T) {
	bfsGrid, astarGrid := openGrid(t), openGrid(t)

	bfs := newTestStepper(t, bfsGrid, BFS)
	runAll(t, bfs)
	bfsPath, err := bfs.ReconstructPath()
	require.NoError(t, err)

	astar := newTestStepper(t, astarGrid, AStar, WithHeuristic(Manhattan))
	runAll(t, astar)
	astarPath, err := astar.ReconstructPath()
	require.NoError(t, err)

	assert.Len(t, bfsPath, 9)
	assert.Equal(t, len(bfsPath), len(astarPath))
}

func TestStepper_FullWallExhausts(t *testing.T) {
	for _, algorithm := range Algorithms() {
		t.Run(algorithm.String(), func(t *testing.T) {
			grid := newTestGrid(t,
				"S....",
				".....",
				"#####",
				".....",
				"....E",
			)
			stepper := newTestStepper(t, grid, algorithm)
			for !stepper.Done() {
				result, err := stepper.Step()
				require.NoError(t, err)
				require.NotEqual(t, Found, result.Status)
			}
			assert.Equal(t, Exhausted, stepper.Status())
			assert.Equal(t, 10, stepper.Stats().Visited, "only the upper half is reachable")

			_, err := stepper.ReconstructPath()
			assert.ErrorIs(t, err, ErrNoPath)
		})
	}
}

func TestStepper_AdjacentEndFoundOnFirstStep(t *testing.T) {
	layouts := [][]string{
		{"SE", ".."},
		{"S.", "E."},
		{"..", "ES"},
	}
	for _, algorithm := range Algorithms() {
		for i, layout := range layouts {
			t.Run(fmt.Sprintf("%s/%d", algorithm, i), func(t *testing.T) {
				grid := newTestGrid(t, layout...)
				stepper := newTestStepper(t, grid, algorithm)
				require.Equal(t, Ready, stepper.Status())

				result, err := stepper.Step()
				require.NoError(t, err)
				assert.Equal(t, Found, result.Status)
				assert.False(t, result.Continues)

				path, err := stepper.ReconstructPath()
				require.NoError(t, err)
				assert.Len(t, path, 2)
			})
		}
	}
}

func TestStepper_StatusTransitions(t *testing.T) {
	grid := openGrid(t)
	stepper := newTestStepper(t, grid, Dijkstra)
	assert.Equal(t, Ready, stepper.Status())
	assert.Equal(t, Frontier, grid.Start().State())
	assert.Equal(t, 1, stepper.FrontierLen())

	result, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, Running, result.Status)
	assert.True(t, result.Continues)
	assert.Equal(t, grid.Start().Coord(), result.Current)
	assert.Equal(t, Visited, grid.Start().State())
	assert.Equal(t, 0.0, grid.Start().GScore())

	for _, neighbor := range grid.NeighborsOf(grid.Start()) {
		assert.Equal(t, Frontier, neighbor.State())
		assert.Same(t, grid.Start(), neighbor.CameFrom())
		assert.Equal(t, 1.0, neighbor.GScore())
	}
}

func TestStepper_ReconstructPathBeforeFound(t *testing.T) {
	grid := openGrid(t)
	stepper := newTestStepper(t, grid, BFS)

	_, err := stepper.ReconstructPath()
	assert.ErrorIs(t, err, ErrNoPath, "ready")

	_, err = stepper.Step()
	require.NoError(t, err)
	_, err = stepper.ReconstructPath()
	assert.ErrorIs(t, err, ErrNoPath, "running")
}

func TestStepper_StepAfterTerminalIsIllegal(t *testing.T) {
	grid := newTestGrid(t, "SE")
	stepper := newTestStepper(t, grid, BFS)
	_, err := stepper.Step()
	require.NoError(t, err)
	require.Equal(t, Found, stepper.Status())
	stats := stepper.Stats()

	result, err := stepper.Step()
	assert.ErrorIs(t, err, ErrIllegalStep)
	assert.Equal(t, Found, result.Status)
	assert.False(t, result.Continues)
	assert.Equal(t, stats, stepper.Stats(), "illegal step changes nothing")
}

func TestStepper_RejectsInvalidEndpoints(t *testing.T) {
	grid := newTestGrid(t,
		"S.#",
		"..E",
	)
	other, err := NewGrid(2, 3)
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end *Cell
	}{
		{"missing start", nil, grid.End()},
		{"missing end", grid.Start(), nil},
		{"equal", grid.Start(), grid.Start()},
		{"blocked end", grid.Start(), grid.Cell(0, 2)},
		{"blocked start", grid.Cell(0, 2), grid.End()},
		{"foreign", other.Cell(0, 0), grid.End()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStepper(grid, BFS, tc.start, tc.end)
			require.ErrorIs(t, err, ErrInvalidEndpoint)
			var endpointErr *EndpointError
			require.True(t, errors.As(err, &endpointErr))
			assert.NotEmpty(t, endpointErr.Msg)
		})
	}

	_, err = NewStepper(nil, BFS, grid.Start(), grid.End())
	assert.ErrorIs(t, err, ErrInvalidGrid)
	_, err = NewStepper(grid, Algorithm(42), grid.Start(), grid.End())
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestStepper_ResetReproducesVisitationOrder(t *testing.T) {
	for _, algorithm := range Algorithms() {
		t.Run(algorithm.String(), func(t *testing.T) {
			grid := newTestGrid(t,
				"S.....#...",
				".##.#.#.#.",
				"..#...#.#.",
				"#.####..#.",
				"......#..E",
			)
			stepper := newTestStepper(t, grid, algorithm)
			first := runAll(t, stepper)
			firstSnapshot := stepper.Snapshot()

			stepper.Reset()
			assert.Equal(t, Ready, stepper.Status())
			assert.Equal(t, Stats{Pushed: 1, MaxFrontier: 1}, stepper.Stats())
			assert.Equal(t, Unvisited, grid.End().State())

			second := runAll(t, stepper)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("visitation order changed after reset (-first +second):\n%s", diff)
			}
			if diff := cmp.Diff(firstSnapshot, stepper.Snapshot()); diff != "" {
				t.Errorf("final snapshot changed after reset (-first +second):\n%s", diff)
			}
		})
	}
}

func TestStepper_ResetAfterPathClearsPathMarks(t *testing.T) {
	grid := openGrid(t)
	stepper := newTestStepper(t, grid, AStar)
	runAll(t, stepper)
	_, err := stepper.ReconstructPath()
	require.NoError(t, err)

	stepper.Reset()
	for _, cell := range grid.Cells() {
		if cell == grid.Start() {
			assert.Equal(t, Frontier, cell.State())
			continue
		}
		assert.Equal(t, Unvisited, cell.State(), "cell %s", cell)
	}
}

func TestStepper_BarriersSurviveRerun(t *testing.T) {
	grid := newTestGrid(t,
		"S#.",
		"..E",
	)
	stepper := newTestStepper(t, grid, BFS)
	runAll(t, stepper)

	grid.SetBlocked(grid.Cell(1, 1), true)
	stepper, err := NewStepper(grid, BFS, grid.Start(), grid.End())
	require.NoError(t, err)
	runAll(t, stepper)
	assert.Equal(t, Exhausted, stepper.Status())
	assert.True(t, grid.Cell(0, 1).Blocked())
}

func TestStepper_MatchesBruteForceOnRandomGrids(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for trial := 0; trial < 60; trial++ {
		rows, cols := 3+random.Intn(5), 3+random.Intn(5)
		grid, err := NewGrid(rows, cols)
		require.NoError(t, err)
		for _, cell := range grid.Cells() {
			if random.Float64() < 0.3 {
				grid.SetBlocked(cell, true)
			}
		}
		start := grid.Cell(random.Intn(rows), random.Intn(cols))
		end := grid.Cell(random.Intn(rows), random.Intn(cols))
		if start == end {
			continue
		}
		require.NoError(t, grid.SetStart(start))
		require.NoError(t, grid.SetEnd(end))
		want := shortestCells(grid, start.Coord(), end.Coord())

		configs := []struct {
			algorithm Algorithm
			heuristic Heuristic
			optimal   bool
		}{
			{BFS, nil, true},
			{DFS, nil, false},
			{Dijkstra, nil, true},
			{AStar, Manhattan, true},
			{AStar, Euclidean, true},
			{AStar, Chebyshev, true},
		}
		for _, config := range configs {
			name := fmt.Sprintf("trial %d %s", trial, config.algorithm)
			stepper, err := NewStepper(grid, config.algorithm, start, end, WithHeuristic(config.heuristic))
			require.NoError(t, err, name)
			runAll(t, stepper)

			if want < 0 {
				assert.Equal(t, Exhausted, stepper.Status(), name)
				continue
			}
			require.Equal(t, Found, stepper.Status(), name)
			path, err := stepper.ReconstructPath()
			require.NoError(t, err, name)
			requireValidPath(t, grid, path, start, end)
			if config.optimal {
				assert.Len(t, path, want, name)
			}
		}
	}
}

func TestStepper_SnapshotAfterFirstStep(t *testing.T) {
	grid := openGrid(t)
	stepper := newTestStepper(t, grid, BFS)
	_, err := stepper.Step()
	require.NoError(t, err)

	snapshot := stepper.Snapshot()
	assert.Equal(t, 1, snapshot.StepIndex)
	assert.Equal(t, "bfs", snapshot.Algorithm)
	assert.Equal(t, Running, snapshot.Status)
	require.NotNil(t, snapshot.Current)
	assert.Equal(t, Coord{0, 0}, *snapshot.Current)
	assert.Equal(t, []Coord{{0, 0}}, snapshot.Visited)
	assert.Equal(t, []Coord{{0, 1}, {1, 0}}, snapshot.Frontier)
	assert.Empty(t, snapshot.Path)
	assert.False(t, snapshot.Done)
}

func TestStepper_LogsLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	grid := newTestGrid(t, "S.E")
	stepper := newTestStepper(t, grid, BFS, WithLogger(logger))
	runAll(t, stepper)

	output := buf.String()
	assert.Contains(t, output, "search started")
	assert.Contains(t, output, "algorithm=bfs")
	assert.Contains(t, output, "status=found")
}
