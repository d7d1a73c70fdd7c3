package scenario

import (
	"fmt"
	"math/rand"

	"github.com/pdrpinto/gridsearch"
)

// RandomOptions tunes the clustered-wall generator.
type RandomOptions struct {
	Rows     int
	Cols     int
	Clusters int
	Steps    int
	Density  float64
	Seed     int64
}

// DefaultRandomOptions matches the visualizer's initial board.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{Rows: 24, Cols: 40, Clusters: 8, Steps: 200, Density: 0.25, Seed: 1}
}

// Random places distinct start and end cells, then grows wall clusters by
// random walks. The same options always produce the same grid.
func Random(opts RandomOptions) (*gridsearch.Grid, error) {
	if opts.Density < 0 || opts.Density > 1 {
		return nil, fmt.Errorf("%w: density %v outside [0,1]", gridsearch.ErrInvalidGrid, opts.Density)
	}
	if err := CheckSize(opts.Rows, opts.Cols, MaxCells); err != nil {
		return nil, err
	}
	if opts.Rows*opts.Cols < 2 {
		return nil, fmt.Errorf("%w: %dx%d cannot hold two endpoints", gridsearch.ErrInvalidGrid, opts.Rows, opts.Cols)
	}
	grid, err := gridsearch.NewGrid(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(opts.Seed))
	start := grid.Cell(r.Intn(opts.Rows), r.Intn(opts.Cols))
	end := start
	for end == start {
		end = grid.Cell(r.Intn(opts.Rows), r.Intn(opts.Cols))
	}
	if err := grid.SetStart(start); err != nil {
		return nil, err
	}
	if err := grid.SetEnd(end); err != nil {
		return nil, err
	}

	moves := [4]gridsearch.Coord{{Row: 1}, {Row: -1}, {Col: 1}, {Col: -1}}
	for c := 0; c < opts.Clusters; c++ {
		p := gridsearch.Coord{Row: r.Intn(opts.Rows), Col: r.Intn(opts.Cols)}
		for s := 0; s < opts.Steps; s++ {
			if r.Float64() < opts.Density {
				// endpoints refuse to be blocked
				grid.SetBlocked(grid.CellAt(p), true)
			}
			d := moves[r.Intn(len(moves))]
			if next := (gridsearch.Coord{Row: p.Row + d.Row, Col: p.Col + d.Col}); grid.InBounds(next.Row, next.Col) {
				p = next
			}
		}
	}
	return grid, nil
}
