package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/scenario"
)

// boardFlags selects where the grid comes from; shared by run and compare.
type boardFlags struct {
	random    bool
	rows      int
	cols      int
	clusters  int
	steps     int
	density   float64
	seed      int64
	algorithm string
	heuristic string
}

func (b *boardFlags) register(f *pflag.FlagSet) {
	defaults := scenario.DefaultRandomOptions()
	f.BoolVar(&b.random, "random", false, "Generate a clustered random board instead of reading a scenario")
	f.IntVar(&b.rows, "rows", defaults.Rows, "Random board rows")
	f.IntVar(&b.cols, "cols", defaults.Cols, "Random board columns")
	f.IntVar(&b.clusters, "clusters", defaults.Clusters, "Random wall clusters")
	f.IntVar(&b.steps, "walk", defaults.Steps, "Random walk length per cluster")
	f.Float64Var(&b.density, "density", defaults.Density, "Chance a walked cell becomes a wall")
	f.Int64Var(&b.seed, "seed", defaults.Seed, "Random board seed")
	f.StringVar(&b.heuristic, "heuristic", "", "A* heuristic: manhattan, euclidean, chebyshev")
}

// board is a loaded grid plus the search settings resolved for it.
type board struct {
	name      string
	grid      *gridsearch.Grid
	algorithm gridsearch.Algorithm
	heuristic gridsearch.Heuristic
}

// load builds the grid. Precedence for settings: flags, then scenario, then config.
func (b *boardFlags) load(args []string, opts *rootOptions) (*board, error) {
	sc := &scenario.Scenario{}
	switch {
	case b.random && len(args) > 0:
		return nil, errors.New("pass either a scenario file or --random, not both")
	case b.random:
		grid, err := scenario.Random(scenario.RandomOptions{
			Rows:     b.rows,
			Cols:     b.cols,
			Clusters: b.clusters,
			Steps:    b.steps,
			Density:  b.density,
			Seed:     b.seed,
		})
		if err != nil {
			return nil, err
		}
		sc.Name = fmt.Sprintf("random seed %d", b.seed)
		sc.Layout = scenario.Layout(grid)
	case len(args) == 1:
		loaded, err := scenario.LoadFile(args[0])
		if err != nil {
			return nil, err
		}
		sc = loaded
		if sc.Name == "" {
			sc.Name = args[0]
		}
	default:
		return nil, errors.New("a scenario file or --random is required")
	}

	if b.algorithm != "" {
		sc.Algorithm = b.algorithm
	}
	if b.heuristic != "" {
		sc.Heuristic = b.heuristic
	}
	algorithm, heuristic, err := sc.SearchSettings(opts.cfg.Algorithm(), opts.cfg.Search.Heuristic)
	if err != nil {
		return nil, err
	}
	grid, err := sc.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", sc.Name, err)
	}
	return &board{name: sc.Name, grid: grid, algorithm: algorithm, heuristic: heuristic}, nil
}
