// Package compare runs several algorithms over copies of one grid and
// tabulates how much work each needed.
package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
)

// Options selects what to compare. Zero values mean every algorithm, the
// Manhattan heuristic and one worker per algorithm.
type Options struct {
	Algorithms []gridsearch.Algorithm
	Heuristic  gridsearch.Heuristic
	Parallel   int
}

// Row is the outcome of one algorithm.
type Row struct {
	Algorithm gridsearch.Algorithm
	Result    gridsearch.Result
	Elapsed   time.Duration
	// Err is nil or wraps gridsearch.ErrNoPath.
	Err error
}

// Run searches a private clone of grid per algorithm, concurrently.
// Rows come back in the order of opts.Algorithms. A missing path is recorded
// on its row; any other failure cancels the remaining searches.
func Run(ctx context.Context, grid *gridsearch.Grid, opts Options) ([]Row, error) {
	algorithms := opts.Algorithms
	if len(algorithms) == 0 {
		algorithms = gridsearch.Algorithms()
	}
	heuristic := opts.Heuristic
	if heuristic == nil {
		heuristic = gridsearch.Manhattan
	}
	logger := ctxlog.From(ctx).With("component", "compare")

	clones := make([]*gridsearch.Grid, len(algorithms))
	for i := range algorithms {
		clones[i] = grid.Clone()
	}

	rows := make([]Row, len(algorithms))
	g, gCtx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for i, algorithm := range algorithms {
		g.Go(func() error {
			clone := clones[i]
			began := time.Now()
			result, err := gridsearch.Search(gCtx, clone, algorithm, clone.Start(), clone.End(),
				gridsearch.WithHeuristic(heuristic))
			rows[i] = Row{Algorithm: algorithm, Result: result, Elapsed: time.Since(began)}
			if errors.Is(err, gridsearch.ErrNoPath) {
				rows[i].Err = err
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", algorithm, err)
			}
			logger.Debug("search compared", "algorithm", algorithm.String(),
				"length", result.Length, "visited", result.ExpandedNodes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Table renders rows as a terminal table, or as Markdown when markdown is set.
func Table(rows []Row, markdown bool) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Algorithm", "Found", "Length", "Visited", "Pushed", "Max frontier", "Steps", "Time"})
	for _, row := range rows {
		stats := row.Result.Stats
		length := "-"
		if row.Result.Found {
			length = fmt.Sprint(row.Result.Length)
		}
		w.AppendRow(table.Row{
			row.Algorithm.String(),
			row.Result.Found,
			length,
			stats.Visited,
			stats.Pushed,
			stats.MaxFrontier,
			stats.Steps,
			row.Elapsed.Round(time.Microsecond),
		})
	}
	configs := make([]table.ColumnConfig, 0, 7)
	for number := 2; number <= 8; number++ {
		configs = append(configs, table.ColumnConfig{Number: number, Align: text.AlignRight})
	}
	w.SetColumnConfigs(configs)
	if markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}
