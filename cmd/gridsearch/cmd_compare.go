package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/compare"
)

type compareFlags struct {
	board      boardFlags
	algorithms []string
	parallel   int
	markdown   bool
}

func newCompareCmd(opts *rootOptions) *cobra.Command {
	flags := &compareFlags{}
	cmd := &cobra.Command{
		Use:   "compare [scenario.yaml]",
		Short: "Run several algorithms on the same board and tabulate their cost",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, opts, flags)
		},
	}
	f := cmd.Flags()
	flags.board.register(f)
	f.StringSliceVar(&flags.algorithms, "algorithms", nil, "Algorithms to compare (default: all)")
	f.IntVar(&flags.parallel, "parallel", 0, "Concurrent searches (0 = one per algorithm)")
	f.BoolVar(&flags.markdown, "markdown", false, "Render the table as Markdown")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string, opts *rootOptions, flags *compareFlags) error {
	b, err := flags.board.load(args, opts)
	if err != nil {
		return err
	}
	algorithms := make([]gridsearch.Algorithm, 0, len(flags.algorithms))
	for _, name := range flags.algorithms {
		algorithm, err := gridsearch.ParseAlgorithm(name)
		if err != nil {
			return err
		}
		algorithms = append(algorithms, algorithm)
	}

	rows, err := compare.Run(cmd.Context(), b.grid, compare.Options{
		Algorithms: algorithms,
		Heuristic:  b.heuristic,
		Parallel:   flags.parallel,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%dx%d)\n", b.name, b.grid.Rows(), b.grid.Cols())
	fmt.Fprintln(out, compare.Table(rows, flags.markdown))
	return nil
}
