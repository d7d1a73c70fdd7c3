package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/logging"
	"github.com/pdrpinto/gridsearch/internal/render"
	"github.com/pdrpinto/gridsearch/runner"
)

type runFlags struct {
	board   boardFlags
	animate bool
	speed   float64
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "Search one board and print the explored grid and path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts, flags)
		},
	}
	f := cmd.Flags()
	flags.board.register(f)
	f.StringVarP(&flags.board.algorithm, "algorithm", "a", "", "Algorithm: bfs, dfs, dijkstra, astar")
	f.BoolVar(&flags.animate, "animate", false, "Print a frame after every step")
	f.Float64Var(&flags.speed, "speed", 0, "Steps per second when animating (config search.steps_per_second when 0)")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string, opts *rootOptions, flags *runFlags) error {
	b, err := flags.board.load(args, opts)
	if err != nil {
		return err
	}
	logger := logging.For("run")
	stepper, err := gridsearch.NewStepper(b.grid, b.algorithm, b.grid.Start(), b.grid.End(),
		gridsearch.WithHeuristic(b.heuristic),
		gridsearch.WithLogger(logger))
	if err != nil {
		return err
	}

	speed := flags.speed
	if speed <= 0 {
		speed = opts.cfg.Search.StepsPerSecond
	}
	controller := runner.New(stepper, runner.WithStepsPerSecond(speed), runner.WithLogger(logger))
	out := cmd.OutOrStdout()

	if flags.animate {
		err = controller.Run(cmd.Context(), func(runner.Frame) error {
			return render.Frame(out, b.grid, render.DefaultGlyphs)
		})
		if err != nil {
			return err
		}
	}
	result, err := controller.RunToCompletion(cmd.Context())
	if err != nil && !errors.Is(err, gridsearch.ErrNoPath) {
		return err
	}

	if !flags.animate {
		if err := render.Frame(out, b.grid, render.DefaultGlyphs); err != nil {
			return err
		}
	}
	printSummary(out, b, controller.Frame(), result)
	return nil
}

func printSummary(out io.Writer, b *board, frame runner.Frame, result gridsearch.Result) {
	fmt.Fprintf(out, "%s: %s\n", b.name, b.algorithm)
	if result.Found {
		fmt.Fprintf(out, "path length %d\n", result.Length)
	} else {
		fmt.Fprintln(out, "no path")
	}
	fmt.Fprintf(out, "steps %d, visited %d, pushed %d, max frontier %d, %.3fms\n",
		result.Stats.Steps, result.Stats.Visited, result.Stats.Pushed, result.Stats.MaxFrontier, frame.ElapsedMs)
}
