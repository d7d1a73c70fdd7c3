package gridsearch

import (
	"context"
	"log/slog"
)

// Result contains the outcome of a search run to completion.
type Result struct {
	Path          []Coord
	Length        int
	ExpandedNodes int
	Found         bool
	Stats         Stats
}

// Options defines parameters for a search.
type Options struct {
	Heuristic Heuristic
	Logger    *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic sets the A* estimate. It is ignored by the other algorithms.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithLogger routes lifecycle debug logs of the stepper to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func newOptions(options []Option) Options {
	searchOptions := Options{
		Heuristic: Manhattan,
		Logger:    slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Manhattan
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.DiscardHandler)
	}
	return searchOptions
}

// Search drives a fresh Stepper to a terminal state.
//
// The context is checked between steps. When the frontier is exhausted the
// partial Result is returned together with ErrNoPath.
func Search(
	contextObject context.Context,
	grid *Grid,
	algorithm Algorithm,
	startNode *Cell,
	goalNode *Cell,
	options ...Option,
) (Result, error) {
	stepper, err := NewStepper(grid, algorithm, startNode, goalNode, options...)
	if err != nil {
		return Result{}, err
	}
	return RunToCompletion(contextObject, stepper)
}

// RunToCompletion steps an existing Stepper until it finishes.
func RunToCompletion(contextObject context.Context, stepper *Stepper) (Result, error) {
	for !stepper.Done() {
		if err := contextObject.Err(); err != nil {
			return resultOf(stepper, nil), err
		}
		if _, err := stepper.Step(); err != nil {
			return resultOf(stepper, nil), err
		}
	}

	path, err := stepper.ReconstructPath()
	if err != nil {
		return resultOf(stepper, nil), err
	}
	return resultOf(stepper, path), nil
}

func resultOf(stepper *Stepper, path []*Cell) Result {
	stats := stepper.Stats()
	result := Result{
		ExpandedNodes: stats.Visited,
		Found:         path != nil,
		Stats:         stats,
	}
	if path != nil {
		result.Path = Coords(path)
		result.Length = len(path)
	}
	return result
}
