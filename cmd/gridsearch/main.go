// gridsearch runs, compares and serves stepwise grid searches.
//
// Usage:
//
//	gridsearch run maze.yaml --algorithm=astar [--animate --speed=20]
//	gridsearch run --random --seed=7 --algorithm=bfs
//	gridsearch compare maze.yaml [--markdown]
//	gridsearch serve [--addr=:8080]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
