// Package gridsearch provides a stepwise pathfinding engine for 4-connected grids.
//
// It exposes two main entry points:
//
//   - Search: run an algorithm to completion and get a Result.
//   - Stepper: advance the search one visitation at a time to drive renderers or debugging tools.
//
// BFS, DFS, Dijkstra and A* share a single expansion loop; the algorithm only
// decides which FrontierQueue orders the cells and how a neighbour is relaxed. A
// Stepper does no work on its own: pausing is simply not calling Step.
package gridsearch
