package gridsearch

import (
	"fmt"
	"math"
	"strings"
)

// Heuristic returns the estimated cost from one coordinate to another.
//
// On a 4-connected unit-cost grid all three estimates are consistent, so A*
// stays optimal with any of them; Manhattan is the tightest and expands the
// fewest cells.
type Heuristic func(from Coord, to Coord) float64

// Manhattan is |dr| + |dc|.
func Manhattan(from, to Coord) float64 {
	return float64(absInt(from.Row-to.Row) + absInt(from.Col-to.Col))
}

// Euclidean is the straight-line distance.
func Euclidean(from, to Coord) float64 {
	dr, dc := float64(from.Row-to.Row), float64(from.Col-to.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// Chebyshev is max(|dr|, |dc|).
func Chebyshev(from, to Coord) float64 {
	return float64(max(absInt(from.Row-to.Row), absInt(from.Col-to.Col)))
}

// ParseHeuristic maps a name to its function. "diagonal" is an alias of Chebyshev.
func ParseHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	case "chebyshev", "diagonal":
		return Chebyshev, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
}

// HeuristicNames lists the accepted names in display order.
func HeuristicNames() []string { return []string{"manhattan", "euclidean", "chebyshev"} }
