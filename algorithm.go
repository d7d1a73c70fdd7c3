package gridsearch

import (
	"fmt"
	"strings"
)

// Algorithm selects the frontier ordering and relaxation rule of a Stepper.
type Algorithm uint8

const (
	BFS Algorithm = iota
	DFS
	Dijkstra
	AStar
)

// Algorithms lists every algorithm in display order.
func Algorithms() []Algorithm { return []Algorithm{BFS, DFS, Dijkstra, AStar} }

func (a Algorithm) String() string {
	switch a {
	case BFS:
		return "bfs"
	case DFS:
		return "dfs"
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// Weighted reports whether the algorithm relaxes gScores through a priority queue.
func (a Algorithm) Weighted() bool { return a == Dijkstra || a == AStar }

func (a Algorithm) valid() bool { return a <= AStar }

// ParseAlgorithm accepts the String form plus "a*" and "a-star".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs":
		return BFS, nil
	case "dfs":
		return DFS, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
