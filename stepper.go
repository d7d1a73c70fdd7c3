package gridsearch

import (
	"fmt"
	"log/slog"

	"github.com/pdrpinto/gridsearch/internal"
)

// Status is the lifecycle of one search run.
type Status uint8

const (
	Ready Status = iota
	Running
	Found
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// IsTerminal reports whether no further Step is allowed.
func (s Status) IsTerminal() bool { return s == Found || s == Exhausted }

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts the names String produces.
func (s *Status) UnmarshalText(text []byte) error {
	for candidate := Ready; candidate <= Exhausted; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// StepResult is what a single Step call reports.
type StepResult struct {
	Continues bool
	Status    Status
	Current   Coord
}

// Stats counts the work done by the current run.
type Stats struct {
	Steps       int `json:"steps"`
	Visited     int `json:"visited"`
	Pushed      int `json:"pushed"`
	MaxFrontier int `json:"maxFrontier"`
}

const edgeCost = 1.0

// Stepper owns one incremental search over a borrowed Grid.
//
// Every Step performs one frontier pop and one neighbour scan, then returns.
// A Stepper is not safe for concurrent use and holds no timers; the caller
// decides when to advance.
type Stepper struct {
	grid      *Grid
	algorithm Algorithm
	start     *Cell
	end       *Cell
	heuristic Heuristic
	logger    *slog.Logger

	frontier FrontierQueue
	seq      uint64
	status   Status
	current  *Cell
	stats    Stats
}

// NewStepper validates the endpoints, clears the grid's search state and
// seeds the frontier with start.
func NewStepper(
	grid *Grid,
	algorithm Algorithm,
	start *Cell,
	end *Cell,
	options ...Option,
) (*Stepper, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if !algorithm.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
	if err := validateEndpoints(grid, start, end); err != nil {
		return nil, err
	}

	searchOptions := newOptions(options)
	s := &Stepper{
		grid:      grid,
		algorithm: algorithm,
		start:     start,
		end:       end,
		logger:    searchOptions.Logger.With("algorithm", algorithm.String()),
	}
	if algorithm == AStar {
		s.heuristic = searchOptions.Heuristic
	}
	s.Reset()
	return s, nil
}

func validateEndpoints(grid *Grid, start, end *Cell) error {
	switch {
	case start == nil:
		return endpointf("start is missing")
	case end == nil:
		return endpointf("end is missing")
	case !grid.owns(start):
		return endpointf("start %s does not belong to this grid", start.coord)
	case !grid.owns(end):
		return endpointf("end %s does not belong to this grid", end.coord)
	case start == end:
		return endpointf("start and end are both %s", start.coord)
	case start.blocked:
		return endpointf("start %s is blocked", start.coord)
	case end.blocked:
		return endpointf("end %s is blocked", end.coord)
	}
	return nil
}

// Reset clears the grid's search state, re-seeds the frontier and returns to Ready.
// Barriers are untouched.
func (s *Stepper) Reset() {
	s.grid.ResetSearchState()
	s.frontier = NewFrontier(s.algorithm)
	s.seq = 0
	s.status = Ready
	s.current = nil
	s.stats = Stats{}

	s.start.gScore = 0
	s.start.fScore = 0
	if s.heuristic != nil {
		s.start.fScore = s.heuristic(s.start.coord, s.end.coord)
	}
	s.push(s.start, 0)
}

// Grid is the borrowed grid being searched.
func (s *Stepper) Grid() *Grid { return s.grid }

// Algorithm is the discipline fixed at construction.
func (s *Stepper) Algorithm() Algorithm { return s.algorithm }

// Start is the source cell.
func (s *Stepper) Start() *Cell { return s.start }

// End is the goal cell.
func (s *Stepper) End() *Cell { return s.end }

// Status is the current lifecycle state.
func (s *Stepper) Status() Status { return s.status }

// Stats counts the work done since the last Reset.
func (s *Stepper) Stats() Stats { return s.stats }

// Done reports whether the status is terminal.
func (s *Stepper) Done() bool { return s.status.IsTerminal() }

// Heuristic is the A* estimate in use, nil for the other algorithms.
func (s *Stepper) Heuristic() Heuristic { return s.heuristic }

// FrontierLen counts pending entries, stale ones included.
func (s *Stepper) FrontierLen() int { return s.frontier.Len() }

func (s *Stepper) logStatus(msg string) {
	s.logger.Debug(msg, "status", s.status.String(), "steps", s.stats.Steps)
}

// Step advances the search by one visitation.
//
// From Ready the stepper moves to Running. An empty frontier moves it to
// Exhausted; finalizing end (when popped, or when first discovered) moves it
// to Found. Stale priority-queue entries for already finalized cells are
// discarded inside the same call. Once the status is terminal every further
// call returns ErrIllegalStep and changes nothing.
func (s *Stepper) Step() (StepResult, error) {
	if s.status.IsTerminal() {
		return s.result(), fmt.Errorf("%w: status is %s", ErrIllegalStep, s.status)
	}
	if s.status == Ready {
		s.status = Running
		s.logStatus("search started")
	}
	s.stats.Steps++

	for {
		entry, ok := s.frontier.PopNext()
		if !ok {
			s.status = Exhausted
			s.current = nil
			s.logStatus("frontier exhausted")
			return s.result(), nil
		}

		current := entry.Cell
		if current.isFinalized() {
			continue
		}
		s.visit(current)

		if current == s.end {
			s.status = Found
			s.logStatus("end reached")
			return s.result(), nil
		}

		s.expand(current)
		return s.result(), nil
	}
}

func (s *Stepper) result() StepResult {
	result := StepResult{Continues: !s.status.IsTerminal(), Status: s.status}
	if s.current != nil {
		result.Current = s.current.coord
	}
	return result
}

func (s *Stepper) visit(cell *Cell) {
	cell.state = Visited
	s.current = cell
	s.stats.Visited++
}

// expand relaxes every passable, non-finalized neighbour of current.
// Discovering end finalizes it right away.
func (s *Stepper) expand(current *Cell) {
	neighbors := s.grid.NeighborsOf(current)
	if s.algorithm == DFS {
		// the first neighbour should be the first one popped
		for i, j := 0, len(neighbors)-1; i < j; i, j = i+1, j-1 {
			neighbors[i], neighbors[j] = neighbors[j], neighbors[i]
		}
	}

	for _, neighbor := range neighbors {
		if neighbor.isFinalized() {
			continue
		}
		if !s.relax(current, neighbor) {
			continue
		}
		if neighbor == s.end {
			neighbor.state = Visited
			s.stats.Visited++
			s.status = Found
			s.logStatus("end discovered")
			return
		}
	}
}

// relax applies the per-algorithm discovery rule and reports whether the
// neighbour was (re)pushed.
func (s *Stepper) relax(current, neighbor *Cell) bool {
	tentative := current.gScore + edgeCost

	if !s.algorithm.Weighted() {
		if neighbor.isDiscovered() {
			return false
		}
		neighbor.gScore = tentative
		neighbor.fScore = tentative
		neighbor.cameFrom = current
		s.push(neighbor, 0)
		return true
	}

	if tentative >= neighbor.gScore {
		return false
	}
	neighbor.gScore = tentative
	neighbor.fScore = tentative
	if s.heuristic != nil {
		neighbor.fScore = tentative + s.heuristic(neighbor.coord, s.end.coord)
	}
	neighbor.cameFrom = current
	s.push(neighbor, neighbor.fScore)
	return true
}

func (s *Stepper) push(cell *Cell, key float64) {
	cell.state = Frontier
	s.frontier.Push(Entry{Key: key, Cell: cell, Seq: s.seq})
	s.seq++
	s.stats.Pushed++
	if n := s.frontier.Len(); n > s.stats.MaxFrontier {
		s.stats.MaxFrontier = n
	}
}

// ReconstructPath walks cameFrom links from end back to start and returns the
// cells ordered start to end, marking them Path. It fails with ErrNoPath
// unless the status is Found.
func (s *Stepper) ReconstructPath() ([]*Cell, error) {
	if s.status != Found {
		return nil, fmt.Errorf("%w: status is %s", ErrNoPath, s.status)
	}
	path, ok := internal.ReconstructPath(func(cell *Cell) (*Cell, bool) {
		return cell.cameFrom, cell.cameFrom != nil
	}, s.end, s.start)
	if !ok {
		return nil, fmt.Errorf("%w: broken cameFrom chain", ErrNoPath)
	}
	for _, cell := range path {
		cell.state = Path
	}
	return path, nil
}
