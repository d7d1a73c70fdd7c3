package gridsearch

// Snapshot exposes the per-step state of a search for renderers.
// Coordinate lists are in row-major order.
type Snapshot struct {
	StepIndex int     `json:"step"`
	Algorithm string  `json:"algorithm"`
	Status    Status  `json:"status"`
	Current   *Coord  `json:"current,omitempty"`
	Frontier  []Coord `json:"frontier,omitempty"`
	Visited   []Coord `json:"visited,omitempty"`
	Path      []Coord `json:"path,omitempty"`
	Done      bool    `json:"done"`
	Found     bool    `json:"found"`
	Stats     Stats   `json:"stats"`
}

// Snapshot copies the current cell states out of the grid.
func (s *Stepper) Snapshot() Snapshot {
	snapshot := Snapshot{
		StepIndex: s.stats.Steps,
		Algorithm: s.algorithm.String(),
		Status:    s.status,
		Done:      s.status.IsTerminal(),
		Found:     s.status == Found,
		Stats:     s.stats,
	}
	if s.current != nil {
		current := s.current.coord
		snapshot.Current = &current
	}
	for _, cell := range s.grid.cells {
		switch cell.state {
		case Frontier:
			snapshot.Frontier = append(snapshot.Frontier, cell.coord)
		case Visited:
			snapshot.Visited = append(snapshot.Visited, cell.coord)
		case Path:
			snapshot.Path = append(snapshot.Path, cell.coord)
		}
	}
	return snapshot
}

// Coords projects a cell path onto coordinates.
func Coords(cells []*Cell) []Coord {
	coords := make([]Coord, 0, len(cells))
	for _, cell := range cells {
		coords = append(coords, cell.coord)
	}
	return coords
}
