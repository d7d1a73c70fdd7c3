// Package scenario builds grids from YAML scenario files, ASCII layouts and a
// seeded clustered-wall generator. Scenarios are read-only inputs.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridsearch"
)

// Layout characters.
const (
	StartRune   = 'S'
	EndRune     = 'E'
	BarrierRune = '#'
	OpenRune    = '.'
)

// MaxCells bounds the boards a scenario or the random generator may build.
const MaxCells = 1 << 22

// CheckSize rejects sizes above limit cells without multiplying rows by cols.
func CheckSize(rows, cols, limit int) error {
	if rows > 0 && cols > 0 && rows > limit/cols {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", gridsearch.ErrInvalidGrid, rows, cols, limit)
	}
	return nil
}

// Scenario describes one grid and, optionally, how to search it.
// Either Layout or Rows/Cols/Start/End/Walls is used; Layout wins.
type Scenario struct {
	Name      string             `yaml:"name"`
	Algorithm string             `yaml:"algorithm"`
	Heuristic string             `yaml:"heuristic"`
	Layout    []string           `yaml:"layout"`
	Rows      int                `yaml:"rows"`
	Cols      int                `yaml:"cols"`
	Start     *gridsearch.Coord  `yaml:"start"`
	End       *gridsearch.Coord  `yaml:"end"`
	Walls     []gridsearch.Coord `yaml:"walls"`
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario yaml: %w", err)
	}
	return &s, nil
}

// Build creates the grid with barriers and endpoints applied.
func (s *Scenario) Build() (*gridsearch.Grid, error) {
	if len(s.Layout) > 0 {
		return ParseLayout(s.Layout)
	}
	if err := CheckSize(s.Rows, s.Cols, MaxCells); err != nil {
		return nil, err
	}
	grid, err := gridsearch.NewGrid(s.Rows, s.Cols)
	if err != nil {
		return nil, err
	}
	for _, wall := range s.Walls {
		cell := grid.CellAt(wall)
		if cell == nil {
			return nil, fmt.Errorf("wall %s is out of bounds", wall)
		}
		grid.SetBlocked(cell, true)
	}
	if s.Start != nil {
		if err := setEndpoint(grid.SetStart, grid, *s.Start, "start"); err != nil {
			return nil, err
		}
	}
	if s.End != nil {
		if err := setEndpoint(grid.SetEnd, grid, *s.End, "end"); err != nil {
			return nil, err
		}
	}
	return grid, nil
}

func setEndpoint(set func(*gridsearch.Cell) error, grid *gridsearch.Grid, coord gridsearch.Coord, name string) error {
	cell := grid.CellAt(coord)
	if cell == nil {
		return fmt.Errorf("%w: %s %s is out of bounds", gridsearch.ErrInvalidEndpoint, name, coord)
	}
	return set(cell)
}

// SearchSettings resolves the scenario's algorithm and heuristic, falling back
// to the given defaults for empty fields.
func (s *Scenario) SearchSettings(defaultAlgorithm gridsearch.Algorithm, defaultHeuristic string) (gridsearch.Algorithm, gridsearch.Heuristic, error) {
	algorithm := defaultAlgorithm
	if s.Algorithm != "" {
		parsed, err := gridsearch.ParseAlgorithm(s.Algorithm)
		if err != nil {
			return 0, nil, err
		}
		algorithm = parsed
	}
	name := defaultHeuristic
	if s.Heuristic != "" {
		name = s.Heuristic
	}
	heuristic, err := gridsearch.ParseHeuristic(name)
	if err != nil {
		return 0, nil, err
	}
	return algorithm, heuristic, nil
}

// ParseLayout builds a grid from rows of 'S', 'E', '#' and '.'.
// Whitespace around each row is ignored; rows must share one width.
func ParseLayout(lines []string) (*gridsearch.Grid, error) {
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			rows = append(rows, trimmed)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty layout", gridsearch.ErrInvalidGrid)
	}

	if err := CheckSize(len(rows), len([]rune(rows[0])), MaxCells); err != nil {
		return nil, err
	}
	grid, err := gridsearch.NewGrid(len(rows), len([]rune(rows[0])))
	if err != nil {
		return nil, err
	}
	var starts, ends int
	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != grid.Cols() {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", gridsearch.ErrInvalidGrid, row, len(runes), grid.Cols())
		}
		for col, r := range runes {
			cell := grid.Cell(row, col)
			switch r {
			case BarrierRune:
				grid.SetBlocked(cell, true)
			case StartRune:
				starts++
				err = grid.SetStart(cell)
			case EndRune:
				ends++
				err = grid.SetEnd(cell)
			case OpenRune:
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %d,%d", gridsearch.ErrInvalidGrid, r, row, col)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	if starts > 1 || ends > 1 {
		return nil, errors.Join(gridsearch.ErrInvalidEndpoint, fmt.Errorf("layout has %d starts and %d ends", starts, ends))
	}
	return grid, nil
}

// Layout renders the barrier/endpoint layout of a grid in ParseLayout's format.
func Layout(grid *gridsearch.Grid) []string {
	lines := make([]string, grid.Rows())
	for row := range lines {
		var b strings.Builder
		for col := 0; col < grid.Cols(); col++ {
			cell := grid.Cell(row, col)
			switch {
			case cell == grid.Start():
				b.WriteRune(StartRune)
			case cell == grid.End():
				b.WriteRune(EndRune)
			case cell.Blocked():
				b.WriteRune(BarrierRune)
			default:
				b.WriteRune(OpenRune)
			}
		}
		lines[row] = b.String()
	}
	return lines
}
