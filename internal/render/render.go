// Package render draws grid search state as text for terminals.
package render

import (
	"io"
	"strings"

	"github.com/pdrpinto/gridsearch"
)

// Glyphs maps each display role to a rune.
type Glyphs struct {
	Start, End, Barrier, Open, Frontier, Visited, Path rune
}

// DefaultGlyphs is the plain ASCII palette.
var DefaultGlyphs = Glyphs{
	Start:    'S',
	End:      'E',
	Barrier:  '#',
	Open:     '.',
	Frontier: 'o',
	Visited:  'x',
	Path:     '*',
}

// Grid renders one line per row. Endpoints take precedence over search state.
func Grid(grid *gridsearch.Grid, glyphs Glyphs) string {
	var b strings.Builder
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			b.WriteRune(glyphFor(grid, grid.Cell(row, col), glyphs))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func glyphFor(grid *gridsearch.Grid, cell *gridsearch.Cell, glyphs Glyphs) rune {
	switch {
	case cell == grid.Start():
		return glyphs.Start
	case cell == grid.End():
		return glyphs.End
	case cell.Blocked():
		return glyphs.Barrier
	}
	switch cell.State() {
	case gridsearch.Frontier:
		return glyphs.Frontier
	case gridsearch.Visited:
		return glyphs.Visited
	case gridsearch.Path:
		return glyphs.Path
	default:
		return glyphs.Open
	}
}

// Frame writes a rendered grid followed by a blank line.
func Frame(w io.Writer, grid *gridsearch.Grid, glyphs Glyphs) error {
	_, err := io.WriteString(w, Grid(grid, glyphs)+"\n")
	return err
}
