package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/scenario"
)

func TestGrid_RendersSearchStates(t *testing.T) {
	grid, err := scenario.ParseLayout([]string{
		"S..",
		".#.",
		"..E",
	})
	require.NoError(t, err)
	assert.Equal(t, "S..\n.#.\n..E\n", Grid(grid, DefaultGlyphs))

	stepper, err := gridsearch.NewStepper(grid, gridsearch.BFS, grid.Start(), grid.End())
	require.NoError(t, err)
	_, err = stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, "So.\no#.\n..E\n", Grid(grid, DefaultGlyphs))

	_, err = gridsearch.RunToCompletion(context.Background(), stepper)
	require.NoError(t, err)
	rendered := Grid(grid, DefaultGlyphs)
	assert.Equal(t, 3, bytes.Count([]byte(rendered), []byte("*")), "three interior path cells")
}

func TestFrame_AppendsBlankLine(t *testing.T) {
	grid, err := scenario.ParseLayout([]string{"SE"})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Frame(&buf, grid, DefaultGlyphs))
	assert.Equal(t, "SE\n\n", buf.String())
}
