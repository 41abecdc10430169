package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sunset/internal/core"
)

func newRenderer(p termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(p)
	return r
}

func TestRowsFor(t *testing.T) {
	tests := []struct {
		height, rows int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{48, 24},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.rows, RowsFor(tt.height), "height %d", tt.height)
	}
	assert.Equal(t, 46, PixelHeight(23))
}

func TestRenderSurfaceShape(t *testing.T) {
	s := core.NewSurface(4, 3)
	out := RenderSurface(newRenderer(termenv.Ascii), s)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, strings.Repeat(halfBlock, 4), line)
	}
}

func TestRenderSurfaceColors(t *testing.T) {
	s := core.NewSurface(3, 2)
	s.HLine(0, 0, 3, core.Orange)
	s.HLine(0, 1, 3, core.Ocean)

	out := RenderSurface(newRenderer(termenv.TrueColor), s)

	assert.Contains(t, out, "38;2;255;140;0", "upper pixel is the foreground")
	assert.Contains(t, out, "48;2;0;0;255", "lower pixel is the background")
	assert.Equal(t, 1, strings.Count(out, "38;2;"), "equal cells share one style run")
	assert.Equal(t, 3, strings.Count(out, halfBlock))
}

func TestRenderSurfaceRuns(t *testing.T) {
	s := core.NewSurface(4, 2)
	s.Set(2, 0, core.DeepRed)

	out := RenderSurface(newRenderer(termenv.TrueColor), s)
	assert.Equal(t, 3, strings.Count(out, "38;2;"), "black, red, black runs")
}

func TestCellAtOddHeight(t *testing.T) {
	s := core.NewSurface(1, 3)
	s.Set(0, 2, core.SkyBlue)

	c := cellAt(s, 0, 2)
	assert.Equal(t, core.SkyBlue, c.top)
	assert.Equal(t, core.SkyBlue, c.bottom)
}

func TestRenderSurfaceNilRenderer(t *testing.T) {
	s := core.NewSurface(2, 2)
	out := RenderSurface(nil, s)
	assert.Equal(t, 2, strings.Count(out, halfBlock))
}
