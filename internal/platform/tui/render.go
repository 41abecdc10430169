package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sunset/internal/core"
)

// halfBlock covers the top half of a cell. Its foreground is the upper
// pixel and its background the lower one, so each terminal row shows two
// surface rows.
const halfBlock = "▀"

// RowsFor returns the number of terminal rows needed for a surface height.
func RowsFor(height int) int {
	return (height + 1) / 2
}

// PixelHeight returns the surface height that fits in the given number of
// terminal rows.
func PixelHeight(rows int) int {
	return rows * 2
}

// cellColors is the pair of pixels shown by one terminal cell.
type cellColors struct {
	top, bottom core.Color
}

// RenderSurface converts a Surface to a styled string of half blocks.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderSurface(r *lipgloss.Renderer, s *core.Surface) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	rows := RowsFor(s.Height())
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*rows*4 + rows)

	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}
		y := row * 2

		x := 0
		for x < s.Width() {
			start := cellAt(s, x, y)

			// Collect consecutive cells with same colors
			n := 0
			for x < s.Width() && cellAt(s, x, y) == start {
				n++
				x++
			}

			style := r.NewStyle().
				Foreground(lipgloss.Color(start.top.Hex())).
				Background(lipgloss.Color(start.bottom.Hex()))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

// cellAt returns the pixel pair for the cell at column x whose upper pixel
// is row y. An odd final row repeats its upper pixel.
func cellAt(s *core.Surface, x, y int) cellColors {
	top := s.Get(x, y)
	if y+1 >= s.Height() {
		return cellColors{top: top, bottom: top}
	}
	return cellColors{top: top, bottom: s.Get(x, y+1)}
}
