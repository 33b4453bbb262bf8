package tui

import (
	"math"

	"github.com/okian/boxshot/internal/domain/types"
)

// hudRows is the number of terminal rows reserved above the playfield.
const hudRows = 1

// Layout maps world coordinates onto terminal cells. The playfield fills
// the screen below the HUD and is stretched to the world viewport.
type Layout struct {
	Cols, Rows    int
	Width, Height float64
}

// NewLayout builds a layout for a cols x rows terminal showing a world of
// the given size.
func NewLayout(cols, rows int, width, height float64) Layout {
	return Layout{Cols: cols, Rows: rows, Width: width, Height: height}
}

// Valid reports whether the layout has a non-empty playfield.
func (l Layout) Valid() bool {
	return l.Cols > 0 && l.Rows > hudRows && l.Width > 0 && l.Height > 0
}

func (l Layout) cellW() float64 { return l.Width / float64(l.Cols) }
func (l Layout) cellH() float64 { return l.Height / float64(l.Rows-hudRows) }

// ToCell returns the cell holding world point (x, y). The result may lie
// outside the screen.
func (l Layout) ToCell(x, y float64) (int, int) {
	cx := int(math.Floor(x / l.cellW()))
	cy := int(math.Floor(y/l.cellH())) + hudRows
	return cx, cy
}

// ToWorld returns the world point at the centre of cell (cx, cy). It
// reports false for cells outside the playfield.
func (l Layout) ToWorld(cx, cy int) (types.Point, bool) {
	if cx < 0 || cx >= l.Cols || cy < hudRows || cy >= l.Rows {
		return types.Point{}, false
	}
	return types.Point{
		X: (float64(cx) + 0.5) * l.cellW(),
		Y: (float64(cy-hudRows) + 0.5) * l.cellH(),
	}, true
}

// Rect returns the cells covered by the square at (x, y) with side size,
// clipped to the playfield. ok is false when nothing is visible.
func (l Layout) Rect(x, y, size float64) (x0, y0, x1, y1 int, ok bool) {
	x0, y0 = l.ToCell(x, y)
	x1, y1 = l.ToCell(x+size, y+size)
	x0 = max(x0, 0)
	y0 = max(y0, hudRows)
	x1 = min(x1, l.Cols-1)
	y1 = min(y1, l.Rows-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}
