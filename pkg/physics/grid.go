// pkg/physics/grid.go
package physics

import "math"

// DefaultPlayfield is the logical playfield size in pixels
var DefaultPlayfield = Vector2D{X: 920, Y: 690}

// DefaultGrid splits the playfield into 10x10 cells for the broad phase
var DefaultGrid = Grid{
	Cells:     Vector2D{X: 10, Y: 10},
	Playfield: DefaultPlayfield,
}

// Grid is the coarse logical grid used to reject distant tree pairs before
// any box is examined.
type Grid struct {
	Cells     Vector2D // cells per axis
	Playfield Vector2D // playfield extent the cells divide
}

// NewGrid creates a grid with cells x rows over the given playfield
func NewGrid(cells, playfield Vector2D) Grid {
	return Grid{
		Cells:     cells,
		Playfield: playfield,
	}
}

// CellSize returns the extent of a single cell
func (g Grid) CellSize() Vector2D {
	return Vector2D{
		X: g.Playfield.X / g.Cells.X,
		Y: g.Playfield.Y / g.Cells.Y,
	}
}

// Cell maps a point to its grid cell. Points outside the playfield map to
// cells outside [0, Cells), which still compare correctly in Near.
func (g Grid) Cell(p Vector2D) (int, int) {
	return int(math.Floor(p.X * g.Cells.X / g.Playfield.X)),
		int(math.Floor(p.Y * g.Cells.Y / g.Playfield.Y))
}

// Near reports whether a and b fall in the same or adjacent cells on both axes.
func (g Grid) Near(a, b Vector2D) bool {
	ax, ay := g.Cell(a)
	bx, by := g.Cell(b)
	return abs(ax-bx) <= 1 && abs(ay-by) <= 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
