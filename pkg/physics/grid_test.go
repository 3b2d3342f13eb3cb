// pkg/physics/grid_test.go
package physics

import "testing"

func TestGrid_Cell(t *testing.T) {
	grid := NewGrid(Vector2D{X: 10, Y: 10}, Vector2D{X: 100, Y: 200})

	tests := []struct {
		name  string
		point Vector2D
		x, y  int
	}{
		{name: "origin", point: Vector2D{X: 0, Y: 0}, x: 0, y: 0},
		{name: "inside_first_cell", point: Vector2D{X: 9.99, Y: 19.99}, x: 0, y: 0},
		{name: "cell_boundary", point: Vector2D{X: 10, Y: 20}, x: 1, y: 1},
		{name: "far_corner", point: Vector2D{X: 99, Y: 199}, x: 9, y: 9},
		{name: "negative_floors_down", point: Vector2D{X: -0.5, Y: -25}, x: -1, y: -2},
		{name: "beyond_playfield", point: Vector2D{X: 150, Y: 400}, x: 15, y: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := grid.Cell(tt.point)
			if x != tt.x || y != tt.y {
				t.Errorf("Cell(%v) = (%d, %d), expected (%d, %d)", tt.point, x, y, tt.x, tt.y)
			}
		})
	}
}

func TestGrid_Near(t *testing.T) {
	grid := DefaultGrid // 92x69 cells

	tests := []struct {
		name     string
		a, b     Vector2D
		expected bool
	}{
		{name: "same_cell", a: Vector2D{X: 10, Y: 10}, b: Vector2D{X: 20, Y: 20}, expected: true},
		{name: "adjacent_x", a: Vector2D{X: 10, Y: 10}, b: Vector2D{X: 100, Y: 10}, expected: true},
		{name: "diagonal_neighbour", a: Vector2D{X: 10, Y: 10}, b: Vector2D{X: 100, Y: 80}, expected: true},
		{name: "two_cells_x", a: Vector2D{X: 10, Y: 10}, b: Vector2D{X: 190, Y: 10}, expected: false},
		{name: "two_cells_y", a: Vector2D{X: 10, Y: 10}, b: Vector2D{X: 10, Y: 140}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.Near(tt.a, tt.b); got != tt.expected {
				t.Errorf("Near(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
			if got := grid.Near(tt.b, tt.a); got != tt.expected {
				t.Errorf("Near(%v, %v) = %v, expected %v", tt.b, tt.a, got, tt.expected)
			}
		})
	}
}

func TestGrid_CellSize(t *testing.T) {
	size := DefaultGrid.CellSize()
	if size.X != 92 || size.Y != 69 {
		t.Errorf("CellSize() = %v, expected (92, 69)", size)
	}
}
