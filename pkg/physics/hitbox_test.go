// pkg/physics/hitbox_test.go
package physics

import "testing"

func TestHitbox_Overlaps(t *testing.T) {
	base := NewHitbox(Vector2D{X: 0, Y: 0}, Vector2D{X: 10, Y: 10})

	tests := []struct {
		name     string
		other    Hitbox
		expected bool
	}{
		{
			name:     "same_position",
			other:    base,
			expected: true,
		},
		{
			name:     "partial_overlap",
			other:    NewHitbox(Vector2D{X: 5, Y: 5}, Vector2D{X: 10, Y: 10}),
			expected: true,
		},
		{
			name:     "contained",
			other:    NewHitbox(Vector2D{X: 2, Y: 2}, Vector2D{X: 3, Y: 3}),
			expected: true,
		},
		{
			name:     "touching_right_edge",
			other:    NewHitbox(Vector2D{X: 10, Y: 0}, Vector2D{X: 10, Y: 10}),
			expected: false, // half-open intervals
		},
		{
			name:     "touching_bottom_edge",
			other:    NewHitbox(Vector2D{X: 0, Y: 10}, Vector2D{X: 10, Y: 10}),
			expected: false,
		},
		{
			name:     "overlap_on_x_only",
			other:    NewHitbox(Vector2D{X: 5, Y: 20}, Vector2D{X: 10, Y: 10}),
			expected: false,
		},
		{
			name:     "overlap_on_y_only",
			other:    NewHitbox(Vector2D{X: 20, Y: 5}, Vector2D{X: 10, Y: 10}),
			expected: false,
		},
		{
			name:     "zero_width",
			other:    NewHitbox(Vector2D{X: 5, Y: 5}, Vector2D{X: 0, Y: 3}),
			expected: true,
		},
		{
			name:     "zero_width_on_edge",
			other:    NewHitbox(Vector2D{X: 10, Y: 5}, Vector2D{X: 0, Y: 3}),
			expected: false,
		},
		{
			name:     "negative_coordinates",
			other:    NewHitbox(Vector2D{X: -5, Y: -5}, Vector2D{X: 6, Y: 6}),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tt.expected)
			}
			if got := tt.other.Overlaps(base); got != tt.expected {
				t.Errorf("Overlaps() is not symmetric: reversed = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestHitbox_OverlapsSymmetricGrid(t *testing.T) {
	boxes := make([]Hitbox, 0, 25)
	for x := -2; x <= 2; x++ {
		for y := -2; y <= 2; y++ {
			boxes = append(boxes, NewHitbox(
				Vector2D{X: float64(x) * 3.5, Y: float64(y) * 2.5},
				Vector2D{X: float64(3 + x), Y: float64(4 - y)},
			))
		}
	}

	for i, a := range boxes {
		for j, b := range boxes {
			if a.Overlaps(b) != b.Overlaps(a) {
				t.Fatalf("Overlaps() not symmetric for boxes %d and %d: %v vs %v", i, j, a, b)
			}
		}
	}
}

func TestHitbox_Translate(t *testing.T) {
	box := NewSquareHitbox(Vector2D{X: 1, Y: 2}, 4)
	box.Translate(Vector2D{X: 3, Y: -2})

	if box.Point != (Vector2D{X: 4, Y: 0}) {
		t.Errorf("Translate() point = %v, expected (4, 0)", box.Point)
	}
	if box.Size != (Vector2D{X: 4, Y: 4}) {
		t.Errorf("Translate() changed size to %v", box.Size)
	}
}

func TestHitbox_TranslatedCopyStopsOverlapping(t *testing.T) {
	box := NewHitbox(Vector2D{X: 10, Y: 10}, Vector2D{X: 8, Y: 6})
	moved := box

	if !box.Overlaps(moved) {
		t.Fatal("box should overlap a copy of itself")
	}

	// Shifting by more than both widths separates them on X
	moved.Translate(Vector2D{X: 16.5, Y: 0})
	if box.Overlaps(moved) {
		t.Errorf("boxes should not overlap after translating by %v", 16.5)
	}
}

func TestHitbox_CenterAndMax(t *testing.T) {
	box := NewHitbox(Vector2D{X: 2, Y: 4}, Vector2D{X: 6, Y: 8})

	if got := box.Center(); got != (Vector2D{X: 5, Y: 8}) {
		t.Errorf("Center() = %v, expected (5, 8)", got)
	}
	if got := box.Max(); got != (Vector2D{X: 8, Y: 12}) {
		t.Errorf("Max() = %v, expected (8, 12)", got)
	}
}
