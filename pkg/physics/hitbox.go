// pkg/physics/hitbox.go
package physics

// Hitbox is an axis-aligned rectangle anchored at its top-left corner.
// Sizes are expected to be non-negative; nothing enforces it.
type Hitbox struct {
	Point Vector2D
	Size  Vector2D
}

// NewHitbox creates a hitbox at point with the given width and height
func NewHitbox(point, size Vector2D) Hitbox {
	return Hitbox{
		Point: point,
		Size:  size,
	}
}

// NewSquareHitbox creates a hitbox whose width and height are both side
func NewSquareHitbox(point Vector2D, side float64) Hitbox {
	return NewHitbox(point, Vector2D{X: side, Y: side})
}

// Translate moves the hitbox by delta
func (h *Hitbox) Translate(delta Vector2D) {
	h.Point = h.Point.Add(delta)
}

// Overlaps reports whether the two rectangles intersect on both axes.
// Intervals are half-open, so boxes that only share an edge do not overlap.
func (h Hitbox) Overlaps(other Hitbox) bool {
	return h.Point.X < other.Point.X+other.Size.X &&
		h.Point.X+h.Size.X > other.Point.X &&
		h.Point.Y < other.Point.Y+other.Size.Y &&
		h.Point.Y+h.Size.Y > other.Point.Y
}

// Max returns the bottom-right corner
func (h Hitbox) Max() Vector2D {
	return h.Point.Add(h.Size)
}

// Center returns the midpoint of the box
func (h Hitbox) Center() Vector2D {
	return h.Point.Add(h.Size.Scale(0.5))
}
