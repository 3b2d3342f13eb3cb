// pkg/physics/shape.go
package physics

// Shape describes a silhouette as nested rectangles. Offset and Size are
// fractions of the owning entity's extent, so the same literal can be
// instantiated for entities of any size.
type Shape struct {
	Offset   Vector2D
	Size     Vector2D
	Children []Shape
}

// Whole is the unit rectangle covering the full entity extent
var Whole = Vector2D{X: 1, Y: 1}

// Box resolves the shape's rectangle for an entity at origin with the given extent
func (s Shape) Box(origin, extent Vector2D) Hitbox {
	return NewHitbox(origin.Add(s.Offset.Mul(extent)), s.Size.Mul(extent))
}

// Count returns the number of rectangles in the shape, including itself
func (s Shape) Count() int {
	n := 1
	for _, c := range s.Children {
		n += c.Count()
	}
	return n
}

// Build instantiates the shape as a tree. Nodes are laid out breadth-first.
func (s Shape) Build(grid Grid, origin, extent Vector2D) *HitboxTree {
	b := NewTreeBuilder(s.Box(origin, extent))

	type pending struct {
		id    NodeID
		shape Shape
	}
	queue := []pending{{id: b.Root(), shape: s}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, c := range p.shape.Children {
			id := b.Add(p.id, c.Box(origin, extent))
			queue = append(queue, pending{id: id, shape: c})
		}
	}
	return b.Build(grid)
}
