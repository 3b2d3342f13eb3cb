// pkg/physics/tree.go
package physics

import "iter"

// NodeID indexes a node inside a HitboxTree. The root is always RootID.
type NodeID int

// RootID is the index of the root node of every tree
const RootID NodeID = 0

type node struct {
	box      Hitbox
	children []NodeID
}

// HitboxTree is a fixed-shape hierarchy of hitboxes approximating one
// entity's silhouette. The root spans the whole entity and children cover
// sub-parts at increasing resolution. Node positions change only through
// Translate; the shape itself never changes after Build.
type HitboxTree struct {
	nodes []node
	grid  Grid
}

// TreeBuilder assembles the nodes of a HitboxTree before it is frozen
type TreeBuilder struct {
	nodes []node
}

// NewTreeBuilder starts a tree whose root is the given box
func NewTreeBuilder(root Hitbox) *TreeBuilder {
	return &TreeBuilder{
		nodes: []node{{box: root}},
	}
}

// Root returns the root node handle
func (b *TreeBuilder) Root() NodeID {
	return RootID
}

// Add appends box as the last child of parent and returns the new node's handle
func (b *TreeBuilder) Add(parent NodeID, box Hitbox) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, node{box: box})
	b.nodes[parent].children = append(b.nodes[parent].children, id)
	return id
}

// Build freezes the builder into a tree that uses grid for its broad phase.
// The builder may be reused afterwards without affecting the returned tree.
func (b *TreeBuilder) Build(grid Grid) *HitboxTree {
	nodes := make([]node, len(b.nodes))
	for i, n := range b.nodes {
		nodes[i] = node{
			box:      n.box,
			children: append([]NodeID(nil), n.children...),
		}
	}
	return &HitboxTree{
		nodes: nodes,
		grid:  grid,
	}
}

// NewSingleHitboxTree creates a root-only tree, used for small entities
// such as bullets where the root is its own leaf.
func NewSingleHitboxTree(grid Grid, box Hitbox) *HitboxTree {
	return NewTreeBuilder(box).Build(grid)
}

// Len returns the number of nodes in the tree
func (t *HitboxTree) Len() int {
	return len(t.nodes)
}

// Grid returns the broad-phase grid the tree was built with
func (t *HitboxTree) Grid() Grid {
	return t.grid
}

// Root returns the whole-entity bounding box
func (t *HitboxTree) Root() Hitbox {
	return t.nodes[RootID].box
}

// Box returns the hitbox stored at id
func (t *HitboxTree) Box(id NodeID) Hitbox {
	return t.nodes[id].box
}

// Children returns the ordered child handles of id. The slice must not be modified.
func (t *HitboxTree) Children(id NodeID) []NodeID {
	return t.nodes[id].children
}

// IsLeaf reports whether id has no children
func (t *HitboxTree) IsLeaf(id NodeID) bool {
	return len(t.nodes[id].children) == 0
}

// Translate shifts every node by delta, preserving the relative geometry
func (t *HitboxTree) Translate(delta Vector2D) {
	for i := range t.nodes {
		t.nodes[i].box.Translate(delta)
	}
}

// Each calls fn once for every node. Nodes are visited in arena order,
// which is breadth-first for trees built from a Shape.
func (t *HitboxTree) Each(fn func(id NodeID, box Hitbox)) {
	for i, n := range t.nodes {
		fn(NodeID(i), n.box)
	}
}

// Boxes returns an iterator over every hitbox in the tree
func (t *HitboxTree) Boxes() iter.Seq[Hitbox] {
	return func(yield func(Hitbox) bool) {
		for _, n := range t.nodes {
			if !yield(n.box) {
				return
			}
		}
	}
}

// Overlaps reports whether some leaf of t overlaps some leaf of other.
//
// Pairs whose root anchors are more than one grid cell apart are rejected
// without looking at any box. This only considers the anchor point, so very
// large roots straddling a cell boundary can be missed; that trade-off is
// intentional.
//
// The narrow phase walks both trees coarse-to-fine with one FIFO frontier
// per tree. On a hit between non-leaves the other tree is refined first.
// On a miss the self node is dropped if it is a leaf, otherwise the other
// node is dropped.
func (t *HitboxTree) Overlaps(other *HitboxTree) bool {
	hit, _ := t.overlaps(other)
	return hit
}

// overlaps also reports how many narrow-phase iterations ran
func (t *HitboxTree) overlaps(other *HitboxTree) (bool, int) {
	if !t.grid.Near(t.Root().Point, other.Root().Point) {
		return false, 0
	}

	self := frontier{items: make([]NodeID, 0, len(t.nodes))}
	them := frontier{items: make([]NodeID, 0, len(other.nodes))}
	self.push(RootID)
	them.push(RootID)

	steps := 0
	for !self.empty() && !them.empty() {
		steps++
		a, b := self.front(), them.front()

		if t.nodes[a].box.Overlaps(other.nodes[b].box) {
			switch {
			case t.IsLeaf(a) && other.IsLeaf(b):
				return true, steps
			case !other.IsLeaf(b):
				them.pop()
				them.push(other.nodes[b].children...)
			default:
				self.pop()
				self.push(t.nodes[a].children...)
			}
			continue
		}

		if t.IsLeaf(a) {
			self.pop()
		} else {
			them.pop()
		}
	}
	return false, steps
}

// frontier is a FIFO queue of node handles. Items are never reclaimed
// during a single search, which is bounded by the tree size.
type frontier struct {
	items []NodeID
	head  int
}

func (f *frontier) push(ids ...NodeID) {
	f.items = append(f.items, ids...)
}

func (f *frontier) front() NodeID {
	return f.items[f.head]
}

func (f *frontier) pop() {
	f.head++
}

func (f *frontier) empty() bool {
	return f.head >= len(f.items)
}
