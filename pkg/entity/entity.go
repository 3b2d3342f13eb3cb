// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-shooter/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Collider is implemented by everything that owns a hitbox tree
type Collider interface {
	GetHitboxTree() *physics.HitboxTree
}

// Entity is the base interface for all game objects
type Entity interface {
	Collider
	GetID() ID
	GetPosition() physics.Vector2D
	IsAlive() bool
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities. Position is
// the top-left corner of the entity's square extent.
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Size     float64
	Alive    bool

	tree *physics.HitboxTree
}

// newBaseEntity builds the entity's hitbox tree from its silhouette
func newBaseEntity(grid physics.Grid, shape physics.Shape, position physics.Vector2D, size float64) BaseEntity {
	return BaseEntity{
		ID:       GenerateID(),
		Position: position,
		Size:     size,
		Alive:    true,
		tree:     shape.Build(grid, position, physics.Vector2D{X: size, Y: size}),
	}
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetHitboxTree returns the entity's collision shape
func (e *BaseEntity) GetHitboxTree() *physics.HitboxTree {
	return e.tree
}

// IsAlive reports whether the entity should stay in the game
func (e *BaseEntity) IsAlive() bool {
	return e.Alive
}

// Center returns the midpoint of the entity's extent
func (e *BaseEntity) Center() physics.Vector2D {
	return e.Position.Add(physics.Vector2D{X: e.Size / 2, Y: e.Size / 2})
}

// Move shifts the entity and its hitbox tree by delta
func (e *BaseEntity) Move(delta physics.Vector2D) {
	e.Position = e.Position.Add(delta)
	if e.tree != nil {
		e.tree.Translate(delta)
	}
}

// CollidesWith reports whether the two hitbox trees overlap. The receiver's
// tree drives the search, so call it on the entity with the richer shape.
func (e *BaseEntity) CollidesWith(other Collider) bool {
	if e.tree == nil || other == nil {
		return false
	}
	otherTree := other.GetHitboxTree()
	if otherTree == nil {
		return false
	}
	return e.tree.Overlaps(otherTree)
}

// IsOffScreen reports whether the entity has fully left the playfield.
// Boxes are half-open, so one ending exactly on an edge is already gone.
func (e *BaseEntity) IsOffScreen(playfield physics.Vector2D) bool {
	return e.Position.X+e.Size <= 0 ||
		e.Position.Y+e.Size <= 0 ||
		e.Position.X >= playfield.X ||
		e.Position.Y >= playfield.Y
}

var nextID atomic.Uint64

// GenerateID generates a unique ID for entities
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Render dispatches to the renderer method for each entity type
func (p *Player) Render(r Renderer) {
	r.RenderPlayer(p)
}

func (e *Enemy) Render(r Renderer) {
	r.RenderEnemy(e)
}

func (b *Bullet) Render(r Renderer) {
	r.RenderBullet(b)
}
