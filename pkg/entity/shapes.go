package entity

import "github.com/opd-ai/go-shooter/pkg/physics"

// Silhouettes are expressed as fractions of the entity's size. Player and
// enemy shapes are kept to a root plus leaf parts.

// PlayerShape follows the player ship pointing up: fuselage, nose cone,
// two swept wings and the engine block at the tail.
var PlayerShape = physics.Shape{
	Size: physics.Whole,
	Children: []physics.Shape{
		{Offset: physics.Vector2D{X: 0.375, Y: 0.15}, Size: physics.Vector2D{X: 0.25, Y: 0.7}},    // fuselage
		{Offset: physics.Vector2D{X: 0.4375, Y: 0}, Size: physics.Vector2D{X: 0.125, Y: 0.15}},    // nose
		{Offset: physics.Vector2D{X: 0, Y: 0.45}, Size: physics.Vector2D{X: 0.375, Y: 0.3}},       // left wing
		{Offset: physics.Vector2D{X: 0.625, Y: 0.45}, Size: physics.Vector2D{X: 0.375, Y: 0.3}},   // right wing
		{Offset: physics.Vector2D{X: 0.3125, Y: 0.85}, Size: physics.Vector2D{X: 0.375, Y: 0.15}}, // engines
	},
}

// EnemyShape follows the enemy ship pointing down
var EnemyShape = physics.Shape{
	Size: physics.Whole,
	Children: []physics.Shape{
		{Offset: physics.Vector2D{X: 0.3, Y: 0}, Size: physics.Vector2D{X: 0.4, Y: 0.8}},   // hull
		{Offset: physics.Vector2D{X: 0.4, Y: 0.8}, Size: physics.Vector2D{X: 0.2, Y: 0.2}}, // nose
		{Offset: physics.Vector2D{X: 0, Y: 0.1}, Size: physics.Vector2D{X: 0.3, Y: 0.5}},   // left wing
		{Offset: physics.Vector2D{X: 0.7, Y: 0.1}, Size: physics.Vector2D{X: 0.3, Y: 0.5}}, // right wing
	},
}

// BulletShape is a single box; the root is its own leaf
var BulletShape = physics.Shape{Size: physics.Whole}
