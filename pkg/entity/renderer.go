package entity

import "github.com/opd-ai/go-shooter/pkg/physics"

// Renderer handles rendering game entities
type Renderer interface {
	RenderPlayer(player *Player)
	RenderEnemy(enemy *Enemy)
	RenderBullet(bullet *Bullet)
	RenderStar(star *Star)
	// RenderHitboxes draws every box of a tree, for debugging collisions
	RenderHitboxes(tree *physics.HitboxTree)
	Clear()
	Present()
}
