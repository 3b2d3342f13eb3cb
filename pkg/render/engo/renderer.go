// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-shooter/pkg/entity"
	"github.com/opd-ai/go-shooter/pkg/physics"
)

// renderSink receives sprites. *common.RenderSystem implements it.
type renderSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite is one drawable in the render system
type sprite struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
	seen   bool
}

// pool holds anonymous sprites that are reused frame to frame. Sprites past
// the used count are hidden on Present.
type pool struct {
	sprites []*sprite
	used    int
}

var hitboxColor = color.RGBA{255, 0, 255, 255}

// EngoRenderer implements entity.Renderer using the Engo game engine. Each
// game entity keeps its sprite across frames; sprites of entities that were
// not drawn during a frame are removed on Present.
type EngoRenderer struct {
	sink      renderSink
	assets    *AssetManager
	playfield physics.Vector2D
	scale     float32

	entities map[entity.ID]*sprite
	stars    pool
	hitboxes pool
}

// NewEngoRenderer creates a renderer adding sprites to sink. Playfield
// coordinates are multiplied by scale to get screen coordinates.
func NewEngoRenderer(sink renderSink, assets *AssetManager, playfield physics.Vector2D, scale float32) *EngoRenderer {
	return &EngoRenderer{
		sink:      sink,
		assets:    assets,
		playfield: playfield,
		scale:     scale,
		entities:  make(map[entity.ID]*sprite),
	}
}

// worldToScreen converts playfield coordinates to screen coordinates
func (r *EngoRenderer) worldToScreen(pos physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(pos.X) * r.scale,
		Y: float32(pos.Y) * r.scale,
	}
}

// place positions a sprite over a playfield rectangle
func (r *EngoRenderer) place(s *sprite, pos physics.Vector2D, width, height float64) {
	s.space.Position = r.worldToScreen(pos)
	s.space.Width = float32(width) * r.scale
	s.space.Height = float32(height) * r.scale
}

// getOrCreate returns the sprite tracking id, adding it to the sink on first use
func (r *EngoRenderer) getOrCreate(id entity.ID, drawable common.Drawable, z float32) *sprite {
	s, ok := r.entities[id]
	if !ok {
		s = &sprite{basic: ecs.NewBasic()}
		s.render.Drawable = drawable
		s.render.SetZIndex(z)
		r.entities[id] = s
		r.sink.Add(&s.basic, &s.render, &s.space)
	}
	s.seen = true
	s.render.Hidden = false
	return s
}

// next returns the next free sprite of p, growing the pool when needed
func (r *EngoRenderer) next(p *pool, drawable common.Drawable, z float32) *sprite {
	if p.used == len(p.sprites) {
		s := &sprite{basic: ecs.NewBasic()}
		s.render.SetZIndex(z)
		p.sprites = append(p.sprites, s)
		r.sink.Add(&s.basic, &s.render, &s.space)
	}
	s := p.sprites[p.used]
	p.used++
	s.render.Drawable = drawable
	s.render.Hidden = false
	return s
}

// RenderPlayer implements entity.Renderer
func (r *EngoRenderer) RenderPlayer(player *entity.Player) {
	s := r.getOrCreate(player.GetID(), nil, 3)
	s.render.Drawable = r.assets.Sprite(SpritePlayer)
	if player.IsInvincible() {
		s.render.Drawable = r.assets.Sprite(SpritePlayerHurt)
	}
	r.place(s, player.Position, player.Size, player.Size)
}

// RenderEnemy implements entity.Renderer
func (r *EngoRenderer) RenderEnemy(enemy *entity.Enemy) {
	s := r.getOrCreate(enemy.GetID(), nil, 2)
	s.render.Drawable = r.assets.Sprite(SpriteEnemy)
	if enemy.Flash > 0 {
		s.render.Drawable = r.assets.Sprite(SpriteEnemyFlash)
	}
	r.place(s, enemy.Position, enemy.Size, enemy.Size)
}

// RenderBullet implements entity.Renderer
func (r *EngoRenderer) RenderBullet(bullet *entity.Bullet) {
	s := r.getOrCreate(bullet.GetID(), r.assets.BulletSprite(bullet.Kind), 1)
	r.place(s, bullet.Position, bullet.Size, bullet.Size)
}

// RenderStar implements entity.Renderer
func (r *EngoRenderer) RenderStar(star *entity.Star) {
	s := r.next(&r.stars, r.assets.Sprite(SpriteStar), 0)
	level := uint8(80 + 175*min(max(star.Brightness, 0), 1))
	s.render.Color = color.RGBA{level, level, level, 255}
	r.place(s, star.Position, star.Size, star.Size)
}

// RenderHitboxes implements entity.Renderer. Boxes are drawn as outlines
// above every sprite.
func (r *EngoRenderer) RenderHitboxes(tree *physics.HitboxTree) {
	for box := range tree.Boxes() {
		s := r.next(&r.hitboxes, common.Rectangle{BorderWidth: 1, BorderColor: hitboxColor}, 10)
		s.render.Color = color.Transparent
		r.place(s, box.Point, box.Size.X, box.Size.Y)
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.entities {
		s.seen = false
	}
	r.stars.used = 0
	r.hitboxes.used = 0
}

// Present implements entity.Renderer. Entities that were not drawn since
// Clear are gone from the game and their sprites are released.
func (r *EngoRenderer) Present() {
	for id, s := range r.entities {
		if !s.seen {
			r.sink.Remove(s.basic)
			delete(r.entities, id)
		}
	}
	hideUnused(&r.stars)
	hideUnused(&r.hitboxes)
}

func hideUnused(p *pool) {
	for _, s := range p.sprites[p.used:] {
		s.render.Hidden = true
	}
}

// Tracked returns the number of entity sprites currently alive
func (r *EngoRenderer) Tracked() int {
	return len(r.entities)
}
