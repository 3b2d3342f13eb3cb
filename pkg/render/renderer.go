// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-shooter/pkg/entity"
	"github.com/opd-ai/go-shooter/pkg/logging"
	"github.com/opd-ai/go-shooter/pkg/physics"
)

// NullRenderer draws nothing and logs every call at debug level. It backs
// headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a NullRenderer that logs through logger. A nil
// logger discards everything.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
	}
}

// Frames returns the number of frames presented so far
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// RenderPlayer implements entity.Renderer.
func (d *NullRenderer) RenderPlayer(player *entity.Player) {
	ctx := context.Background()
	if player == nil {
		d.logger.Debug(ctx, "RenderPlayer called with nil player")
		return
	}
	d.logger.Debug(ctx, "RenderPlayer called",
		"player_id", player.ID,
		"health", player.Health,
		"weapon", player.Weapon().GetName(),
	)
}

// RenderEnemy implements entity.Renderer.
func (d *NullRenderer) RenderEnemy(enemy *entity.Enemy) {
	ctx := context.Background()
	if enemy == nil {
		d.logger.Debug(ctx, "RenderEnemy called with nil enemy")
		return
	}
	d.logger.Debug(ctx, "RenderEnemy called",
		"enemy_id", enemy.ID,
		"health", enemy.Health,
	)
}

// RenderBullet implements entity.Renderer.
func (d *NullRenderer) RenderBullet(bullet *entity.Bullet) {
	ctx := context.Background()
	if bullet == nil {
		d.logger.Debug(ctx, "RenderBullet called with nil bullet")
		return
	}
	d.logger.Debug(ctx, "RenderBullet called",
		"bullet_id", bullet.ID,
		"kind", bullet.Kind.String(),
	)
}

// RenderStar implements entity.Renderer.
func (d *NullRenderer) RenderStar(star *entity.Star) {
	if star == nil {
		return
	}
	d.logger.Debug(context.Background(), "RenderStar called", "x", star.Position.X, "y", star.Position.Y)
}

// RenderHitboxes implements entity.Renderer.
func (d *NullRenderer) RenderHitboxes(tree *physics.HitboxTree) {
	if tree == nil {
		return
	}
	d.logger.Debug(context.Background(), "RenderHitboxes called", "nodes", tree.Len())
}

// RenderStatus draws the end-of-game banner.
func (d *NullRenderer) RenderStatus(text string) {
	d.logger.Debug(context.Background(), "RenderStatus called", "text", text)
}
