// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-shooter/pkg/entity"
	"github.com/opd-ai/go-shooter/pkg/physics"
)

var (
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePlayerHurt = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleEnemy      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleEnemyFlash = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHitbox     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// bulletGlyphs maps a bullet kind to its glyph and style
var bulletGlyphs = map[entity.BulletKind]struct {
	r     rune
	style tcell.Style
}{
	entity.Minigun:   {'|', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	entity.Laser:     {'!', tcell.StyleDefault.Foreground(tcell.ColorAqua)},
	entity.EnemyShot: {'*', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
}

// TerminalRenderer draws the playfield on a character grid. The whole
// playfield is scaled to fit the screen, leaving the bottom row for the HUD.
type TerminalRenderer struct {
	screen    tcell.Screen
	playfield physics.Vector2D
	width     int
	height    int
	hud       string
}

// NewTerminalRenderer creates a renderer on an initialised screen
func NewTerminalRenderer(screen tcell.Screen, playfield physics.Vector2D) *TerminalRenderer {
	r := &TerminalRenderer{
		screen:    screen,
		playfield: playfield,
	}
	r.Resize()
	return r
}

// Resize re-reads the screen size. Call it after a resize event.
func (r *TerminalRenderer) Resize() {
	w, h := r.screen.Size()
	r.width = max(w, 1)
	r.height = max(h-1, 1)
}

// worldToScreen converts playfield coordinates to a cell
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	x := int(math.Floor(pos.X * float64(r.width) / r.playfield.X))
	y := int(math.Floor(pos.Y * float64(r.height) / r.playfield.Y))
	return x, y
}

// cellRect returns the inclusive cell range covered by box. Every box covers
// at least one cell.
func (r *TerminalRenderer) cellRect(box physics.Hitbox) (x0, y0, x1, y1 int) {
	x0, y0 = r.worldToScreen(box.Point)
	x1, y1 = r.worldToScreen(box.Point.Add(box.Size))
	x1 = max(x0, x1-1)
	y1 = max(y0, y1-1)
	return x0, y0, x1, y1
}

func (r *TerminalRenderer) setCell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *TerminalRenderer) fill(box physics.Hitbox, ch rune, style tcell.Style) {
	x0, y0, x1, y1 := r.cellRect(box)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.setCell(x, y, ch, style)
		}
	}
}

// fillLeaves paints the leaf boxes of a tree, which trace the silhouette
func (r *TerminalRenderer) fillLeaves(tree *physics.HitboxTree, ch rune, style tcell.Style) {
	tree.Each(func(id physics.NodeID, box physics.Hitbox) {
		if tree.IsLeaf(id) {
			r.fill(box, ch, style)
		}
	})
}

// drawText writes s starting at (x, y), clipped to the screen width
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		if x >= r.width {
			return
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
	r.hud = ""
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.drawText(0, r.height, r.hud, styleHUD)
	r.screen.Show()
}

// RenderPlayer implements entity.Renderer. It also records the HUD line.
func (r *TerminalRenderer) RenderPlayer(player *entity.Player) {
	style := stylePlayer
	if player.IsInvincible() {
		style = stylePlayerHurt
	}
	r.fillLeaves(player.GetHitboxTree(), '█', style)
	r.hud = fmt.Sprintf("HP %3.0f  EXP %3.0f/%d  %s",
		player.Health, player.Experience, entity.ExperiencePerLevel, player.Weapon().GetInfo())
}

// RenderEnemy implements entity.Renderer
func (r *TerminalRenderer) RenderEnemy(enemy *entity.Enemy) {
	style := styleEnemy
	if enemy.Flash > 0 {
		style = styleEnemyFlash
	}
	r.fillLeaves(enemy.GetHitboxTree(), '▓', style)
}

// RenderBullet implements entity.Renderer
func (r *TerminalRenderer) RenderBullet(bullet *entity.Bullet) {
	glyph, ok := bulletGlyphs[bullet.Kind]
	if !ok {
		glyph.r, glyph.style = '?', tcell.StyleDefault
	}
	x, y := r.worldToScreen(bullet.Center())
	r.setCell(x, y, glyph.r, glyph.style)
}

// RenderStar implements entity.Renderer
func (r *TerminalRenderer) RenderStar(star *entity.Star) {
	level := int32(80 + 175*math.Min(math.Max(star.Brightness, 0), 1))
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, level, level))
	x, y := r.worldToScreen(star.Position)
	r.setCell(x, y, '.', style)
}

// RenderHitboxes implements entity.Renderer. Each box is outlined by its
// corners so overlapping parts stay readable.
func (r *TerminalRenderer) RenderHitboxes(tree *physics.HitboxTree) {
	for box := range tree.Boxes() {
		x0, y0, x1, y1 := r.cellRect(box)
		r.setCell(x0, y0, '+', styleHitbox)
		r.setCell(x1, y0, '+', styleHitbox)
		r.setCell(x0, y1, '+', styleHitbox)
		r.setCell(x1, y1, '+', styleHitbox)
	}
}

// RenderStatus draws text centred on the playfield
func (r *TerminalRenderer) RenderStatus(text string) {
	n := len([]rune(text))
	r.drawText((r.width-n)/2, r.height/2, text, styleStatus)
}
