// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-shooter/pkg/engine"
	"github.com/opd-ai/go-shooter/pkg/entity"
)

const (
	hudMargin    = 10
	hudBarWidth  = 200
	hudBarHeight = 8
	hudBarGap    = 4
	hudZIndex    = 100
)

// HUDSystem draws the player's health and experience bars, the current
// weapon and the end-of-game banner.
type HUDSystem struct {
	font  *common.Font
	state engine.PlayerState
	game  engine.GameStatus

	healthBack *sprite
	healthFill *sprite
	expBack    *sprite
	expFill    *sprite
	weapon     *sprite
	status     *sprite

	// Colors
	backColor   color.Color
	healthColor color.Color
	expColor    color.Color
}

// NewHUDSystem creates a new HUD system. Text is only drawn when font is set.
func NewHUDSystem(font *common.Font) *HUDSystem {
	return &HUDSystem{
		font:        font,
		state:       engine.PlayerState{Health: entity.PlayerMaxHealth},
		backColor:   color.RGBA{60, 60, 60, 200},
		healthColor: color.RGBA{60, 220, 90, 255},
		expColor:    color.RGBA{80, 140, 255, 255},
	}
}

// Attach creates the HUD sprites in sink
func (hud *HUDSystem) Attach(sink renderSink) {
	bar := func(y float32, c color.Color) *sprite {
		s := &sprite{basic: ecs.NewBasic()}
		s.render.Drawable = common.Rectangle{}
		s.render.Color = c
		s.render.SetZIndex(hudZIndex)
		s.space = common.SpaceComponent{
			Position: engo.Point{X: hudMargin, Y: y},
			Width:    hudBarWidth,
			Height:   hudBarHeight,
		}
		sink.Add(&s.basic, &s.render, &s.space)
		return s
	}
	text := func(x, y float32) *sprite {
		s := &sprite{basic: ecs.NewBasic()}
		s.render.Drawable = common.Text{Font: hud.font}
		s.render.Hidden = hud.font == nil
		s.render.SetZIndex(hudZIndex + 1)
		s.space.Position = engo.Point{X: x, Y: y}
		sink.Add(&s.basic, &s.render, &s.space)
		return s
	}

	expY := float32(hudMargin + hudBarHeight + hudBarGap)
	hud.healthBack = bar(hudMargin, hud.backColor)
	hud.healthFill = bar(hudMargin, hud.healthColor)
	hud.expBack = bar(expY, hud.backColor)
	hud.expFill = bar(expY, hud.expColor)
	hud.weapon = text(hudMargin, expY+hudBarHeight+hudBarGap)
	hud.status = text(0, 0)
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update resizes the bars and refreshes the text
func (hud *HUDSystem) Update(dt float32) {
	if hud.healthFill == nil {
		return
	}
	hud.healthFill.space.Width = hudBarWidth * hud.HealthFraction()
	hud.expFill.space.Width = hudBarWidth * hud.ExperienceFraction()

	if hud.font == nil {
		return
	}
	hud.weapon.render.Drawable = common.Text{Font: hud.font, Text: hud.WeaponText()}

	banner := hud.game.Text()
	hud.status.render.Hidden = banner == ""
	hud.status.render.Drawable = common.Text{Font: hud.font, Text: banner}
	hud.status.space.Position = engo.Point{
		X: (engo.GameWidth() - float32(float64(len(banner))*hud.font.Size/2)) / 2,
		Y: engo.GameHeight() / 2,
	}
}

// UpdateGameState updates the HUD with the current game state
func (hud *HUDSystem) UpdateGameState(state *engine.GameState) {
	hud.state = state.Player
	hud.game = state.Status
}

// HealthFraction returns the filled share of the health bar
func (hud *HUDSystem) HealthFraction() float32 {
	return fraction(hud.state.Health, entity.PlayerMaxHealth)
}

// ExperienceFraction returns the filled share of the experience bar
func (hud *HUDSystem) ExperienceFraction() float32 {
	return fraction(hud.state.Experience, entity.ExperiencePerLevel)
}

// WeaponText describes the current weapon
func (hud *HUDSystem) WeaponText() string {
	return fmt.Sprintf("%s ( level: %d )", hud.state.Weapon, hud.state.WeaponLevel)
}

func fraction(value, limit float64) float32 {
	return float32(min(max(value/limit, 0), 1))
}
