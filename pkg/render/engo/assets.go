// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"math"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-shooter/pkg/entity"
	"github.com/opd-ai/go-shooter/pkg/physics"
)

// SpriteKey names one of the generated sprites
type SpriteKey string

const (
	SpritePlayer     SpriteKey = "player"
	SpritePlayerHurt SpriteKey = "player_hurt"
	SpriteEnemy      SpriteKey = "enemy"
	SpriteEnemyFlash SpriteKey = "enemy_flash"
	SpriteMinigun    SpriteKey = "minigun"
	SpriteLaser      SpriteKey = "laser"
	SpriteEnemyShot  SpriteKey = "enemy_shot"
	SpriteStar       SpriteKey = "star"
)

const (
	spritePixelsShips = 32
	spritePixelsSmall = 4
)

// spriteSpec describes how a sprite is rasterised
type spriteSpec struct {
	shape  physics.Shape
	pixels int
	color  color.NRGBA
}

var spriteSpecs = map[SpriteKey]spriteSpec{
	SpritePlayer:     {entity.PlayerShape, spritePixelsShips, color.NRGBA{60, 220, 90, 255}},
	SpritePlayerHurt: {entity.PlayerShape, spritePixelsShips, color.NRGBA{60, 220, 90, 110}},
	SpriteEnemy:      {entity.EnemyShape, spritePixelsShips, color.NRGBA{220, 60, 60, 255}},
	SpriteEnemyFlash: {entity.EnemyShape, spritePixelsShips, color.NRGBA{255, 255, 255, 255}},
	SpriteMinigun:    {entity.BulletShape, spritePixelsSmall, color.NRGBA{255, 230, 80, 255}},
	SpriteLaser:      {entity.BulletShape, spritePixelsSmall, color.NRGBA{80, 230, 255, 255}},
	SpriteEnemyShot:  {entity.BulletShape, spritePixelsSmall, color.NRGBA{255, 140, 40, 255}},
	SpriteStar:       {entity.BulletShape, spritePixelsSmall, color.NRGBA{255, 255, 255, 255}},
}

// bulletSprites maps bullet kinds to their sprite
var bulletSprites = map[entity.BulletKind]SpriteKey{
	entity.Minigun:   SpriteMinigun,
	entity.Laser:     SpriteLaser,
	entity.EnemyShot: SpriteEnemyShot,
}

// AssetManager builds the game's sprites from the collision silhouettes, so
// what is drawn matches what can be hit.
type AssetManager struct {
	images  map[SpriteKey]*image.NRGBA
	sprites map[SpriteKey]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		images:  make(map[SpriteKey]*image.NRGBA),
		sprites: make(map[SpriteKey]common.Drawable),
	}
}

// BuildImages rasterises every sprite. It needs no graphics context.
func (am *AssetManager) BuildImages() {
	for key, spec := range spriteSpecs {
		am.images[key] = rasterize(spec.shape, spec.pixels, spec.color)
	}
}

// LoadAssets uploads every sprite as a texture. It must run on the render
// thread after the window exists.
func (am *AssetManager) LoadAssets() error {
	if len(am.images) == 0 {
		am.BuildImages()
	}
	for key, img := range am.images {
		am.sprites[key] = common.NewTextureSingle(common.NewImageObject(img))
	}
	return nil
}

// Image returns the rasterised image for key, or nil before BuildImages
func (am *AssetManager) Image(key SpriteKey) *image.NRGBA {
	return am.images[key]
}

// Sprite returns the drawable for key, or nil before LoadAssets
func (am *AssetManager) Sprite(key SpriteKey) common.Drawable {
	return am.sprites[key]
}

// BulletSprite returns the drawable for a bullet kind
func (am *AssetManager) BulletSprite(kind entity.BulletKind) common.Drawable {
	if key, ok := bulletSprites[kind]; ok {
		return am.sprites[key]
	}
	return am.sprites[SpriteMinigun]
}

// rasterize paints the leaves of shape into a square image of the given
// side length. Leaf rectangles are scaled from unit fractions to pixels.
func rasterize(shape physics.Shape, pixels int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, pixels, pixels))
	extent := physics.Vector2D{X: float64(pixels), Y: float64(pixels)}
	tree := shape.Build(physics.DefaultGrid, physics.Vector2D{}, extent)

	tree.Each(func(id physics.NodeID, box physics.Hitbox) {
		if !tree.IsLeaf(id) {
			return
		}
		x0 := int(math.Round(box.Point.X))
		y0 := int(math.Round(box.Point.Y))
		x1 := int(math.Round(box.Point.X + box.Size.X))
		y1 := int(math.Round(box.Point.Y + box.Size.Y))
		for y := max(y0, 0); y < min(y1, pixels); y++ {
			for x := max(x0, 0); x < min(x1, pixels); x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	})
	return img
}
