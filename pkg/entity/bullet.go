package entity

import "github.com/opd-ai/go-shooter/pkg/physics"

// BulletKind selects how a bullet is drawn and who it can hurt
type BulletKind int

const (
	Minigun BulletKind = iota
	Laser
	EnemyShot
)

// String returns the bullet kind name
func (k BulletKind) String() string {
	switch k {
	case Minigun:
		return "minigun"
	case Laser:
		return "laser"
	case EnemyShot:
		return "enemy"
	default:
		return "unknown"
	}
}

const BulletSize = 8.0

// Shooter is anything bullets can be spawned from
type Shooter interface {
	GetID() ID
	Center() physics.Vector2D
}

// Bullet is a projectile fired by the player or an enemy
type Bullet struct {
	BaseEntity
	Damage  float64
	Kind    BulletKind
	OwnerID ID
}

// NewBullet spawns a bullet centred on the shooter, shifted by offset
func NewBullet(grid physics.Grid, shooter Shooter, velocity, offset physics.Vector2D, damage float64, kind BulletKind) *Bullet {
	half := physics.Vector2D{X: BulletSize / 2, Y: BulletSize / 2}
	position := shooter.Center().Sub(half).Add(offset)
	b := &Bullet{
		BaseEntity: newBaseEntity(grid, BulletShape, position, BulletSize),
		Damage:     damage,
		Kind:       kind,
		OwnerID:    shooter.GetID(),
	}
	b.Velocity = velocity
	return b
}

// IsHostile reports whether the bullet damages the player
func (b *Bullet) IsHostile() bool {
	return b.Kind == EnemyShot
}

// Physics advances the bullet while it is still above the top edge
func (b *Bullet) Physics() {
	if b.Position.Y > -b.Size {
		b.Move(b.Velocity)
	}
}
