package entity

import "github.com/opd-ai/go-shooter/pkg/physics"

const (
	EnemySize       = 64.0
	EnemyMaxHealth  = 20.0
	EnemyFlashTicks = 5
)

// Enemy is a ship in the opposing formation
type Enemy struct {
	BaseEntity
	Health float64
	Flash  int // ticks left to draw the hit flash
}

// NewEnemy creates an enemy at position drifting with velocity
func NewEnemy(grid physics.Grid, position, velocity physics.Vector2D) *Enemy {
	e := &Enemy{
		BaseEntity: newBaseEntity(grid, EnemyShape, position, EnemySize),
		Health:     EnemyMaxHealth,
	}
	e.Velocity = velocity
	return e
}

// TakeDamage applies a bullet hit and reports whether the enemy was destroyed
func (e *Enemy) TakeDamage(amount float64) bool {
	e.Health -= amount
	e.Flash = EnemyFlashTicks
	if e.Health <= 0 {
		e.Alive = false
		return true
	}
	return false
}

// Physics drifts the enemy sideways, bouncing off the playfield edges
func (e *Enemy) Physics(playfield physics.Vector2D) {
	next := e.Position.Add(e.Velocity)
	if next.X < 0 || next.X+e.Size > playfield.X {
		e.Velocity.X = -e.Velocity.X
		next = e.Position.Add(e.Velocity)
	}
	e.Move(next.Sub(e.Position))

	if e.Flash > 0 {
		e.Flash--
	}
}
