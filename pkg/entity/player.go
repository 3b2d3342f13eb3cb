// pkg/entity/player.go
package entity

import "github.com/opd-ai/go-shooter/pkg/physics"

const (
	PlayerSize          = 64.0
	PlayerMaxHealth     = 100.0
	PlayerInvincibility = 60  // frames of immunity after a hit
	ExperiencePerLevel  = 100 // experience needed for a weapon level-up
	WeaponCycleDelay    = 50  // bullet spacing added when switching weapons
)

// Player is the ship controlled by the user
type Player struct {
	BaseEntity
	Health              float64
	Experience          float64
	InvincibilityFrames int
	BulletSpacing       int
	Weapons             []Weapon
	CurrentWeapon       int
}

// NewPlayer creates a player at position carrying both weapons
func NewPlayer(grid physics.Grid, position physics.Vector2D) *Player {
	return &Player{
		BaseEntity: newBaseEntity(grid, PlayerShape, position, PlayerSize),
		Health:     PlayerMaxHealth,
		Weapons:    []Weapon{NewMachineGun(), NewWideGun()},
	}
}

// Weapon returns the currently selected weapon
func (p *Player) Weapon() Weapon {
	return p.Weapons[p.CurrentWeapon]
}

// CycleWeapons selects the next weapon and delays the next shot
func (p *Player) CycleWeapons() {
	p.CurrentWeapon = (p.CurrentWeapon + 1) % len(p.Weapons)
	p.BulletSpacing += WeaponCycleDelay
}

// CanFire reports whether the bullet spacing has elapsed
func (p *Player) CanFire() bool {
	return p.BulletSpacing == 0
}

// Shoot fires the current weapon and resets the bullet spacing to its fire rate
func (p *Player) Shoot() []*Bullet {
	w := p.Weapon()
	p.BulletSpacing = w.GetFireRate()
	return w.Fire(p)
}

// Accelerate adds dir to the player's velocity
func (p *Player) Accelerate(dir physics.Vector2D) {
	p.Velocity = p.Velocity.Add(dir)
}

// IsInvincible reports whether the player is immune to damage
func (p *Player) IsInvincible() bool {
	return p.InvincibilityFrames > 0
}

// TakeDamage subtracts amount from the player's health and starts the
// invincibility window. It returns false if the player was already invincible.
func (p *Player) TakeDamage(amount float64) bool {
	if p.IsInvincible() {
		return false
	}
	p.Health -= amount
	p.InvincibilityFrames = PlayerInvincibility
	if p.Health <= 0 {
		p.Health = 0
		p.Alive = false
	}
	return true
}

// AddExperience credits experience towards the next weapon level
func (p *Player) AddExperience(amount float64) {
	p.Experience += amount
}

// TryLevelUp levels up the current weapon once experience reaches
// ExperiencePerLevel, resetting the counter. It reports whether that happened.
func (p *Player) TryLevelUp() bool {
	if p.Experience < ExperiencePerLevel {
		return false
	}
	p.Experience = 0
	p.Weapon().LevelUp()
	return true
}

// Physics applies friction, moves the player and keeps it on the playfield.
// Velocity on a clamped axis is zeroed. Cooldown counters tick down here.
func (p *Player) Physics(friction float64, playfield physics.Vector2D) {
	p.Velocity = p.Velocity.Scale(1 - friction)

	target := p.Position.Add(p.Velocity)
	limit := playfield.Sub(physics.Vector2D{X: p.Size, Y: p.Size})
	clamped := target.Clamp(physics.Vector2D{}, limit)
	if clamped.X != target.X {
		p.Velocity.X = 0
	}
	if clamped.Y != target.Y {
		p.Velocity.Y = 0
	}
	p.Move(clamped.Sub(p.Position))
	p.Tick()
}

// Tick counts down the invincibility and bullet spacing timers
func (p *Player) Tick() {
	if p.InvincibilityFrames > 0 {
		p.InvincibilityFrames--
	}
	if p.BulletSpacing > 0 {
		p.BulletSpacing--
	}
}
