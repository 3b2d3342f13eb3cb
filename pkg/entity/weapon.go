// pkg/entity/weapon.go
package entity

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-shooter/pkg/physics"
)

// Weapon interface defines the methods all weapons must implement
type Weapon interface {
	GetName() string
	GetLevel() int
	// GetFireRate returns the number of ticks between shots
	GetFireRate() int
	GetInfo() string
	LevelUp()
	Fire(shooter *Player) []*Bullet
}

// BaseWeapon contains common functionality for all weapons
type BaseWeapon struct {
	Name         string
	Level        int
	FireRate     int
	FireOffset   float64
	BulletSpeed  float64
	BulletDamage float64
}

// GetName returns the weapon's name
func (w *BaseWeapon) GetName() string {
	return w.Name
}

// GetLevel returns the weapon's current level
func (w *BaseWeapon) GetLevel() int {
	return w.Level
}

// GetFireRate returns the ticks between shots
func (w *BaseWeapon) GetFireRate() int {
	return w.FireRate
}

// GetInfo returns a HUD label such as "MachineGun ( level: 3 )"
func (w *BaseWeapon) GetInfo() string {
	return fmt.Sprintf("%s ( level: %d )", w.Name, w.Level)
}

const (
	machineGunFireRate    = 11
	machineGunMinFireRate = 6
	machineGunMaxWidth    = 3
)

// MachineGun fires a straight volley that widens as it levels up
type MachineGun struct {
	BaseWeapon
	PatternWidth int
}

// NewMachineGun creates a level 0 machine gun
func NewMachineGun() *MachineGun {
	return &MachineGun{
		BaseWeapon: BaseWeapon{
			Name:         "MachineGun",
			Level:        0,
			FireRate:     machineGunFireRate,
			FireOffset:   3,
			BulletSpeed:  5,
			BulletDamage: 4,
		},
	}
}

// LevelUp widens the volley every four levels starting at level 2 and
// shortens the fire rate on even levels.
func (m *MachineGun) LevelUp() {
	m.Level++
	if m.Level > 1 && (m.Level-2)%4 == 0 {
		m.PatternWidth = min(m.PatternWidth+1, machineGunMaxWidth)
	}
	if m.Level%2 == 0 {
		m.FireRate = max(m.FireRate-1, machineGunMinFireRate)
	}
}

// Fire spawns 2*PatternWidth+1 bullets in a shallow V
func (m *MachineGun) Fire(shooter *Player) []*Bullet {
	grid := shooter.GetHitboxTree().Grid()
	bullets := make([]*Bullet, 0, 2*m.PatternWidth+1)
	for n := -m.PatternWidth; n <= m.PatternWidth; n++ {
		offset := physics.Vector2D{
			X: float64(n) * 10,
			Y: math.Abs(float64(n))*2.5 - 1 + m.FireOffset,
		}
		velocity := physics.Vector2D{Y: -m.BulletSpeed}
		bullets = append(bullets, NewBullet(grid, shooter, velocity, offset, m.BulletDamage, Minigun))
	}
	return bullets
}

const (
	wideGunFireRate    = 14
	wideGunMinFireRate = 10
	wideGunMaxBullets  = 5
)

// WideGun fires a fan of lasers that gets wider with every level
type WideGun struct {
	BaseWeapon
	NumBullets int
}

// NewWideGun creates a level 0 wide gun
func NewWideGun() *WideGun {
	return &WideGun{
		BaseWeapon: BaseWeapon{
			Name:         "WideGun",
			Level:        0,
			FireRate:     wideGunFireRate,
			FireOffset:   3,
			BulletSpeed:  4.5,
			BulletDamage: 3,
		},
		NumBullets: 1,
	}
}

// LevelUp follows the machine gun schedule, adding a bullet to each side
// instead of widening the volley.
func (w *WideGun) LevelUp() {
	w.Level++
	if w.Level > 1 && (w.Level-2)%4 == 0 {
		w.NumBullets = min(w.NumBullets+1, wideGunMaxBullets)
	}
	if w.Level%2 == 0 {
		w.FireRate = max(w.FireRate-1, wideGunMinFireRate)
	}
}

// Fire spawns 2*NumBullets+1 lasers spreading outwards
func (w *WideGun) Fire(shooter *Player) []*Bullet {
	grid := shooter.GetHitboxTree().Grid()
	bullets := make([]*Bullet, 0, 2*w.NumBullets+1)
	for n := -w.NumBullets; n <= w.NumBullets; n++ {
		fn := float64(n)
		offset := physics.Vector2D{
			X: fn * 10,
			Y: fn*fn*1.5 - 1 + w.FireOffset,
		}
		velocity := physics.Vector2D{X: fn * 0.4, Y: -w.BulletSpeed}
		bullets = append(bullets, NewBullet(grid, shooter, velocity, offset, w.BulletDamage, Laser))
	}
	return bullets
}
