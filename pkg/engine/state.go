package engine

import (
	"github.com/opd-ai/go-shooter/pkg/physics"
)

// GameState represents a snapshot of the game state
type GameState struct {
	Tick         uint64
	Status       GameStatus
	Player       PlayerState
	Enemies      []physics.Vector2D // enemy centres
	Bullets      int
	EnemyBullets int
	Stars        int
	Stats        Stats
}

// PlayerState represents a snapshot of the player's state
type PlayerState struct {
	Center        physics.Vector2D
	Velocity      physics.Vector2D
	Health        float64
	Experience    float64
	Weapon        string
	WeaponLevel   int
	Invincible    bool
	BulletSpacing int
}

// GetGameState returns a snapshot of the current game state
func (g *Game) GetGameState() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.createGameStateSnapshot()
}

// createGameStateSnapshot builds the snapshot; the caller holds the lock.
func (g *Game) createGameStateSnapshot() *GameState {
	enemies := make([]physics.Vector2D, len(g.Enemies))
	for i, e := range g.Enemies {
		enemies[i] = e.Center()
	}
	return &GameState{
		Tick:         g.CurrentTick,
		Status:       g.Status,
		Player:       g.getPlayerState(),
		Enemies:      enemies,
		Bullets:      len(g.Bullets),
		EnemyBullets: len(g.EnemyBullets),
		Stars:        len(g.Stars),
		Stats:        g.Stats,
	}
}

// getPlayerState creates a snapshot of the player.
func (g *Game) getPlayerState() PlayerState {
	p := g.Player
	w := p.Weapon()
	return PlayerState{
		Center:        p.Center(),
		Velocity:      p.Velocity,
		Health:        p.Health,
		Experience:    p.Experience,
		Weapon:        w.GetName(),
		WeaponLevel:   w.GetLevel(),
		Invincible:    p.IsInvincible(),
		BulletSpacing: p.BulletSpacing,
	}
}
