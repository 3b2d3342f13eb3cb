// Package engine provides unit tests for game.go
package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/opd-ai/go-shooter/pkg/config"
	"github.com/opd-ai/go-shooter/pkg/entity"
	"github.com/opd-ai/go-shooter/pkg/event"
	"github.com/opd-ai/go-shooter/pkg/physics"
)

// testConfig returns a config with a small formation whose enemies
// practically never shoot.
func testConfig(columns, rows int) *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Enemies.Columns = columns
	cfg.Enemies.Rows = rows
	cfg.Enemies.ShootChance = 1 << 40
	return cfg
}

type fixedShooter struct {
	center physics.Vector2D
}

func (s fixedShooter) GetID() entity.ID         { return 0 }
func (s fixedShooter) Center() physics.Vector2D { return s.center }

// bulletAt places a motionless bullet with its top-left corner at (x, y)
func bulletAt(g *Game, x, y, damage float64, kind entity.BulletKind) *entity.Bullet {
	half := entity.BulletSize / 2
	shooter := fixedShooter{center: physics.Vector2D{X: x + half, Y: y + half}}
	return entity.NewBullet(g.Grid, shooter, physics.Vector2D{}, physics.Vector2D{}, damage, kind)
}

func TestNewGame_InitializesState(t *testing.T) {
	game := NewGame(config.DefaultConfig(), nil)

	if len(game.Enemies) != 21 {
		t.Fatalf("expected 21 enemies, got %d", len(game.Enemies))
	}
	tests := []struct {
		index    int
		expected physics.Vector2D
	}{
		{0, physics.Vector2D{X: 80, Y: 50}},
		{1, physics.Vector2D{X: 80, Y: 150}},
		{3, physics.Vector2D{X: 190, Y: 50}},
		{20, physics.Vector2D{X: 740, Y: 250}},
	}
	for _, tt := range tests {
		if got := game.Enemies[tt.index].Position; got != tt.expected {
			t.Errorf("enemy %d at %v, expected %v", tt.index, got, tt.expected)
		}
	}

	if game.Player.Position != (physics.Vector2D{X: 428, Y: 600}) {
		t.Errorf("player at %v, expected (428, 600)", game.Player.Position)
	}
	if game.Status != StatusPlaying {
		t.Errorf("Status = %v, expected playing", game.Status)
	}
}

func TestGame_FireSpawnsBullets(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)

	if err := game.Update(context.Background(), NewInput(KeyFire)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if len(game.Bullets) != 1 {
		t.Fatalf("expected 1 bullet, got %d", len(game.Bullets))
	}
	if game.Stats.BulletsFired != 1 {
		t.Errorf("Stats.BulletsFired = %d, expected 1", game.Stats.BulletsFired)
	}
	// Fire rate 11, then one tick of cooldown.
	if game.Player.BulletSpacing != 10 {
		t.Errorf("BulletSpacing = %d, expected 10", game.Player.BulletSpacing)
	}
	// Spawned at (456, 630) and moved once.
	if got := game.Bullets[0].Position; got != (physics.Vector2D{X: 456, Y: 625}) {
		t.Errorf("bullet at %v, expected (456, 625)", got)
	}

	// Still cooling down: holding fire does nothing.
	game.Update(context.Background(), NewInput(KeyFire))
	if game.Stats.BulletsFired != 1 {
		t.Errorf("fired during cooldown, BulletsFired = %d", game.Stats.BulletsFired)
	}
}

func TestGame_CycleWeaponBlocksFire(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	var cycled []string
	game.EventBus.Subscribe(event.WeaponCycled, func(e event.Event) {
		cycled = append(cycled, e.(*event.WeaponEvent).Weapon)
	})

	game.Update(context.Background(), NewInput(KeyCycleWeapon, KeyFire))

	if game.Player.Weapon().GetName() != "WideGun" {
		t.Errorf("weapon = %s, expected WideGun", game.Player.Weapon().GetName())
	}
	if len(game.Bullets) != 0 {
		t.Errorf("fired %d bullets in the same tick as cycling", len(game.Bullets))
	}
	if game.Player.BulletSpacing != entity.WeaponCycleDelay-1 {
		t.Errorf("BulletSpacing = %d, expected %d", game.Player.BulletSpacing, entity.WeaponCycleDelay-1)
	}
	if len(cycled) != 1 || cycled[0] != "WideGun" {
		t.Errorf("WeaponCycled events = %v", cycled)
	}
}

func TestGame_BulletKillsEnemy(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	// Enemy at (80, 50): the hull spans x 99.2..124.8.
	game.Bullets = append(game.Bullets, bulletAt(game, 108, 70, entity.EnemyMaxHealth, entity.Minigun))

	var won []*event.GameEvent
	game.EventBus.Subscribe(event.GameWon, func(e event.Event) {
		won = append(won, e.(*event.GameEvent))
	})

	if err := game.Update(context.Background(), 0); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if len(game.Bullets) != 0 {
		t.Errorf("bullet should be consumed, %d left", len(game.Bullets))
	}
	if len(game.Enemies) != 0 {
		t.Errorf("enemy should be removed, %d left", len(game.Enemies))
	}
	if game.Player.Experience != 40 {
		t.Errorf("Experience = %v, expected 40", game.Player.Experience)
	}
	if game.Stats.EnemyHits != 1 || game.Stats.EnemiesDestroyed != 1 {
		t.Errorf("Stats = %+v", game.Stats)
	}
	if game.Status != StatusWon || game.Status.Text() != "you win!" {
		t.Errorf("Status = %v (%q), expected won", game.Status, game.Status.Text())
	}
	if len(won) != 1 || won[0].Status != "you win!" {
		t.Errorf("GameWon events = %v", won)
	}

	tick := game.CurrentTick
	game.Update(context.Background(), NewInput(KeyFire))
	if game.CurrentTick != tick || len(game.Bullets) != 0 {
		t.Error("Update() after the game ended should do nothing")
	}
}

func TestGame_BulletDamagesEnemy(t *testing.T) {
	game := NewGame(testConfig(2, 1), nil)
	target := game.Enemies[0]
	game.Bullets = append(game.Bullets, bulletAt(game, 108, 70, 4, entity.Minigun))

	game.Update(context.Background(), 0)

	if target.Health != entity.EnemyMaxHealth-4 {
		t.Errorf("enemy health = %v, expected %v", target.Health, entity.EnemyMaxHealth-4)
	}
	// Flash is set on the hit then ticks down once during enemy physics.
	if target.Flash != entity.EnemyFlashTicks-1 {
		t.Errorf("Flash = %d, expected %d", target.Flash, entity.EnemyFlashTicks-1)
	}
	if len(game.Bullets) != 0 || len(game.Enemies) != 2 {
		t.Errorf("bullets = %d enemies = %d, expected 0 and 2", len(game.Bullets), len(game.Enemies))
	}
}

func TestGame_BulletMissesGapInSilhouette(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	// Inside the enemy's bounding box but below the left wing, beside the nose.
	game.Bullets = append(game.Bullets, bulletAt(game, 80, 100, 4, entity.Minigun))

	game.Update(context.Background(), 0)

	if game.Enemies[0].Health != entity.EnemyMaxHealth {
		t.Errorf("enemy health = %v, bullet should have missed", game.Enemies[0].Health)
	}
	if len(game.Bullets) != 1 {
		t.Errorf("bullet should survive a miss, %d left", len(game.Bullets))
	}
}

func TestGame_EnemyShotHitsPlayer(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	// Player at (428, 600): the fuselage spans x 452..468, y 609.6..644.8.
	game.EnemyBullets = append(game.EnemyBullets, bulletAt(game, 456, 620, 10, entity.EnemyShot))

	game.Update(context.Background(), 0)

	if game.Player.Health != 90 {
		t.Errorf("Health = %v, expected 90", game.Player.Health)
	}
	if game.Player.InvincibilityFrames != entity.PlayerInvincibility-1 {
		t.Errorf("InvincibilityFrames = %d, expected %d", game.Player.InvincibilityFrames, entity.PlayerInvincibility-1)
	}
	if len(game.EnemyBullets) != 0 {
		t.Errorf("shot should be consumed, %d left", len(game.EnemyBullets))
	}

	// A second shot during invincibility passes through.
	game.EnemyBullets = append(game.EnemyBullets, bulletAt(game, 456, 620, 10, entity.EnemyShot))
	game.Update(context.Background(), 0)

	if game.Player.Health != 90 || game.Stats.PlayerHits != 1 {
		t.Errorf("Health = %v PlayerHits = %d while invincible", game.Player.Health, game.Stats.PlayerHits)
	}
	if len(game.EnemyBullets) != 1 {
		t.Errorf("shot should survive while the player is invincible, %d left", len(game.EnemyBullets))
	}
}

func TestGame_PlayerLoses(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	game.Player.Health = 5
	game.EnemyBullets = append(game.EnemyBullets, bulletAt(game, 456, 620, 10, entity.EnemyShot))

	lost := 0
	game.EventBus.Subscribe(event.GameLost, func(event.Event) { lost++ })

	game.Update(context.Background(), 0)

	if game.Status != StatusLost || game.Status.Text() != "game over" {
		t.Errorf("Status = %v (%q), expected lost", game.Status, game.Status.Text())
	}
	if lost != 1 {
		t.Errorf("GameLost published %d times", lost)
	}
}

func TestGame_LosingOutranksWinning(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	game.Player.Health = 5
	// the last enemy and the player are both destroyed on this tick
	game.Bullets = append(game.Bullets, bulletAt(game, 108, 70, entity.EnemyMaxHealth, entity.Minigun))
	game.EnemyBullets = append(game.EnemyBullets, bulletAt(game, 456, 620, 10, entity.EnemyShot))

	won, lost := 0, 0
	game.EventBus.Subscribe(event.GameWon, func(event.Event) { won++ })
	game.EventBus.Subscribe(event.GameLost, func(event.Event) { lost++ })

	game.Update(context.Background(), 0)

	if len(game.Enemies) != 0 || game.Player.Health != 0 {
		t.Fatalf("enemies = %d health = %v, expected both sides destroyed", len(game.Enemies), game.Player.Health)
	}
	if game.Status != StatusLost {
		t.Errorf("Status = %v, expected %v", game.Status, StatusLost)
	}
	if lost != 1 || won != 0 {
		t.Errorf("GameLost = %d GameWon = %d, expected 1 and 0", lost, won)
	}
}

func TestGame_ContactDamage(t *testing.T) {
	tests := []struct {
		name           string
		dying          bool
		expectedHealth float64
		expectedHits   int
	}{
		{"living_enemy_rams_player", false, entity.PlayerMaxHealth - 20, 1},
		{"enemy_destroyed_this_tick_is_harmless", true, entity.PlayerMaxHealth, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := NewGame(testConfig(2, 1), nil)
			rammer := game.Enemies[0]
			rammer.Move(game.Player.Position.Sub(rammer.Position))
			if tt.dying {
				rammer.TakeDamage(entity.EnemyMaxHealth)
			}

			game.Update(context.Background(), 0)

			if game.Player.Health != tt.expectedHealth {
				t.Errorf("Health = %v, expected %v", game.Player.Health, tt.expectedHealth)
			}
			if game.Stats.PlayerHits != tt.expectedHits {
				t.Errorf("PlayerHits = %d, expected %d", game.Stats.PlayerHits, tt.expectedHits)
			}
		})
	}
}

func TestGame_BulletLeavingTopIsRemoved(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	half := entity.BulletSize / 2
	// one step of (0, -5) from Y=-3 ends exactly on Y=-BulletSize
	shooter := fixedShooter{center: physics.Vector2D{X: 500 + half, Y: -3 + half}}
	bullet := entity.NewBullet(game.Grid, shooter, physics.Vector2D{Y: -5}, physics.Vector2D{}, 4, entity.Minigun)
	game.Bullets = append(game.Bullets, bullet)

	game.Update(context.Background(), 0)

	if bullet.Position.Y != -entity.BulletSize {
		t.Fatalf("bullet Y = %v, expected %v", bullet.Position.Y, -entity.BulletSize)
	}
	if len(game.Bullets) != 0 {
		t.Errorf("%d bullets left, expected the bullet above the top edge to be removed", len(game.Bullets))
	}
}

func TestGame_LevelUp(t *testing.T) {
	game := NewGame(testConfig(2, 1), nil)
	game.Player.Experience = 99
	game.Bullets = append(game.Bullets, bulletAt(game, 108, 70, entity.EnemyMaxHealth, entity.Minigun))

	game.Update(context.Background(), 0)

	if game.Player.Weapon().GetLevel() != 1 {
		t.Errorf("weapon level = %d, expected 1", game.Player.Weapon().GetLevel())
	}
	if game.Player.Experience != 0 {
		t.Errorf("Experience = %v, expected 0 after level-up", game.Player.Experience)
	}
	if game.Stats.LevelUps != 1 {
		t.Errorf("Stats.LevelUps = %d, expected 1", game.Stats.LevelUps)
	}
}

func TestGame_KillRewardDecaysWithLevel(t *testing.T) {
	game := NewGame(testConfig(2, 1), nil)
	mg := game.Player.Weapon()
	mg.LevelUp()
	mg.LevelUp()
	game.Bullets = append(game.Bullets, bulletAt(game, 108, 70, entity.EnemyMaxHealth, entity.Minigun))

	game.Update(context.Background(), 0)

	// 40 * 0.7^2
	if got := game.Player.Experience; got < 19.59 || got > 19.61 {
		t.Errorf("Experience = %v, expected 19.6", got)
	}
}

func TestGame_QuitKey(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	game.Update(context.Background(), NewInput(KeyQuit))
	if !game.Quit {
		t.Error("Quit not set after KeyQuit")
	}
}

func TestGame_QuitAfterGameOver(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	game.Status = StatusWon
	tick := game.CurrentTick

	game.Update(context.Background(), NewInput(KeyQuit, KeyFire))

	if !game.Quit {
		t.Error("Quit not set after the game ended")
	}
	if game.CurrentTick != tick || len(game.Bullets) != 0 {
		t.Error("a finished game should not advance")
	}
}

func TestGame_UpdateCanceled(t *testing.T) {
	game := NewGame(testConfig(1, 1), nil)
	game.Bullets = append(game.Bullets, bulletAt(game, 500, 500, 4, entity.Minigun))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := game.Update(ctx, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Update() error = %v, expected context.Canceled", err)
	}
}

func TestGame_CollisionWorkersAgree(t *testing.T) {
	run := func(workers int) *GameState {
		cfg := config.DefaultConfig()
		cfg.Simulation.Seed = 7
		cfg.Combat.CollisionWorkers = workers
		game := NewGame(cfg, nil)
		if err := game.RunTicks(context.Background(), NewAutopilot(), 400); err != nil {
			t.Fatalf("RunTicks(workers=%d) error: %v", workers, err)
		}
		return game.GetGameState()
	}

	serial := run(1)
	parallel := run(4)

	if serial.Stats != parallel.Stats {
		t.Errorf("stats differ: serial %+v parallel %+v", serial.Stats, parallel.Stats)
	}
	if serial.Player != parallel.Player {
		t.Errorf("player differs: serial %+v parallel %+v", serial.Player, parallel.Player)
	}
	if len(serial.Enemies) != len(parallel.Enemies) {
		t.Errorf("enemies differ: serial %d parallel %d", len(serial.Enemies), len(parallel.Enemies))
	}
	if serial.Stats.BulletsFired == 0 {
		t.Error("autopilot never fired")
	}
}

func TestGame_SameSeedSameGame(t *testing.T) {
	run := func() *GameState {
		cfg := config.DefaultConfig()
		cfg.Simulation.Seed = 99
		game := NewGame(cfg, nil)
		pilot := NewAutopilot()
		pilot.CycleEvery = 250
		if err := game.RunTicks(context.Background(), pilot, 600); err != nil {
			t.Fatalf("RunTicks() error: %v", err)
		}
		return game.GetGameState()
	}

	a, b := run(), run()
	if a.Tick != b.Tick || a.Stats != b.Stats || a.Player != b.Player || a.Stars != b.Stars || a.EnemyBullets != b.EnemyBullets {
		t.Errorf("runs with the same seed diverged:\n%+v\n%+v", a, b)
	}
}
