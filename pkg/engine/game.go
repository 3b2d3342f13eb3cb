// pkg/engine/game.go
package engine

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/opd-ai/go-shooter/pkg/config"
	"github.com/opd-ai/go-shooter/pkg/entity"
	"github.com/opd-ai/go-shooter/pkg/event"
	"github.com/opd-ai/go-shooter/pkg/logging"
	"github.com/opd-ai/go-shooter/pkg/physics"
)

// GameStatus reports whether the game is still running
type GameStatus int

const (
	StatusPlaying GameStatus = iota
	StatusWon
	StatusLost
)

// Text returns the banner shown for the status, empty while playing
func (s GameStatus) Text() string {
	switch s {
	case StatusWon:
		return "you win!"
	case StatusLost:
		return "game over"
	default:
		return ""
	}
}

func (s GameStatus) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "playing"
	}
}

const (
	starSpawnChance = 0.03
	enemyShotOffset = 20.0
)

// Stats counts what happened during a game. It is fed by the event bus.
type Stats struct {
	BulletsFired     int
	EnemyHits        int
	EnemiesDestroyed int
	PlayerHits       int
	LevelUps         int
}

// Game represents the core game state and logic
type Game struct {
	Config       *config.GameConfig
	Grid         physics.Grid
	Playfield    physics.Vector2D
	Player       *entity.Player
	Bullets      []*entity.Bullet
	EnemyBullets []*entity.Bullet
	Enemies      []*entity.Enemy
	Stars        []*entity.Star
	EntityLock   sync.RWMutex
	CurrentTick  uint64
	Status       GameStatus
	Quit         bool
	EventBus     *event.Bus
	Stats        Stats

	logger *logging.Logger
	rng    *rand.Rand
}

// NewGame creates a new game with the specified configuration. A nil
// logger discards all output.
func NewGame(cfg *config.GameConfig, logger *logging.Logger) *Game {
	if logger == nil {
		logger = logging.Discard()
	}
	seed := cfg.Simulation.Seed
	game := &Game{
		Config:    cfg,
		Grid:      cfg.Grid(),
		Playfield: cfg.PlayfieldSize(),
		EventBus:  event.NewEventBus(),
		logger:    logger,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	game.initPlayer()
	game.initEnemies()
	game.registerEventHandlers()

	return game
}

// initPlayer places the player at the bottom centre of the playfield.
func (g *Game) initPlayer() {
	position := physics.Vector2D{
		X: g.Playfield.X/2 - entity.PlayerSize/2,
		Y: g.Playfield.Y - entity.PlayerSize - 26,
	}
	g.Player = entity.NewPlayer(g.Grid, position)
}

// initEnemies spawns the enemy formation, column by column.
func (g *Game) initEnemies() {
	ec := g.Config.Enemies
	origin := physics.Vector2D{X: ec.OriginX, Y: ec.OriginY}
	drift := physics.Vector2D{X: ec.DriftSpeed}
	for x := 0; x < ec.Columns; x++ {
		for y := 0; y < ec.Rows; y++ {
			position := origin.
				Add(physics.Vector2D{X: ec.SpacingX}.Scale(float64(x))).
				Add(physics.Vector2D{Y: ec.SpacingY}.Scale(float64(y)))
			g.Enemies = append(g.Enemies, entity.NewEnemy(g.Grid, position, drift))
		}
	}
}

// Update advances the game state by one tick. Once the game is won or lost
// only the quit key is still honoured.
func (g *Game) Update(ctx context.Context, input Input) error {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if input.Held(KeyQuit) {
		g.Quit = true
	}
	if g.Status != StatusPlaying {
		return nil
	}

	g.handleKeys(input)
	if err := g.handleBullets(ctx); err != nil {
		return logging.WrapError(err, "tick %d", g.CurrentTick)
	}
	g.handleEnemies()
	g.handleBackground()

	g.Player.Physics(g.Config.Player.Friction, g.Playfield)
	g.checkLevelUp()
	g.checkEndConditions(ctx)

	g.CurrentTick++
	return nil
}

// handleKeys applies the held keys to the player.
func (g *Game) handleKeys(input Input) {
	acc := g.Config.Player.Acceleration
	if input.Held(KeyUp) {
		g.Player.Accelerate(physics.Vector2D{Y: -acc})
	}
	if input.Held(KeyDown) {
		g.Player.Accelerate(physics.Vector2D{Y: acc})
	}
	if input.Held(KeyLeft) {
		g.Player.Accelerate(physics.Vector2D{X: -acc})
	}
	if input.Held(KeyRight) {
		g.Player.Accelerate(physics.Vector2D{X: acc})
	}
	if input.Held(KeyCycleWeapon) && g.Player.CanFire() {
		g.Player.CycleWeapons()
		w := g.Player.Weapon()
		g.EventBus.Publish(event.NewWeaponEvent(event.WeaponCycled, g, w.GetName(), w.GetLevel()))
	}
	if input.Held(KeyFire) && g.Player.CanFire() {
		g.firePlayerWeapon()
	}
}

// firePlayerWeapon spawns a volley from the current weapon.
func (g *Game) firePlayerWeapon() {
	bullets := g.Player.Shoot()
	g.Bullets = append(g.Bullets, bullets...)
	for _, b := range bullets {
		g.EventBus.Publish(event.NewEntityEvent(event.BulletFired, g, uint64(b.GetID()), len(g.Bullets)))
	}
}

// handleBullets moves all bullets and resolves their hits.
func (g *Game) handleBullets(ctx context.Context) error {
	for _, b := range g.Bullets {
		b.Physics()
	}
	if err := g.resolvePlayerBulletHits(ctx); err != nil {
		return err
	}
	g.Bullets = g.retainBullets(g.Bullets)

	for _, b := range g.EnemyBullets {
		b.Physics()
		g.resolveEnemyBulletHit(b)
	}
	g.EnemyBullets = g.retainBullets(g.EnemyBullets)
	return nil
}

// resolvePlayerBulletHits tests every player bullet against every enemy.
// The enemy tree is the receiver, not the bullet: with a bullet receiver the
// narrow phase only ever reaches the enemy's first child, so the other parts
// of the silhouette could never be hit.
func (g *Game) resolvePlayerBulletHits(ctx context.Context) error {
	if len(g.Bullets) == 0 || len(g.Enemies) == 0 {
		return nil
	}

	enemyTrees := make([]*physics.HitboxTree, len(g.Enemies))
	for i, e := range g.Enemies {
		enemyTrees[i] = e.GetHitboxTree()
	}
	bulletTrees := make([]*physics.HitboxTree, len(g.Bullets))
	for i, b := range g.Bullets {
		bulletTrees[i] = b.GetHitboxTree()
	}

	pairs, err := physics.FindOverlaps(ctx, enemyTrees, bulletTrees, g.Config.Combat.CollisionWorkers)
	if err != nil {
		return err
	}

	for _, p := range pairs {
		enemy, bullet := g.Enemies[p.I], g.Bullets[p.J]
		bullet.Alive = false
		enemy.TakeDamage(bullet.Damage)
		g.EventBus.Publish(event.NewHitEvent(event.EnemyHit, g,
			uint64(bullet.GetID()), uint64(enemy.GetID()), bullet.Damage, enemy.Health))
	}
	return nil
}

// resolveEnemyBulletHit damages the player if the shot lands while the
// player is vulnerable.
func (g *Game) resolveEnemyBulletHit(b *entity.Bullet) {
	if g.Player.IsInvincible() || !g.Player.CollidesWith(b) {
		return
	}
	b.Alive = false
	g.damagePlayer(uint64(b.GetID()), b.Damage)
}

// damagePlayer applies damage from the given source entity.
func (g *Game) damagePlayer(sourceID uint64, amount float64) {
	if !g.Player.TakeDamage(amount) {
		return
	}
	g.EventBus.Publish(event.NewHitEvent(event.PlayerHit, g,
		sourceID, uint64(g.Player.GetID()), amount, g.Player.Health))
}

// retainBullets drops dead and off-screen bullets in place.
func (g *Game) retainBullets(bullets []*entity.Bullet) []*entity.Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		if b.IsAlive() && !b.IsOffScreen(g.Playfield) {
			kept = append(kept, b)
		}
	}
	clear(bullets[len(kept):])
	return kept
}

// handleEnemies moves the formation, lets enemies shoot and ram the player,
// and removes destroyed enemies.
func (g *Game) handleEnemies() {
	n := len(g.Enemies)
	for _, enemy := range g.Enemies {
		if !enemy.IsAlive() {
			g.rewardKill(enemy)
			continue
		}

		enemy.Physics(g.Playfield)
		if g.rng.IntN(g.Config.Enemies.ShootChance*n*n) == 0 {
			g.enemyShoot(enemy, n)
		}
		if !g.Player.IsInvincible() && g.Player.CollidesWith(enemy) {
			g.damagePlayer(uint64(enemy.GetID()), g.Config.Combat.ContactDamage)
		}
	}

	kept := g.Enemies[:0]
	for _, enemy := range g.Enemies {
		if enemy.IsAlive() {
			kept = append(kept, enemy)
		}
	}
	clear(g.Enemies[len(kept):])
	g.Enemies = kept
}

// rewardKill credits experience for a destroyed enemy. The reward shrinks
// with the level of the current weapon.
func (g *Game) rewardKill(enemy *entity.Enemy) {
	level := float64(g.Player.Weapon().GetLevel())
	g.Player.AddExperience(g.Config.Combat.ExpPerKill * math.Pow(g.Config.Combat.ExpDecay, level))
	g.EventBus.Publish(event.NewEntityEvent(event.EnemyDestroyed, g, uint64(enemy.GetID()), len(g.Enemies)-1))
}

// enemyShoot fires a shot aimed at the player. Aim gets noisier the further
// away the player is and the more enemies remain.
func (g *Game) enemyShoot(enemy *entity.Enemy, n int) {
	direction := g.Player.Position.Sub(enemy.Position)
	accuracy := 1.0
	if dist := direction.Length(); dist > 0 {
		accuracy = 1 / dist / float64(n)
	}
	spread := g.Player.Size / 2 * g.rng.NormFloat64() * (1 - accuracy)
	velocity := direction.Add(physics.Vector2D{X: spread, Y: spread}).
		Normalize().
		Scale(g.Config.Combat.ShotSpeed)

	shot := entity.NewBullet(g.Grid, enemy, velocity, physics.Vector2D{Y: enemyShotOffset},
		g.Config.Combat.ShotDamage, entity.EnemyShot)
	g.EnemyBullets = append(g.EnemyBullets, shot)
}

// handleBackground spawns and scrolls the star field.
func (g *Game) handleBackground() {
	if g.rng.Float64() < starSpawnChance {
		normal := math.Abs(g.rng.NormFloat64())
		uniform := g.rng.Float64()
		position := physics.Vector2D{X: g.rng.Float64() * g.Playfield.X}
		size := 1 + 0.5*normal
		speed := 0.3 + 0.3*uniform + 0.3*normal
		g.Stars = append(g.Stars, entity.NewStar(position, size, speed, uniform))
	}

	kept := g.Stars[:0]
	for _, s := range g.Stars {
		s.Physics()
		if !s.IsOffScreen(g.Playfield) {
			kept = append(kept, s)
		}
	}
	clear(g.Stars[len(kept):])
	g.Stars = kept
}

// checkLevelUp upgrades the current weapon once enough experience is banked.
func (g *Game) checkLevelUp() {
	if !g.Player.TryLevelUp() {
		return
	}
	w := g.Player.Weapon()
	g.EventBus.Publish(event.NewWeaponEvent(event.WeaponLevelUp, g, w.GetName(), w.GetLevel()))
}

// checkEndConditions sets the status when all enemies are gone or the
// player has no health left. Losing takes precedence.
func (g *Game) checkEndConditions(ctx context.Context) {
	status := StatusPlaying
	if len(g.Enemies) == 0 {
		status = StatusWon
	}
	if g.Player.Health <= 0 {
		status = StatusLost
	}
	if status == StatusPlaying {
		return
	}

	g.Status = status
	eventType := event.GameWon
	if status == StatusLost {
		eventType = event.GameLost
	}
	g.logger.Info(ctx, "game finished", "status", status.String(), "tick", g.CurrentTick,
		"enemies_destroyed", g.Stats.EnemiesDestroyed, "bullets_fired", g.Stats.BulletsFired)
	g.EventBus.Publish(event.NewGameEvent(eventType, g, g.CurrentTick, status.Text()))
}

// StatusRenderer is implemented by renderers that can draw the end-of-game banner
type StatusRenderer interface {
	RenderStatus(text string)
}

// Render draws the current frame. Hitbox trees are drawn on top of the
// sprites when showHitboxes is set.
func (g *Game) Render(r entity.Renderer, showHitboxes bool) {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	r.Clear()
	for _, s := range g.Stars {
		s.Render(r)
	}
	for _, b := range g.Bullets {
		b.Render(r)
	}
	for _, b := range g.EnemyBullets {
		b.Render(r)
	}
	for _, e := range g.Enemies {
		e.Render(r)
	}
	g.Player.Render(r)

	if showHitboxes {
		g.renderHitboxes(r)
	}
	if sr, ok := r.(StatusRenderer); ok && g.Status != StatusPlaying {
		sr.RenderStatus(g.Status.Text())
	}
	r.Present()
}

// renderHitboxes draws every collision tree in play.
func (g *Game) renderHitboxes(r entity.Renderer) {
	for _, b := range g.Bullets {
		r.RenderHitboxes(b.GetHitboxTree())
	}
	for _, b := range g.EnemyBullets {
		r.RenderHitboxes(b.GetHitboxTree())
	}
	for _, e := range g.Enemies {
		r.RenderHitboxes(e.GetHitboxTree())
	}
	r.RenderHitboxes(g.Player.GetHitboxTree())
}

// registerEventHandlers keeps Stats in step with the event stream.
// Handlers run with EntityLock held and must not call back into Game.
func (g *Game) registerEventHandlers() {
	g.EventBus.Subscribe(event.BulletFired, func(event.Event) { g.Stats.BulletsFired++ })
	g.EventBus.Subscribe(event.EnemyHit, func(event.Event) { g.Stats.EnemyHits++ })
	g.EventBus.Subscribe(event.EnemyDestroyed, func(event.Event) { g.Stats.EnemiesDestroyed++ })
	g.EventBus.Subscribe(event.PlayerHit, func(event.Event) { g.Stats.PlayerHits++ })
	g.EventBus.Subscribe(event.WeaponLevelUp, g.handleWeaponLevelUp)
}

// handleWeaponLevelUp counts and logs weapon upgrades.
func (g *Game) handleWeaponLevelUp(e event.Event) {
	we, ok := e.(*event.WeaponEvent)
	if !ok {
		return
	}
	g.Stats.LevelUps++
	g.logger.Debug(context.Background(), "weapon level up", "weapon", we.Weapon, "level", we.Level)
}
