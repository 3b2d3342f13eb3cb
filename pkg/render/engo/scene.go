// pkg/render/engo/scene.go
package engo

import (
	"bytes"
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-shooter/pkg/engine"
	"github.com/opd-ai/go-shooter/pkg/logging"
)

const (
	fontURL  = "go-regular.ttf"
	fontSize = 14

	// at most this many game ticks are caught up in one frame
	maxStepsPerFrame = 5
)

// Options controls the game window
type Options struct {
	Title        string
	Width        int
	Height       int
	ShowHitboxes bool
}

// GameScene runs an engine.Game inside an engo window
type GameScene struct {
	ctx     context.Context
	game    *engine.Game
	logger  *logging.Logger
	options Options

	assets   *AssetManager
	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem
	clock    tickClock

	err error
}

// NewGameScene creates a new game scene. The window defaults to the
// playfield size.
func NewGameScene(ctx context.Context, game *engine.Game, logger *logging.Logger, options Options) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	if options.Width <= 0 || options.Height <= 0 {
		options.Width = int(game.Playfield.X)
		options.Height = int(game.Playfield.Y)
	}
	if options.Title == "" {
		options.Title = "go-shooter"
	}
	return &GameScene{
		ctx:     ctx,
		game:    game,
		logger:  logger,
		options: options,
		assets:  NewAssetManager(),
		input:   NewInputSystem(),
		clock:   newTickClock(game.Config.Simulation.TickRate),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		scene.logger.Warn(scene.ctx, "font unavailable, HUD text disabled", "error", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)

	common.SetBackground(color.Black)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	if err := scene.assets.LoadAssets(); err != nil {
		scene.fail(logging.WrapError(err, "load assets"))
		return
	}
	scene.renderer = NewEngoRenderer(renderSystem, scene.assets, scene.game.Playfield, scene.scale())

	scene.hud = NewHUDSystem(scene.loadFont())
	scene.hud.Attach(renderSystem)

	world.AddSystem(scene.input)
	world.AddSystem(&gameSystem{scene: scene})
	world.AddSystem(scene.hud)

	scene.logger.Info(scene.ctx, "scene ready",
		"width", scene.options.Width, "height", scene.options.Height,
		"hitboxes", scene.options.ShowHitboxes)
}

// loadFont prepares the HUD font, or returns nil when it cannot be built
func (scene *GameScene) loadFont() *common.Font {
	fnt := &common.Font{
		URL:  fontURL,
		FG:   color.White,
		Size: fontSize,
	}
	if err := fnt.CreatePreloaded(); err != nil {
		scene.logger.Warn(scene.ctx, "font unavailable, HUD text disabled", "error", err)
		return nil
	}
	return fnt
}

// scale maps playfield pixels to window pixels
func (scene *GameScene) scale() float32 {
	return float32(scene.options.Width) / float32(scene.game.Playfield.X)
}

// fail records the first error and closes the window
func (scene *GameScene) fail(err error) {
	if scene.err == nil {
		scene.err = err
		scene.logger.Error(scene.ctx, "game loop stopped", err)
	}
	engo.Exit()
}

// Err returns the error that stopped the scene, if any
func (scene *GameScene) Err() error {
	return scene.err
}

// frame advances the game for dt seconds and draws the result
func (scene *GameScene) frame(dt float32) {
	for range scene.clock.advance(dt) {
		if err := scene.game.Update(scene.ctx, scene.input.Input()); err != nil {
			scene.fail(err)
			return
		}
	}

	scene.game.Render(scene.renderer, scene.options.ShowHitboxes)
	scene.hud.UpdateGameState(scene.game.GetGameState())

	if scene.game.Quit || scene.ctx.Err() != nil {
		engo.Exit()
	}
}

// Exit is called when the window closes
func (scene *GameScene) Exit() {
	scene.logger.Info(scene.ctx, "window closed", "tick", scene.game.CurrentTick)
}

// Run opens the window and blocks until it is closed
func Run(ctx context.Context, game *engine.Game, logger *logging.Logger, options Options) error {
	scene := NewGameScene(ctx, game, logger, options)
	engo.Run(engo.RunOptions{
		Title:        scene.options.Title,
		Width:        scene.options.Width,
		Height:       scene.options.Height,
		FPSLimit:     game.Config.Simulation.TickRate,
		NotResizable: true,
	}, scene)
	return scene.Err()
}

// gameSystem steps the game from inside the ECS update loop
type gameSystem struct {
	scene *GameScene
}

// Priority places the game step after input sampling and before the HUD
func (s *gameSystem) Priority() int { return 5 }

func (s *gameSystem) Remove(ecs.BasicEntity) {}

func (s *gameSystem) Update(dt float32) {
	s.scene.frame(dt)
}

// tickClock converts variable frame times into fixed game ticks
type tickClock struct {
	step float32
	acc  float32
}

func newTickClock(tickRate int) tickClock {
	return tickClock{step: 1 / float32(max(tickRate, 1))}
}

// advance accumulates dt and returns the number of whole ticks due
func (c *tickClock) advance(dt float32) int {
	c.acc += dt
	n := 0
	for c.acc >= c.step && n < maxStepsPerFrame {
		c.acc -= c.step
		n++
	}
	if n == maxStepsPerFrame {
		c.acc = 0
	}
	return n
}
