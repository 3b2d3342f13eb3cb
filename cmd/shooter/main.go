// cmd/shooter/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-shooter/pkg/audio"
	"github.com/opd-ai/go-shooter/pkg/config"
	"github.com/opd-ai/go-shooter/pkg/engine"
	"github.com/opd-ai/go-shooter/pkg/logging"
	"github.com/opd-ai/go-shooter/pkg/render"
	engorender "github.com/opd-ai/go-shooter/pkg/render/engo"
)

type options struct {
	configPath string
	renderer   string
	hitboxes   bool
	width      int
	height     int
	sound      bool
	volume     float64
	logPath    string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config.yaml", "Path to configuration file (JSON or YAML)")
	flag.StringVar(&opts.renderer, "renderer", "engo", "Renderer type: 'engo' or 'terminal'")
	flag.BoolVar(&opts.hitboxes, "hitboxes", false, "Draw hitbox trees on top of the sprites")
	flag.IntVar(&opts.width, "width", 0, "Window width, defaults to the playfield width (Engo only)")
	flag.IntVar(&opts.height, "height", 0, "Window height, defaults to the playfield height (Engo only)")
	flag.BoolVar(&opts.sound, "sound", false, "Play sound effects")
	flag.Float64Var(&opts.volume, "volume", 0.5, "Sound effect volume between 0 and 1")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file instead of stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintln(os.Stderr, "shooter:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	logger, closeLog, err := openLogger(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx = logging.WithSessionID(ctx, logging.NewSessionID())

	cfg, err := loadConfig(ctx, logger, opts.configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", opts.configPath)
		return err
	}
	showHitboxes := opts.hitboxes || cfg.Debug.ShowHitboxes

	game := engine.NewGame(cfg, logger)

	if opts.sound {
		sounds := audio.NewSoundManager(logger, opts.volume)
		if err := sounds.Initialize(); err != nil {
			logger.Warn(ctx, "Sound unavailable, continuing without it", "error", err)
		} else {
			detach := sounds.Attach(game.EventBus)
			defer sounds.Close(ctx)
			defer detach()
		}
	}

	logger.Info(ctx, "Starting game",
		"renderer", opts.renderer,
		"seed", cfg.Simulation.Seed,
		"tick_rate", cfg.Simulation.TickRate,
		"hitboxes", showHitboxes,
	)

	switch opts.renderer {
	case "engo":
		err = engorender.Run(ctx, game, logger, engorender.Options{
			Width:        opts.width,
			Height:       opts.height,
			ShowHitboxes: showHitboxes,
		})
	case "terminal":
		err = runTerminal(ctx, game, showHitboxes)
	default:
		return fmt.Errorf("unknown renderer %q", opts.renderer)
	}
	if err != nil {
		logger.Error(ctx, "Game stopped", err)
		return err
	}

	state := game.GetGameState()
	logger.Info(ctx, "Game ended",
		"status", state.Status.String(),
		"tick", state.Tick,
		"enemies_destroyed", state.Stats.EnemiesDestroyed,
		"bullets_fired", state.Stats.BulletsFired,
	)
	return nil
}

// openLogger picks the log destination. The terminal renderer owns the
// screen, so it only logs when a file is given.
func openLogger(opts options) (*logging.Logger, func(), error) {
	level := logging.ParseLevel(os.Getenv(logging.EnvLogLevel))
	switch {
	case opts.logPath != "":
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return logging.NewLoggerWithWriter(f, level), func() { f.Close() }, nil
	case opts.renderer == "terminal":
		return logging.NewLoggerWithWriter(io.Discard, level), func() {}, nil
	default:
		return logging.NewLogger(), func() {}, nil
	}
}

// loadConfig reads the configuration file when it exists and applies
// SHOOTER_* environment overrides on top.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var cfg *config.GameConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runTerminal plays the game in the terminal until the player quits or ctx
// is cancelled.
func runTerminal(ctx context.Context, game *engine.Game, showHitboxes bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "init screen")
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := render.NewTerminalRenderer(screen, game.Playfield)
	keys := render.NewKeyPoller(screen, render.DefaultKeyHold)
	keys.Start(ctx)

	ticker := time.NewTicker(time.Second / time.Duration(game.Config.Simulation.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		input := keys.Poll()
		if keys.Resized() {
			screen.Sync()
			renderer.Resize()
		}
		if err := game.Update(ctx, input); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		game.Render(renderer, showHitboxes)
		if game.Quit {
			return nil
		}
	}
}
