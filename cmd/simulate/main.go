// cmd/simulate/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/opd-ai/go-shooter/pkg/config"
	"github.com/opd-ai/go-shooter/pkg/engine"
	"github.com/opd-ai/go-shooter/pkg/health"
	"github.com/opd-ai/go-shooter/pkg/logging"
	"github.com/opd-ai/go-shooter/pkg/render"
)

const (
	// progress is logged every reportEvery ticks
	reportEvery = 600

	maxStall      = 10 * time.Second
	maxMemoryMB   = 500
	shutdownGrace = 5 * time.Second
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), logging.NewSessionID())

	configPath := flag.String("config", "config.yaml", "Path to configuration file (JSON or YAML)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	ticks := flag.Int("ticks", 0, "Ticks to simulate, overrides simulation.maxTicks (0 runs until the game ends)")
	games := flag.Int("games", 1, "Number of games to play back to back, each with the next seed")
	cycleEvery := flag.Uint64("cycle", 0, "Autopilot swaps weapons every N ticks (0 never swaps)")
	draw := flag.Bool("draw", false, "Drive a logging renderer every tick (debug log level shows the calls)")
	healthAddr := flag.String("health", "", "Serve /health and /ready on this address while simulating")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	maxTicks := cfg.Simulation.MaxTicks
	if *ticks > 0 {
		maxTicks = *ticks
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pilot := engine.NewAutopilot()
	pilot.CycleEvery = *cycleEvery

	checker := health.NewChecker()
	checker.AddCheck(health.NewMemoryCheck(maxMemoryMB, func() int64 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return int64(m.Alloc / 1024 / 1024)
	}))
	if *healthAddr != "" {
		shutdown := serveHealth(ctx, logger, checker, *healthAddr)
		defer shutdown()
	}

	failed := false
	for i := range max(*games, 1) {
		gameCfg := *cfg
		gameCfg.Simulation.Seed = cfg.Simulation.Seed + uint64(i)

		err := simulate(ctx, logger, &gameCfg, pilot, checker, maxTicks, *draw)
		if errors.Is(err, context.Canceled) {
			logger.Info(ctx, "Simulation interrupted")
			break
		}
		if err != nil {
			logger.Error(ctx, "Simulation failed", err, "seed", gameCfg.Simulation.Seed)
			failed = true
			break
		}
	}
	if failed {
		os.Exit(1)
	}
}

// simulate plays one game with the autopilot and logs its statistics
func simulate(ctx context.Context, logger *logging.Logger, cfg *config.GameConfig, pilot *engine.Autopilot,
	checker *health.Checker, maxTicks int, draw bool) error {
	game := engine.NewGame(cfg, logger)

	progress := health.NewProgressCheck(game, maxStall)
	player := health.NewPlayerCheck(game)
	checker.AddCheck(progress)
	checker.AddCheck(player)
	defer checker.RemoveCheck(progress.Name())
	defer checker.RemoveCheck(player.Name())

	var renderer *render.NullRenderer
	if draw {
		renderer = render.NewNullRenderer(logger)
	}

	logger.Info(ctx, "Simulation started",
		"seed", cfg.Simulation.Seed,
		"max_ticks", maxTicks,
		"enemies", len(game.Enemies),
		"collision_workers", cfg.Combat.CollisionWorkers,
	)
	start := time.Now()

	for ran := 0; maxTicks <= 0 || ran < maxTicks; ran += reportEvery {
		batch := reportEvery
		if maxTicks > 0 {
			batch = min(batch, maxTicks-ran)
		}
		if err := step(ctx, game, pilot, renderer, batch); err != nil {
			return err
		}

		state := game.GetGameState()
		logger.Debug(ctx, "Simulation progress",
			"tick", state.Tick,
			"enemies", len(state.Enemies),
			"bullets", state.Bullets,
			"enemy_bullets", state.EnemyBullets,
			"health", state.Player.Health,
		)
		if state.Status != engine.StatusPlaying {
			break
		}
	}

	state := game.GetGameState()
	elapsed := time.Since(start)
	logger.Info(ctx, "Simulation finished",
		"seed", cfg.Simulation.Seed,
		"status", state.Status.String(),
		"ticks", state.Tick,
		"elapsed", elapsed.String(),
		"ticks_per_second", float64(state.Tick)/max(elapsed.Seconds(), 1e-9),
		"bullets_fired", state.Stats.BulletsFired,
		"enemy_hits", state.Stats.EnemyHits,
		"enemies_destroyed", state.Stats.EnemiesDestroyed,
		"player_hits", state.Stats.PlayerHits,
		"level_ups", state.Stats.LevelUps,
		"weapon", state.Player.Weapon,
		"weapon_level", state.Player.WeaponLevel,
	)
	return nil
}

// step advances the game by up to n ticks, drawing each one when a
// renderer is given
func step(ctx context.Context, game *engine.Game, pilot *engine.Autopilot, renderer *render.NullRenderer, n int) error {
	if renderer == nil {
		return game.RunTicks(ctx, pilot, n)
	}
	for range n {
		if err := game.RunTicks(ctx, pilot, 1); err != nil {
			return err
		}
		game.Render(renderer, true)
	}
	return nil
}

// serveHealth starts the probe server and returns a function that stops it
func serveHealth(ctx context.Context, logger *logging.Logger, checker *health.Checker, addr string) func() {
	server := &http.Server{
		Addr:         addr,
		Handler:      checker.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting health check server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Health check server shutdown failed", err)
		}
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
