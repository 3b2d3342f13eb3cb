package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables recognised by ApplyEnv
const (
	EnvSeed         = "SHOOTER_SEED"
	EnvWorkers      = "SHOOTER_WORKERS"
	EnvShowHitboxes = "SHOOTER_SHOW_HITBOXES"
	EnvTickRate     = "SHOOTER_TICK_RATE"
	EnvMaxTicks     = "SHOOTER_MAX_TICKS"
)

// LoadConfigFromEnv returns the default configuration with environment overrides applied
func LoadConfigFromEnv() (*GameConfig, error) {
	config := DefaultConfig()
	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides config fields from SHOOTER_* environment variables.
// Unset variables leave the field untouched.
func ApplyEnv(config *GameConfig) error {
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		config.Simulation.Seed = seed
	}
	if err := envInt(EnvWorkers, &config.Combat.CollisionWorkers); err != nil {
		return err
	}
	if err := envInt(EnvTickRate, &config.Simulation.TickRate); err != nil {
		return err
	}
	if err := envInt(EnvMaxTicks, &config.Simulation.MaxTicks); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvShowHitboxes); ok {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvShowHitboxes, err)
		}
		config.Debug.ShowHitboxes = show
	}
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}
