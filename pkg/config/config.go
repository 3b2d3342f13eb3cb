// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-shooter/pkg/physics"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains configuration for a game session
type GameConfig struct {
	Playfield  PlayfieldConfig  `json:"playfield" yaml:"playfield"`
	Player     PlayerConfig     `json:"player" yaml:"player"`
	Enemies    EnemyConfig      `json:"enemies" yaml:"enemies"`
	Combat     CombatConfig     `json:"combat" yaml:"combat"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Debug      DebugConfig      `json:"debug" yaml:"debug"`
}

// PlayfieldConfig sizes the logical playfield and its broad-phase grid
type PlayfieldConfig struct {
	Width       float64 `json:"width" yaml:"width"`
	Height      float64 `json:"height" yaml:"height"`
	GridColumns int     `json:"gridColumns" yaml:"gridColumns"`
	GridRows    int     `json:"gridRows" yaml:"gridRows"`
}

// PlayerConfig contains player movement settings
type PlayerConfig struct {
	Friction     float64 `json:"friction" yaml:"friction"`
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
}

// EnemyConfig describes the enemy formation
type EnemyConfig struct {
	Columns    int     `json:"columns" yaml:"columns"`
	Rows       int     `json:"rows" yaml:"rows"`
	OriginX    float64 `json:"originX" yaml:"originX"`
	OriginY    float64 `json:"originY" yaml:"originY"`
	SpacingX   float64 `json:"spacingX" yaml:"spacingX"`
	SpacingY   float64 `json:"spacingY" yaml:"spacingY"`
	DriftSpeed float64 `json:"driftSpeed" yaml:"driftSpeed"`
	// ShootChance is scaled by the squared enemy count; each enemy fires
	// with probability 1/(ShootChance*n*n) per tick.
	ShootChance int `json:"shootChance" yaml:"shootChance"`
}

// CombatConfig contains damage and reward settings
type CombatConfig struct {
	ContactDamage    float64 `json:"contactDamage" yaml:"contactDamage"`
	ShotDamage       float64 `json:"shotDamage" yaml:"shotDamage"`
	ShotSpeed        float64 `json:"shotSpeed" yaml:"shotSpeed"`
	ExpPerKill       float64 `json:"expPerKill" yaml:"expPerKill"`
	ExpDecay         float64 `json:"expDecay" yaml:"expDecay"`
	CollisionWorkers int     `json:"collisionWorkers" yaml:"collisionWorkers"`
}

// SimulationConfig controls the tick loop
type SimulationConfig struct {
	Seed     uint64 `json:"seed" yaml:"seed"`
	TickRate int    `json:"tickRate" yaml:"tickRate"`
	MaxTicks int    `json:"maxTicks" yaml:"maxTicks"`
}

// DebugConfig contains developer toggles
type DebugConfig struct {
	ShowHitboxes bool `json:"showHitboxes" yaml:"showHitboxes"`
}

// PlayfieldSize returns the playfield extent as a vector
func (c *GameConfig) PlayfieldSize() physics.Vector2D {
	return physics.Vector2D{X: c.Playfield.Width, Y: c.Playfield.Height}
}

// Grid returns the broad-phase grid over the playfield
func (c *GameConfig) Grid() physics.Grid {
	return physics.NewGrid(
		physics.Vector2D{X: float64(c.Playfield.GridColumns), Y: float64(c.Playfield.GridRows)},
		c.PlayfieldSize(),
	)
}

// Validate checks that the configuration can drive a game
func (c *GameConfig) Validate() error {
	switch {
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("%w: playfield size must be positive, got %vx%v", ErrInvalidConfig, c.Playfield.Width, c.Playfield.Height)
	case c.Playfield.GridColumns <= 0 || c.Playfield.GridRows <= 0:
		return fmt.Errorf("%w: grid must have at least one cell, got %dx%d", ErrInvalidConfig, c.Playfield.GridColumns, c.Playfield.GridRows)
	case c.Player.Friction < 0 || c.Player.Friction >= 1:
		return fmt.Errorf("%w: friction must be in [0, 1), got %v", ErrInvalidConfig, c.Player.Friction)
	case c.Enemies.Columns < 0 || c.Enemies.Rows < 0:
		return fmt.Errorf("%w: enemy formation cannot be negative", ErrInvalidConfig)
	case c.Enemies.ShootChance <= 0:
		return fmt.Errorf("%w: shootChance must be positive, got %d", ErrInvalidConfig, c.Enemies.ShootChance)
	case c.Combat.CollisionWorkers < 0:
		return fmt.Errorf("%w: collisionWorkers cannot be negative, got %d", ErrInvalidConfig, c.Combat.CollisionWorkers)
	case c.Simulation.TickRate <= 0:
		return fmt.Errorf("%w: tickRate must be positive, got %d", ErrInvalidConfig, c.Simulation.TickRate)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig loads a configuration from a JSON or YAML file. Fields missing
// from the file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves a configuration to a file, as YAML if the extension asks for it
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Playfield: PlayfieldConfig{
			Width:       920,
			Height:      690,
			GridColumns: 10,
			GridRows:    10,
		},
		Player: PlayerConfig{
			Friction:     0.1,
			Acceleration: 1,
		},
		Enemies: EnemyConfig{
			Columns:     7,
			Rows:        3,
			OriginX:     80,
			OriginY:     50,
			SpacingX:    110,
			SpacingY:    100,
			DriftSpeed:  0,
			ShootChance: 10,
		},
		Combat: CombatConfig{
			ContactDamage:    20,
			ShotDamage:       10,
			ShotSpeed:        3,
			ExpPerKill:       40,
			ExpDecay:         0.7,
			CollisionWorkers: 1,
		},
		Simulation: SimulationConfig{
			Seed:     1,
			TickRate: 60,
			MaxTicks: 0,
		},
	}
}
