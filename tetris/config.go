package tetris

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("tetris: invalid config")

// GameOverPolicy decides what a Game does once a freshly spawned piece
// has no room.
type GameOverPolicy string

const (
	// GameOverRestart re-enters the initializing transition immediately.
	GameOverRestart GameOverPolicy = "restart"
	// GameOverHalt freezes the game until a Restart command arrives.
	GameOverHalt GameOverPolicy = "halt"
)

// Config holds every tunable of the simulation. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	Width         int            `yaml:"width"`
	Height        int            `yaml:"height"`
	WidthPadding  int            `yaml:"width_padding"`
	HeightPadding int            `yaml:"height_padding"`
	MinQueue      int            `yaml:"min_queue"`
	DropFrames    int64          `yaml:"drop_frames"`
	Spawn         Cursor         `yaml:"spawn"`
	Seed          uint64         `yaml:"seed"`
	GameOver      GameOverPolicy `yaml:"game_over"`
}

// DefaultConfig returns the classic 10x22 field with a 48 frame drop.
func DefaultConfig() Config {
	return Config{
		Width:         10,
		Height:        22,
		WidthPadding:  4,
		HeightPadding: 4,
		MinQueue:      7,
		DropFrames:    48,
		Spawn:         Cursor{Row: 20, Col: 5},
		GameOver:      GameOverRestart,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates the
// result. Keys missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first setting that would break the board layout.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: playable area %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.WidthPadding < 2 || c.WidthPadding%2 != 0:
		return fmt.Errorf("%w: width_padding %d must be even and at least 2", ErrInvalidConfig, c.WidthPadding)
	case c.HeightPadding < 2 || c.HeightPadding%2 != 0:
		return fmt.Errorf("%w: height_padding %d must be even and at least 2", ErrInvalidConfig, c.HeightPadding)
	case c.MinQueue < 1:
		return fmt.Errorf("%w: min_queue %d", ErrInvalidConfig, c.MinQueue)
	}

	rows, cols := c.Height+c.HeightPadding, c.Width+c.WidthPadding
	if c.Spawn.Row < 0 || c.Spawn.Col < 0 || c.Spawn.Row+ShapeSize > rows || c.Spawn.Col+ShapeSize > cols {
		return fmt.Errorf("%w: spawn %v outside %dx%d grid", ErrInvalidConfig, c.Spawn, rows, cols)
	}

	switch c.GameOver {
	case GameOverRestart, GameOverHalt:
	default:
		return fmt.Errorf("%w: game_over %q", ErrInvalidConfig, c.GameOver)
	}
	return nil
}

func (c Config) rows() int { return c.Height + c.HeightPadding }
func (c Config) cols() int { return c.Width + c.WidthPadding }

// bottom is the first playable row index.
func (c Config) bottom() int { return c.HeightPadding / 2 }

// left is the first playable column index.
func (c Config) left() int { return c.WidthPadding / 2 }
