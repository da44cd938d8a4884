// Package cli holds the flags every blockfall command shares.
package cli

import (
	"flag"
	"fmt"

	"github.com/plus3/blockfall/tetris"
)

// GameFlags are the command-line overrides applied on top of a config.
type GameFlags struct {
	ConfigPath string
	Seed       uint64
	DropFrames int64
	Halt       bool
}

// Register binds the flags on fs.
func (f *GameFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "YAML config file; defaults apply when empty.")
	fs.Uint64Var(&f.Seed, "seed", 0, "Piece shuffle seed; 0 keeps the config value.")
	fs.Int64Var(&f.DropFrames, "drop-frames", 0, "Ticks between gravity steps; 0 keeps the config value.")
	fs.BoolVar(&f.Halt, "halt", false, "Stop at game over instead of restarting.")
}

// Config loads the file, if any, then applies the flag overrides.
func (f *GameFlags) Config() (tetris.Config, error) {
	cfg := tetris.DefaultConfig()
	if f.ConfigPath != "" {
		var err error
		if cfg, err = tetris.LoadConfig(f.ConfigPath); err != nil {
			return cfg, err
		}
	}

	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}
	if f.DropFrames != 0 {
		cfg.DropFrames = f.DropFrames
	}
	if f.Halt {
		cfg.GameOver = tetris.GameOverHalt
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
