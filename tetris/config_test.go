package tetris_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, tetris.DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*tetris.Config)
	}{
		{"zero width", func(c *tetris.Config) { c.Width = 0 }},
		{"negative height", func(c *tetris.Config) { c.Height = -3 }},
		{"odd width padding", func(c *tetris.Config) { c.WidthPadding = 3 }},
		{"no height padding", func(c *tetris.Config) { c.HeightPadding = 0 }},
		{"empty queue reserve", func(c *tetris.Config) { c.MinQueue = 0 }},
		{"spawn above the grid", func(c *tetris.Config) { c.Spawn.Row = 23 }},
		{"spawn past the right edge", func(c *tetris.Config) { c.Spawn.Col = 11 }},
		{"negative spawn", func(c *tetris.Config) { c.Spawn.Col = -1 }},
		{"unknown policy", func(c *tetris.Config) { c.GameOver = "pause" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tetris.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tetris.ErrInvalidConfig)
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
drop_frames: 12
seed: 99
game_over: halt
spawn:
  row: 18
`)

	cfg, err := tetris.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(12), cfg.DropFrames)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, tetris.GameOverHalt, cfg.GameOver)
	assert.Equal(t, tetris.Cursor{Row: 18, Col: 5}, cfg.Spawn)
	assert.Equal(t, 10, cfg.Width, "missing keys keep their default")
	assert.Equal(t, 7, cfg.MinQueue)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := tetris.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := tetris.LoadConfig(writeConfig(t, "width: [1, 2"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, tetris.ErrInvalidConfig)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := tetris.LoadConfig(writeConfig(t, "width_padding: 5\n"))
		assert.ErrorIs(t, err, tetris.ErrInvalidConfig)
	})
}
