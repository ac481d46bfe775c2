package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded BlocksConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("blocks"), &embedded))
	assert.Equal(t, DefaultBlocksConfig(), embedded)
	assert.NoError(t, embedded.Validate())
}

func TestGetDefaultYAMLUnknownGame(t *testing.T) {
	assert.Nil(t, GetDefaultYAML("flappy"))
}

func TestLoadBlocksFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadBlocks("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBlocksConfig(), cfg)
}

func TestLoadBlocksCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	data := []byte("scoring:\n  points_per_line: 200\ndisplay:\n  show_grid: false\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadBlocks(path)
	require.NoError(t, err)

	want := DefaultBlocksConfig()
	want.Scoring.PointsPerLine = 200
	want.Display.ShowGrid = false
	assert.Equal(t, want, cfg)
}

func TestLoadBlocksUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".blocks", "configs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data := []byte("pieces:\n  hand_size: 2\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocks.yaml"), data, 0o600))

	cfg, err := LoadBlocks("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Pieces.HandSize)
	assert.Len(t, cfg.Pieces.Templates, 18)
}

func TestLoadBlocksErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadBlocks(filepath.Join(dir, "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read config")
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scoring: [1, 2"), 0o600))
		_, err := LoadBlocks(path)
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pieces:\n  hand_size: 0\n"), 0o600))
		_, err := LoadBlocks(path)
		assert.ErrorContains(t, err, "hand_size must be positive")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BlocksConfig)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(*BlocksConfig) {},
		},
		{
			name:    "negative points",
			mutate:  func(c *BlocksConfig) { c.Scoring.PointsPerBlock = -1 },
			wantErr: "must not be negative",
		},
		{
			name:    "zero intersection streak",
			mutate:  func(c *BlocksConfig) { c.Scoring.MinIntersectionStreak = 0 },
			wantErr: "min_intersection_streak",
		},
		{
			name:    "empty palette",
			mutate:  func(c *BlocksConfig) { c.Pieces.Palette = nil },
			wantErr: "palette is empty",
		},
		{
			name:    "no templates",
			mutate:  func(c *BlocksConfig) { c.Pieces.Templates = nil },
			wantErr: "no templates",
		},
		{
			name:    "zero weight",
			mutate:  func(c *BlocksConfig) { c.Pieces.Templates[0].Weight = 0 },
			wantErr: "weight must be positive",
		},
		{
			name:    "empty blocks",
			mutate:  func(c *BlocksConfig) { c.Pieces.Templates[0].Blocks = nil },
			wantErr: "no blocks",
		},
		{
			name: "duplicate block",
			mutate: func(c *BlocksConfig) {
				c.Pieces.Templates[1].Blocks = [][]int{{0, 0}, {0, 0}}
			},
			wantErr: "duplicate block",
		},
		{
			name:    "bad pair",
			mutate:  func(c *BlocksConfig) { c.Pieces.Templates[0].Blocks = [][]int{{0}} },
			wantErr: "not a [row, col] pair",
		},
		{
			name:    "duplicate name",
			mutate:  func(c *BlocksConfig) { c.Pieces.Templates[1].Name = "single" },
			wantErr: "duplicate template name",
		},
		{
			name:    "negative banner",
			mutate:  func(c *BlocksConfig) { c.Display.BannerTicks = -1 },
			wantErr: "tick counts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlocksConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
