package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration. It matches the
// embedded defaults/blocks.yaml.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Scoring: ScoringConfig{
			PointsPerBlock:        10,
			PointsPerLine:         100,
			IntersectionPoints:    250,
			StreakBonusPercent:    10,
			MinIntersectionStreak: 2,
		},
		Pieces: PiecesConfig{
			HandSize: 3,
			Palette:  []string{"red", "blue", "green", "yellow", "purple", "orange", "cyan"},
			Templates: []TemplateConfig{
				{Name: "single", Weight: 1, Blocks: [][]int{{0, 0}}},
				{Name: "line2_h", Weight: 2, Blocks: [][]int{{0, 0}, {0, 1}}},
				{Name: "line2_v", Weight: 2, Blocks: [][]int{{0, 0}, {1, 0}}},
				{Name: "line3_h", Weight: 3, Blocks: [][]int{{0, 0}, {0, 1}, {0, 2}}},
				{Name: "line3_v", Weight: 3, Blocks: [][]int{{0, 0}, {1, 0}, {2, 0}}},
				{Name: "corner", Weight: 3, Blocks: [][]int{{0, 0}, {0, 1}, {1, 0}}},
				{Name: "corner_r", Weight: 3, Blocks: [][]int{{0, 0}, {0, 1}, {1, 1}}},
				{Name: "i_h", Weight: 2, Blocks: [][]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}}},
				{Name: "i_v", Weight: 2, Blocks: [][]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
				{Name: "o", Weight: 3, Blocks: [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
				{Name: "t", Weight: 2, Blocks: [][]int{{0, 1}, {1, 0}, {1, 1}, {1, 2}}},
				{Name: "z", Weight: 2, Blocks: [][]int{{0, 0}, {1, 0}, {1, 1}, {2, 1}}},
				{Name: "s", Weight: 2, Blocks: [][]int{{0, 1}, {1, 0}, {1, 1}, {2, 0}}},
				{Name: "l", Weight: 2, Blocks: [][]int{{0, 0}, {1, 0}, {2, 0}, {2, 1}}},
				{Name: "j", Weight: 2, Blocks: [][]int{{0, 1}, {1, 1}, {2, 0}, {2, 1}}},
				{Name: "big_l", Weight: 1, Blocks: [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {2, 0}}},
				{Name: "big_l_r", Weight: 1, Blocks: [][]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {0, 2}}},
				{Name: "plus", Weight: 1, Blocks: [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {2, 1}}},
			},
		},
		Display: DisplayConfig{
			ShowGrid:    true,
			BannerTicks: 45,
			FlashTicks:  9,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blocks":
		return defaultBlocksYAML
	default:
		return nil
	}
}
