// Package config provides YAML-based tuning for the block puzzle: scoring
// constants, the weighted piece catalog, and display options.
package config

import (
	"errors"
	"fmt"
)

// BlocksConfig contains all configuration for the block puzzle.
type BlocksConfig struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Pieces  PiecesConfig  `yaml:"pieces"`
	Display DisplayConfig `yaml:"display"`
}

// ScoringConfig defines the points awarded per placement.
type ScoringConfig struct {
	PointsPerBlock        int `yaml:"points_per_block"`
	PointsPerLine         int `yaml:"points_per_line"`
	IntersectionPoints    int `yaml:"intersection_points"`
	StreakBonusPercent    int `yaml:"streak_bonus_percent"`    // Percent added per streak level above 1
	MinIntersectionStreak int `yaml:"min_intersection_streak"` // Streak floor after an intersection
}

// PiecesConfig defines how pieces are dealt.
type PiecesConfig struct {
	HandSize  int              `yaml:"hand_size"`
	Palette   []string         `yaml:"palette"`
	Templates []TemplateConfig `yaml:"templates"`
}

// TemplateConfig is one weighted shape. Blocks are [row, col] pairs.
type TemplateConfig struct {
	Name   string  `yaml:"name"`
	Weight int     `yaml:"weight"`
	Blocks [][]int `yaml:"blocks"`
}

// DisplayConfig defines presentation options.
type DisplayConfig struct {
	ShowGrid    bool `yaml:"show_grid"`
	BannerTicks int  `yaml:"banner_ticks"` // How long the clear banner stays up
	FlashTicks  int  `yaml:"flash_ticks"`  // How long cleared cells flash
}

// Validate checks the configuration for values the game cannot run with.
func (c BlocksConfig) Validate() error {
	var errs []error

	s := c.Scoring
	if s.PointsPerBlock < 0 || s.PointsPerLine < 0 || s.IntersectionPoints < 0 || s.StreakBonusPercent < 0 {
		errs = append(errs, errors.New("scoring: values must not be negative"))
	}
	if s.MinIntersectionStreak < 1 {
		errs = append(errs, fmt.Errorf("scoring: min_intersection_streak must be at least 1, got %d", s.MinIntersectionStreak))
	}

	if c.Pieces.HandSize < 1 {
		errs = append(errs, fmt.Errorf("pieces: hand_size must be positive, got %d", c.Pieces.HandSize))
	}
	if len(c.Pieces.Palette) == 0 {
		errs = append(errs, errors.New("pieces: palette is empty"))
	}
	if len(c.Pieces.Templates) == 0 {
		errs = append(errs, errors.New("pieces: no templates"))
	}
	names := make(map[string]bool, len(c.Pieces.Templates))
	for i, t := range c.Pieces.Templates {
		if err := t.validate(); err != nil {
			errs = append(errs, fmt.Errorf("pieces: template %d (%q): %w", i, t.Name, err))
		}
		if t.Name != "" && names[t.Name] {
			errs = append(errs, fmt.Errorf("pieces: duplicate template name %q", t.Name))
		}
		names[t.Name] = true
	}

	if c.Display.BannerTicks < 0 || c.Display.FlashTicks < 0 {
		errs = append(errs, errors.New("display: tick counts must not be negative"))
	}

	return errors.Join(errs...)
}

func (t TemplateConfig) validate() error {
	if t.Weight <= 0 {
		return fmt.Errorf("weight must be positive, got %d", t.Weight)
	}
	if len(t.Blocks) == 0 {
		return errors.New("no blocks")
	}
	seen := make(map[[2]int]bool, len(t.Blocks))
	for _, b := range t.Blocks {
		if len(b) != 2 {
			return fmt.Errorf("block %v is not a [row, col] pair", b)
		}
		key := [2]int{b[0], b[1]}
		if seen[key] {
			return fmt.Errorf("duplicate block %v", b)
		}
		seen[key] = true
	}
	return nil
}
