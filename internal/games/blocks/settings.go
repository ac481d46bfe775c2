package blocks

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

// Settings is the engine view of a config.BlocksConfig.
type Settings struct {
	Templates []Template
	Palette   []Color
	Policy    Policy
	HandSize  int
}

// SettingsFromConfig converts YAML configuration into engine types.
// Template offsets are normalized; unknown palette names are an error.
func SettingsFromConfig(cfg config.BlocksConfig) (Settings, error) {
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}

	s := Settings{
		Policy: Policy{
			PointsPerBlock:        cfg.Scoring.PointsPerBlock,
			PointsPerLine:         cfg.Scoring.PointsPerLine,
			IntersectionPoints:    cfg.Scoring.IntersectionPoints,
			StreakBonusPercent:    cfg.Scoring.StreakBonusPercent,
			MinIntersectionStreak: cfg.Scoring.MinIntersectionStreak,
		},
		HandSize: cfg.Pieces.HandSize,
	}

	for _, name := range cfg.Pieces.Palette {
		c, ok := ParseColor(name)
		if !ok || c == Empty {
			return Settings{}, fmt.Errorf("pieces: unknown palette color %q", name)
		}
		s.Palette = append(s.Palette, c)
	}

	for _, t := range cfg.Pieces.Templates {
		blocks := make([]Offset, len(t.Blocks))
		for i, b := range t.Blocks {
			blocks[i] = Offset{Row: b[0], Col: b[1]}
		}
		s.Templates = append(s.Templates, Template{
			Name:   t.Name,
			Weight: t.Weight,
			Blocks: Normalize(blocks),
		})
	}

	return s, nil
}

// DefaultSettings returns the built-in templates, palette and scoring.
func DefaultSettings() Settings {
	return Settings{
		Templates: DefaultTemplates(),
		Palette:   Palette,
		Policy:    DefaultPolicy(),
		HandSize:  HandSize,
	}
}

// Catalog builds a catalog over the settings' templates and palette.
func (s Settings) Catalog(rng RNG) *Catalog {
	return NewCatalog(s.Templates, s.Palette, rng)
}

// Options returns the session options matching the settings.
func (s Settings) Options() []Option {
	return []Option{WithPolicy(s.Policy), WithHandSize(s.HandSize)}
}
