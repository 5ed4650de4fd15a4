package config

import (
	_ "embed"
)

//go:embed defaults/tapcolour.yaml
var defaultTapYAML []byte

// DefaultTapConfig returns the built-in tuning. It matches the embedded
// defaults/tapcolour.yaml and is used when that file cannot be parsed.
func DefaultTapConfig() TapConfig {
	return TapConfig{
		Presets: Presets{
			Easy: Preset{
				Tiles:        3,
				WindowMs:     3000,
				MinWindowMs:  1200,
				ShrinkMs:     40,
				Interference: false,
				StreakBonus:  0,
				ShuffleTiles: true,
			},
			Medium: Preset{
				Tiles:        4,
				WindowMs:     2200,
				MinWindowMs:  900,
				ShrinkMs:     40,
				Interference: false,
				StreakBonus:  10,
				ShuffleTiles: true,
			},
			Expert: Preset{
				Tiles:        6,
				WindowMs:     1600,
				MinWindowMs:  600,
				ShrinkMs:     30,
				Interference: true,
				StreakBonus:  5,
				ShuffleTiles: true,
			},
		},
		Timed: TimedConfig{
			SessionMs: 60000,
			PenaltyMs: 3000,
			BonusMs:   250,
		},
		Feedback: FeedbackConfig{
			FlashMs: 250,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `settings export`.
func DefaultYAML() []byte {
	return defaultTapYAML
}
