// Package config provides the difficulty selector values and YAML-based
// tuning for the tap-colour game.
package config

import (
	"errors"
	"fmt"
)

// PaletteSize is the number of distinct colours a round can draw tiles from.
const PaletteSize = 8

// TapConfig contains the tuning for every difficulty preset.
type TapConfig struct {
	Presets  Presets        `yaml:"presets"`
	Timed    TimedConfig    `yaml:"timed"`
	Feedback FeedbackConfig `yaml:"feedback"`
}

// Presets holds one Preset per selector position.
type Presets struct {
	Easy   Preset `yaml:"easy"`
	Medium Preset `yaml:"medium"`
	Expert Preset `yaml:"expert"`
}

// Preset defines gameplay parameters for one difficulty.
type Preset struct {
	Tiles        int  `yaml:"tiles"`          // Tiles shown per round
	WindowMs     int  `yaml:"window_ms"`      // Reaction window for the first round
	MinWindowMs  int  `yaml:"min_window_ms"`  // Floor the window never shrinks below
	ShrinkMs     int  `yaml:"shrink_ms"`      // Window reduction per point scored
	Interference bool `yaml:"interference"`   // Draw the colour word in a misleading ink
	StreakBonus  int  `yaml:"streak_bonus"`   // Extra point every N consecutive hits, 0 = off
	ShuffleTiles bool `yaml:"shuffle_tiles"`  // Reshuffle tile order every round
}

// TimedConfig tunes the time attack mode.
type TimedConfig struct {
	SessionMs int `yaml:"session_ms"` // Length of a timed session
	PenaltyMs int `yaml:"penalty_ms"` // Time removed for a wrong tap
	BonusMs   int `yaml:"bonus_ms"`   // Time added for a correct tap
}

// FeedbackConfig tunes the background flash.
type FeedbackConfig struct {
	FlashMs int `yaml:"flash_ms"` // How long the correct/wrong flash lasts
}

// Preset returns the preset for a difficulty. Unknown values fall back to Easy.
func (c TapConfig) Preset(d DifficultyIndex) Preset {
	switch d {
	case DifficultyMedium:
		return c.Presets.Medium
	case DifficultyExpert:
		return c.Presets.Expert
	default:
		return c.Presets.Easy
	}
}

// Validate checks that every preset is playable.
func (c TapConfig) Validate() error {
	var errs []error
	for _, d := range AllDifficulties() {
		if err := c.Preset(d).validate(); err != nil {
			errs = append(errs, fmt.Errorf("preset %s: %w", d, err))
		}
	}
	if c.Timed.SessionMs <= 0 {
		errs = append(errs, errors.New("timed: session_ms must be positive"))
	}
	if c.Timed.PenaltyMs < 0 || c.Timed.BonusMs < 0 {
		errs = append(errs, errors.New("timed: penalty_ms and bonus_ms must not be negative"))
	}
	if c.Feedback.FlashMs < 0 {
		errs = append(errs, errors.New("feedback: flash_ms must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

func (p Preset) validate() error {
	if p.Tiles < 2 || p.Tiles > PaletteSize {
		return fmt.Errorf("tiles must be between 2 and %d, got %d", PaletteSize, p.Tiles)
	}
	if p.WindowMs <= 0 || p.MinWindowMs <= 0 {
		return errors.New("window_ms and min_window_ms must be positive")
	}
	if p.MinWindowMs > p.WindowMs {
		return fmt.Errorf("min_window_ms (%d) exceeds window_ms (%d)", p.MinWindowMs, p.WindowMs)
	}
	if p.ShrinkMs < 0 || p.StreakBonus < 0 {
		return errors.New("shrink_ms and streak_bonus must not be negative")
	}
	return nil
}
