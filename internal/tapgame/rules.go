package tapgame

import (
	"github.com/vovakirdan/tapcolour/internal/config"
)

// Mode selects how a session ends.
type Mode int

const (
	// ModeClassic ends the session on the first wrong tap or missed window.
	ModeClassic Mode = iota

	// ModeTimed runs against a session clock. Wrong taps cost time and
	// missed windows simply deal a new round.
	ModeTimed
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModeTimed:
		return "Time Attack"
	default:
		return "Unknown"
	}
}

// Rules is the resolved tuning for one session, in ticks.
type Rules struct {
	Mode       Mode
	Difficulty config.DifficultyIndex
	Preset     config.Preset
	TickRate   int

	SessionTicks int // Timed mode: session clock at start
	PenaltyTicks int // Timed mode: clock removed per wrong tap
	BonusTicks   int // Timed mode: clock added per correct tap
	FlashTicks   int // Length of the feedback flash
}

// NewRules resolves the tuning for a mode and difficulty at the given tick rate.
func NewRules(mode Mode, d config.DifficultyIndex, cfg config.TapConfig, tickRate int) Rules {
	if tickRate <= 0 {
		tickRate = 60
	}
	return Rules{
		Mode:         mode,
		Difficulty:   d,
		Preset:       cfg.Preset(d),
		TickRate:     tickRate,
		SessionTicks: config.MsToTicks(cfg.Timed.SessionMs, tickRate),
		PenaltyTicks: config.MsToTicks(cfg.Timed.PenaltyMs, tickRate),
		BonusTicks:   config.MsToTicks(cfg.Timed.BonusMs, tickRate),
		FlashTicks:   config.MsToTicks(cfg.Feedback.FlashMs, tickRate),
	}
}

// WindowTicks returns the reaction window, in ticks, for the round after the
// given score. Never less than one tick.
func (r Rules) WindowTicks(score int) int {
	ms := config.NewProgression(r.Preset).WindowMs(score)
	if t := config.MsToTicks(ms, r.TickRate); t > 0 {
		return t
	}
	return 1
}
