package config

// Progression calculates how a preset tightens as the score grows.
type Progression struct {
	preset Preset
}

// NewProgression creates a progression for the given preset.
func NewProgression(p Preset) *Progression {
	return &Progression{preset: p}
}

// WindowMs returns the reaction window for the round following the given score.
func (p *Progression) WindowMs(score int) int {
	if score < 0 {
		score = 0
	}
	w := p.preset.WindowMs - score*p.preset.ShrinkMs
	if w < p.preset.MinWindowMs {
		return p.preset.MinWindowMs
	}
	return w
}

// MaxedAt returns the score at which the window reaches its floor.
// Returns 0 when the window never shrinks.
func (p *Progression) MaxedAt() int {
	if p.preset.ShrinkMs <= 0 {
		return 0
	}
	span := p.preset.WindowMs - p.preset.MinWindowMs
	return (span + p.preset.ShrinkMs - 1) / p.preset.ShrinkMs
}

// Level returns how far the window has tightened, from 0.0 (first round)
// to 1.0 (at the floor).
func (p *Progression) Level(score int) float64 {
	span := p.preset.WindowMs - p.preset.MinWindowMs
	if span <= 0 {
		return 1.0
	}
	done := p.preset.WindowMs - p.WindowMs(score)
	return float64(done) / float64(span)
}

// Bonus returns the extra points awarded when the streak reaches the given
// length. A bonus is paid every StreakBonus consecutive hits.
func (p *Progression) Bonus(streak int) int {
	if p.preset.StreakBonus <= 0 || streak <= 0 {
		return 0
	}
	if streak%p.preset.StreakBonus == 0 {
		return 1
	}
	return 0
}

// MsToTicks converts milliseconds to simulation ticks, rounding up so that a
// positive duration never becomes zero ticks.
func MsToTicks(ms, tickRate int) int {
	if ms <= 0 || tickRate <= 0 {
		return 0
	}
	return (ms*tickRate + 999) / 1000
}
