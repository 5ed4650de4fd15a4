// Package tapgame implements the rules of the tap-the-colour game.
// Each round names a colour and shows a row of coloured tiles; the player
// must tap the tile of the named colour before the reaction window closes.
// The engine is deterministic for a given seed and input sequence and has
// no I/O, so it can be driven by a scene, a test or a replay.
package tapgame

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/tapcolour/internal/config"
)

// Outcome is the result of a single Tap or Tick.
type Outcome int

const (
	OutcomeNone    Outcome = iota
	OutcomeCorrect         // The tapped tile matched the target
	OutcomeWrong           // The tapped tile did not match
	OutcomeMissed          // The reaction window ran out
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeCorrect:
		return "Correct"
	case OutcomeWrong:
		return "Wrong"
	case OutcomeMissed:
		return "Missed"
	default:
		return "Unknown"
	}
}

// EndReason records why a session stopped.
type EndReason int

const (
	EndNone     EndReason = iota
	EndWrongTap           // Classic: tapped the wrong colour
	EndTimeout            // Classic: reaction window ran out
	EndTimeUp             // Timed: session clock ran out
)

// String returns the identifier stored with results.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndWrongTap:
		return "wrong_tap"
	case EndTimeout:
		return "timeout"
	case EndTimeUp:
		return "time_up"
	default:
		return "unknown"
	}
}

// Round is one prompt: a target colour and the tiles to pick from.
type Round struct {
	Number    int   // 1-based round counter within the session
	Target    int   // Palette index of the colour to tap
	Tiles     []int // Palette indexes shown, left to right; exactly one equals Target
	Ink       int   // Palette index the prompt word is drawn in
	Window    int   // Reaction window in ticks
	Remaining int   // Ticks left in the window
}

// TargetSlot returns the slot holding the target colour, or -1.
func (r Round) TargetSlot() int {
	return slices.Index(r.Tiles, r.Target)
}

// Progress returns the fraction of the reaction window still left, 0.0 to 1.0.
func (r Round) Progress() float64 {
	if r.Window <= 0 {
		return 0
	}
	return float64(r.Remaining) / float64(r.Window)
}

// Game holds the state of one tap-colour session.
type Game struct {
	rules       Rules
	rng         *rand.Rand
	progression *config.Progression

	running   bool
	endReason EndReason

	score      int
	streak     int
	bestStreak int
	hits       int
	misses     int
	wrong      int
	elapsed    int // Ticks since Start
	clock      int // Timed mode: ticks left in the session

	round Round
}

// New creates a game with the given rules. Nothing happens until Start.
func New(rules Rules, seed int64) *Game {
	return &Game{
		rules:       rules,
		rng:         rand.New(rand.NewSource(seed)),
		progression: config.NewProgression(rules.Preset),
	}
}

// Start begins a new session, resetting the score.
func (g *Game) Start() {
	g.running = true
	g.endReason = EndNone
	g.score = 0
	g.streak = 0
	g.bestStreak = 0
	g.hits = 0
	g.misses = 0
	g.wrong = 0
	g.elapsed = 0
	g.clock = g.rules.SessionTicks
	g.round = Round{}
	g.deal()
}

// Tap answers the current round with the tile in the given slot.
// Taps outside the tile row, or while no session is running, are ignored.
func (g *Game) Tap(slot int) Outcome {
	if !g.running || slot < 0 || slot >= len(g.round.Tiles) {
		return OutcomeNone
	}

	if g.round.Tiles[slot] == g.round.Target {
		g.hits++
		g.streak++
		if g.streak > g.bestStreak {
			g.bestStreak = g.streak
		}
		g.score += 1 + g.progression.Bonus(g.streak)
		if g.rules.Mode == ModeTimed {
			g.clock += g.rules.BonusTicks
		}
		g.deal()
		return OutcomeCorrect
	}

	g.wrong++
	g.streak = 0
	if g.rules.Mode == ModeClassic {
		g.end(EndWrongTap)
		return OutcomeWrong
	}

	g.clock -= g.rules.PenaltyTicks
	if g.clock <= 0 {
		g.clock = 0
		g.end(EndTimeUp)
		return OutcomeWrong
	}
	g.deal()
	return OutcomeWrong
}

// Tick advances the session by one simulation tick.
func (g *Game) Tick() Outcome {
	if !g.running {
		return OutcomeNone
	}
	g.elapsed++

	if g.rules.Mode == ModeTimed {
		g.clock--
		if g.clock <= 0 {
			g.clock = 0
			g.end(EndTimeUp)
			return OutcomeNone
		}
	}

	g.round.Remaining--
	if g.round.Remaining > 0 {
		return OutcomeNone
	}

	g.misses++
	g.streak = 0
	if g.rules.Mode == ModeClassic {
		g.end(EndTimeout)
	} else {
		g.deal()
	}
	return OutcomeMissed
}

// end stops the session. The last round is kept so it can be shown.
func (g *Game) end(reason EndReason) {
	g.running = false
	g.endReason = reason
}

// deal draws the next round.
func (g *Game) deal() {
	n := g.rules.Preset.Tiles
	if n > len(palette) {
		n = len(palette)
	}
	if n < 1 {
		n = 1
	}

	tiles := g.rng.Perm(len(palette))[:n]
	if !g.rules.Preset.ShuffleTiles {
		slices.Sort(tiles)
	}

	// Avoid asking for the same colour twice in a row when there is a choice.
	target := tiles[g.rng.Intn(n)]
	if n > 1 && g.round.Number > 0 && target == g.round.Target {
		slot := slices.Index(tiles, target)
		target = tiles[(slot+1+g.rng.Intn(n-1))%n]
	}

	ink := target
	if g.rules.Preset.Interference {
		ink = (target + 1 + g.rng.Intn(len(palette)-1)) % len(palette)
	}

	window := g.rules.WindowTicks(g.score)
	g.round = Round{
		Number:    g.round.Number + 1,
		Target:    target,
		Tiles:     tiles,
		Ink:       ink,
		Window:    window,
		Remaining: window,
	}
}

// Rules returns the rules the game was created with.
func (g *Game) Rules() Rules {
	return g.rules
}

// Running reports whether a session is in progress.
func (g *Game) Running() bool {
	return g.running
}

// EndReason returns why the last session stopped, or EndNone.
func (g *Game) EndReason() EndReason {
	return g.endReason
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Streak returns the number of consecutive correct taps.
func (g *Game) Streak() int {
	return g.streak
}

// BestStreak returns the longest streak of the session.
func (g *Game) BestStreak() int {
	return g.bestStreak
}

// Hits returns the number of correct taps.
func (g *Game) Hits() int {
	return g.hits
}

// Misses returns the number of reaction windows that ran out.
func (g *Game) Misses() int {
	return g.misses
}

// WrongTaps returns the number of wrong taps.
func (g *Game) WrongTaps() int {
	return g.wrong
}

// Rounds returns the number of rounds dealt this session, including the current one.
func (g *Game) Rounds() int {
	return g.round.Number
}

// Elapsed returns the ticks since the session started.
func (g *Game) Elapsed() int {
	return g.elapsed
}

// SessionTicksLeft returns the time left on the session clock (timed mode).
func (g *Game) SessionTicksLeft() int {
	return g.clock
}

// Level returns how far the reaction window has tightened, 0.0 to 1.0.
func (g *Game) Level() float64 {
	return g.progression.Level(g.score)
}

// Round returns a copy of the current round.
func (g *Game) Round() Round {
	r := g.round
	r.Tiles = slices.Clone(g.round.Tiles)
	return r
}
