// Package scene hosts one tap-colour play session inside a screen.
// A Scene bridges the platform (which owns the terminal, timing and
// persistence) and the tapgame rules engine, and reports session
// start and end to a borrowed registry.Host.
package scene

import (
	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/core"
	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/tapgame"
)

// Registered game IDs
const (
	ClassicID = "tapcolour"
	TimedID   = "tapcolour_timed"
)

// Feedback colours for the border flash
const (
	flashCorrect = core.ColorBrightGreen
	flashWrong   = core.ColorBrightRed
	flashMissed  = core.ColorOrange
)

// Phase is the lifecycle state of a scene.
type Phase int

const (
	PhaseInactive Phase = iota // Activated, waiting for a start trigger
	PhaseActive                // A session is running
	PhaseEnded                 // The session is over; the final score is kept
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Config is the session configuration a scene is created with.
type Config struct {
	Mode       tapgame.Mode
	Difficulty config.DifficultyIndex
	AutoStart  bool // Read once per activation
	Rules      config.TapConfig
	Host       registry.Host // Borrowed; may be nil
}

// Scene runs tap-colour sessions.
type Scene struct {
	cfg     Config
	runtime core.RuntimeConfig
	rules   tapgame.Rules
	game    *tapgame.Game
	bg      Background
	layout  Layout

	phase      Phase
	paused     bool
	seed       int64 // Seed for the next activation
	gameSeed   int64 // Seed the current game was built with
	reported   bool  // Host already told about the current session's end
	rulesDirty bool  // Rules changed since the game was built
}

// New creates a scene. It stays inactive until Reset is called.
func New(cfg Config) *Scene {
	s := &Scene{cfg: cfg, runtime: core.DefaultConfig()}
	s.rules = tapgame.NewRules(cfg.Mode, cfg.Difficulty, cfg.Rules, s.runtime.TickRate)
	s.layout = NewLayout(s.runtime.ScreenW, s.runtime.ScreenH, s.tileCount())
	return s
}

// ID returns the unique identifier for this game.
func (s *Scene) ID() string {
	if s.cfg.Mode == tapgame.ModeTimed {
		return TimedID
	}
	return ClassicID
}

// Title returns the display name for this game.
func (s *Scene) Title() string {
	if s.cfg.Mode == tapgame.ModeTimed {
		return "Tap That Colour: Time Attack"
	}
	return "Tap That Colour"
}

// SetHost replaces the host. Call it before the scene is activated.
func (s *Scene) SetHost(h registry.Host) {
	s.cfg.Host = h
}

// SetAutoStart sets whether the next activation starts a session at once.
func (s *Scene) SetAutoStart(v bool) {
	s.cfg.AutoStart = v
}

// SetRules replaces the tuning. A running session keeps its rules; the
// new ones apply from the next session start.
func (s *Scene) SetRules(rules config.TapConfig) {
	s.cfg.Rules = rules
	s.rulesDirty = true
}

// Difficulty returns the difficulty the scene was created with.
func (s *Scene) Difficulty() config.DifficultyIndex {
	return s.cfg.Difficulty
}

// Phase returns the lifecycle state.
func (s *Scene) Phase() Phase {
	return s.phase
}

// Round returns the current round. Only meaningful while active or ended.
func (s *Scene) Round() tapgame.Round {
	if s.game == nil {
		return tapgame.Round{}
	}
	return s.game.Round()
}

// Reset activates the scene with the given runtime configuration.
func (s *Scene) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = core.DefaultConfig().TickRate
	}
	s.runtime = rc
	s.seed = rc.Seed
	s.bg.Reset()
	s.activate(s.cfg.AutoStart)
}

// Resize adapts the layout to a new screen size.
func (s *Scene) Resize(width, height int) {
	s.runtime.ScreenW = width
	s.runtime.ScreenH = height
	s.layout = NewLayout(width, height, s.tileCount())
}

// activate discards any previous session and either starts a new one or
// waits for a start trigger.
func (s *Scene) activate(autoStart bool) []core.Event {
	if s.phase == PhaseActive {
		s.report(registry.ReasonAbandoned)
	}

	s.rebuild(s.seed)
	s.seed++
	s.phase = PhaseInactive
	s.paused = false

	if autoStart {
		return s.start(nil)
	}
	return nil
}

// rebuild creates a fresh rules engine for the next session.
func (s *Scene) rebuild(seed int64) {
	s.rules = tapgame.NewRules(s.cfg.Mode, s.cfg.Difficulty, s.cfg.Rules, s.runtime.TickRate)
	s.game = tapgame.New(s.rules, seed)
	s.gameSeed = seed
	s.rulesDirty = false
	s.layout = NewLayout(s.runtime.ScreenW, s.runtime.ScreenH, s.tileCount())
}

// start begins a session and tells the host.
func (s *Scene) start(events []core.Event) []core.Event {
	if s.rulesDirty {
		s.rebuild(s.gameSeed)
	}
	s.game.Start()
	s.phase = PhaseActive
	s.paused = false
	s.reported = false

	if s.cfg.Host != nil {
		s.cfg.Host.SessionStarted(registry.SessionInfo{
			GameID:     s.ID(),
			Difficulty: s.cfg.Difficulty,
			Seed:       s.gameSeed,
		})
	}
	return append(events, core.Event{Kind: core.EventSessionStarted, Score: 0})
}

// report tells the host the current session is over. It runs at most once
// per session.
func (s *Scene) report(reason string) {
	if s.reported {
		return
	}
	s.reported = true
	if s.cfg.Host == nil {
		return
	}
	s.cfg.Host.SessionEnded(registry.Result{
		GameID:     s.ID(),
		Difficulty: s.cfg.Difficulty,
		Score:      s.game.Score(),
		Rounds:     s.game.Rounds(),
		BestStreak: s.game.BestStreak(),
		Reason:     reason,
		Ticks:      s.game.Elapsed(),
	})
}

// Step advances the scene by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if s.game == nil {
		return core.StepResult{State: s.State()}
	}

	var events []core.Event
	s.bg.Step()

	switch s.phase {
	case PhaseInactive:
		// A tap that starts the session is consumed.
		if _, tapped := in.Tapped(); tapped || in.Has(core.ActionConfirm) {
			events = s.start(events)
		}

	case PhaseActive:
		if in.Has(core.ActionPause) {
			s.paused = !s.paused
		}
		if s.paused {
			break
		}
		if slot, ok := in.Tapped(); ok {
			events = s.apply(events, s.game.Tap(slot))
		}
		if s.game.Running() {
			events = s.apply(events, s.game.Tick())
		}
		if !s.game.Running() {
			s.phase = PhaseEnded
			s.report(s.game.EndReason().String())
			events = append(events, core.Event{Kind: core.EventSessionEnded, Score: s.game.Score()})
		}

	case PhaseEnded:
		if in.Has(core.ActionRestart) {
			// Retrying skips the start prompt.
			s.bg.Reset()
			events = s.activate(true)
		}
	}

	return core.StepResult{State: s.State(), Events: events}
}

// apply turns a rules outcome into feedback and events.
func (s *Scene) apply(events []core.Event, out tapgame.Outcome) []core.Event {
	score := s.game.Score()
	switch out {
	case tapgame.OutcomeCorrect:
		s.bg.Flash(flashCorrect, s.rules.FlashTicks)
		return append(events, core.Event{Kind: core.EventCorrectTap, Score: score})
	case tapgame.OutcomeWrong:
		s.bg.Flash(flashWrong, s.rules.FlashTicks)
		return append(events, core.Event{Kind: core.EventWrongTap, Score: score})
	case tapgame.OutcomeMissed:
		s.bg.Flash(flashMissed, s.rules.FlashTicks)
		if s.game.Running() {
			return append(events, core.Event{Kind: core.EventMissed, Score: score})
		}
	}
	return events
}

// Score returns the current score: 0 before the first session, the live
// score while active, and the final score after the session ends.
func (s *Scene) Score() int {
	if s.game == nil {
		return 0
	}
	return s.game.Score()
}

// State returns the current game state.
func (s *Scene) State() core.GameState {
	return core.GameState{
		Score:    s.Score(),
		Waiting:  s.phase == PhaseInactive,
		GameOver: s.phase == PhaseEnded,
		Paused:   s.paused,
	}
}

// SlotAt maps a screen cell to a tile slot, or -1 when no tile is there.
func (s *Scene) SlotAt(x, y int) int {
	return s.layout.SlotAt(x, y)
}

// tileCount returns how many tiles each round of the current game shows.
// Rules set with SetRules only count once the game is rebuilt.
func (s *Scene) tileCount() int {
	n := s.rules.Preset.Tiles
	return core.Clamp(n, 1, core.Min(config.PaletteSize, core.MaxSlots))
}

func init() {
	registry.Register(ClassicID, func(opts registry.Options) registry.Game {
		return New(configFrom(tapgame.ModeClassic, opts))
	})
	registry.Register(TimedID, func(opts registry.Options) registry.Game {
		return New(configFrom(tapgame.ModeTimed, opts))
	})
}

// configFrom builds a scene configuration from registry options.
func configFrom(mode tapgame.Mode, opts registry.Options) Config {
	rules := config.DefaultTapConfig()
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	return Config{
		Mode:       mode,
		Difficulty: opts.Difficulty,
		AutoStart:  opts.AutoStart,
		Rules:      rules,
		Host:       opts.Host,
	}
}
