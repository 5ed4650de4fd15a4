package core

// RuntimeConfig contains configuration passed to scenes at activation.
// Scenes use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a scene.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score, never negative
	Waiting  bool // Activated but waiting for a start trigger
	GameOver bool // The session has ended
	Paused   bool // The session is paused
}

// EventKind identifies a gameplay event reported by a step.
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventCorrectTap
	EventWrongTap
	EventMissed // reaction window ran out without ending the session
	EventSessionEnded
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSessionStarted:
		return "SessionStarted"
	case EventCorrectTap:
		return "CorrectTap"
	case EventWrongTap:
		return "WrongTap"
	case EventMissed:
		return "Missed"
	case EventSessionEnded:
		return "SessionEnded"
	default:
		return "Unknown"
	}
}

// Event is something that happened during a step that the platform may
// want to react to (sound, flash, logging).
type Event struct {
	Kind  EventKind
	Score int // Score after the event
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has returns true if an event of the given kind occurred during the step.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
