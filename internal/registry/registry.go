// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/core"
)

// Game is the interface every scene implements.
// Scenes contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "tapcolour").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset activates the scene. Any previous session is discarded and,
	// if the scene was created with AutoStart, a new session begins at once.
	Reset(cfg core.RuntimeConfig)

	// Resize adapts the layout to a new screen size without ending the session.
	Resize(width, height int)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, waiting, game over, paused).
	State() core.GameState

	// Score returns the current score. It has no side effects.
	Score() int

	// SlotAt maps a screen cell to a tile slot, or -1 when no tile is there.
	SlotAt(x, y int) int
}

// Host is the presentation context a scene reports to.
// Scenes borrow the host; they never own or close it.
type Host interface {
	SessionStarted(info SessionInfo)
	SessionEnded(res Result)
}

// SessionInfo describes a session that has just started.
type SessionInfo struct {
	GameID     string
	Difficulty config.DifficultyIndex
	Seed       int64
}

// Result is reported to the host exactly once when a session ends.
type Result struct {
	GameID     string
	Difficulty config.DifficultyIndex
	Score      int
	Rounds     int
	BestStreak int
	Reason     string // Why the session ended, e.g. "wrong_tap"
	Ticks      int    // Session length in simulation ticks
}

// ReasonAbandoned is the Result reason for a session discarded by a
// re-activation before it ended on its own.
const ReasonAbandoned = "abandoned"

// Options configures a scene at construction.
type Options struct {
	Difficulty config.DifficultyIndex
	AutoStart  bool
	Rules      *config.TapConfig // nil means the built-in defaults
	Host       Host              // may be nil
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new scene.
type Factory func(opts Options) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f(Options{}).Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(opts), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the display title of a registered game, or the ID itself.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}
