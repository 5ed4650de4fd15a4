package presence

import (
	"sort"
	"sync"

	"github.com/vovakirdan/tapcolour/internal/config"
)

// Event is something announced to connected sessions.
type Event interface {
	presenceEvent()
}

// HighScoreEvent announces a new server best for a game and difficulty.
type HighScoreEvent struct {
	Player     string
	GameID     string
	Difficulty config.DifficultyIndex
	Score      int
}

func (HighScoreEvent) presenceEvent() {}

// PlayersOnlineEvent reports how many players are connected.
type PlayersOnlineEvent struct {
	Count int
}

func (PlayersOnlineEvent) presenceEvent() {}

// Registry tracks connected sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[SessionID]SessionHandle),
	}
}

// Register adds a session and tells everyone the new player count.
func (r *Registry) Register(session SessionHandle) {
	r.mu.Lock()
	r.sessions[session.ID()] = session
	n := len(r.sessions)
	r.mu.Unlock()

	r.Broadcast(PlayersOnlineEvent{Count: n}, "")
}

// Unregister removes a session and tells the rest the new player count.
func (r *Registry) Unregister(id SessionID) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	if ok {
		r.Broadcast(PlayersOnlineEvent{Count: n}, "")
	}
}

// Get retrieves a session by ID.
func (r *Registry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Players returns the sorted display names of connected players.
func (r *Registry) Players() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sessions))
	for _, s := range r.sessions {
		names = append(names, s.Player())
	}
	sort.Strings(names)
	return names
}

// Broadcast sends evt to every session except the one with ID except.
// Pass an empty ID to reach everyone. Sessions whose Done channel has
// closed are skipped.
func (r *Registry) Broadcast(evt Event, except SessionID) {
	r.mu.RLock()
	targets := make([]SessionHandle, 0, len(r.sessions))
	for id, s := range r.sessions {
		if id != except {
			targets = append(targets, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range targets {
		select {
		case <-s.Done():
			continue
		default:
		}
		s.Send(evt)
	}
}
