// Package presence tracks the players connected to the SSH server and
// delivers server-wide announcements to them.
package presence

import (
	"fmt"
	"sync"
	"time"
)

// SessionID uniquely identifies a connected player (e.g., SSH connection).
type SessionID string

// NewSessionID builds a session ID from the player's user name.
func NewSessionID(user string) SessionID {
	if user == "" {
		user = "anonymous"
	}
	return SessionID(fmt.Sprintf("%s-%d", user, time.Now().UnixNano()))
}

// SessionHandle is the transport-neutral interface for talking to a session.
// It lets the server announce events without depending on Wish/Bubble Tea.
type SessionHandle interface {
	// ID returns the unique session identifier.
	ID() SessionID

	// Player returns the display name of the connected player.
	Player() string

	// Send delivers an event asynchronously. Must never block.
	Send(evt Event)

	// Done returns a channel that closes when the session ends.
	Done() <-chan struct{}
}

// ChannelSession is a SessionHandle backed by a buffered channel.
// The TUI layer reads Events() from a tea.Cmd.
type ChannelSession struct {
	id       SessionID
	player   string
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a new channel-based session handle.
// bufferSize controls how many events can wait before the oldest is dropped.
func NewChannelSession(id SessionID, player string, bufferSize int) *ChannelSession {
	if bufferSize < 1 {
		bufferSize = 16
	}
	return &ChannelSession{
		id:     id,
		player: player,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Player returns the player's display name.
func (s *ChannelSession) Player() string {
	return s.player
}

// Send delivers an event to the session.
// If the buffer is full, the oldest event is dropped to make room.
func (s *ChannelSession) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSession) Events() <-chan Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the session as done.
// Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
