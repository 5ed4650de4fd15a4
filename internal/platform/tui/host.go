package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/presence"
	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

// scoreRecorder is the part of the score store a host needs.
type scoreRecorder interface {
	HighScore(gameID string, d config.DifficultyIndex) (int, error)
	PersonalBest(gameID string, d config.DifficultyIndex, player string) (int, error)
	SaveScore(e storage.ScoreEntry) (int64, error)
}

// sessionHost is the registry.Host the platform lends to every scene.
// It records finished sessions and announces new server bests.
type sessionHost struct {
	store     scoreRecorder      // may be nil
	presence  *presence.Registry // nil for local play
	sessionID presence.SessionID
	player    string
	logger    *log.Logger

	started int
	ended   int
	note    string // Record banner for the last finished session
}

func newSessionHost(env Env) *sessionHost {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &sessionHost{
		presence: env.Presence,
		player:   env.Player,
		logger:   logger,
	}
	if env.Store != nil {
		h.store = env.Store
	}
	if env.Session != nil {
		h.sessionID = env.Session.ID()
	}
	return h
}

// SessionStarted implements registry.Host.
func (h *sessionHost) SessionStarted(info registry.SessionInfo) {
	h.started++
	h.note = ""
	h.logger.Debug("session started",
		"game", info.GameID,
		"difficulty", info.Difficulty,
		"seed", info.Seed,
		"player", h.player,
	)
}

// SessionEnded implements registry.Host. Abandoned and scoreless sessions
// are logged but not recorded.
func (h *sessionHost) SessionEnded(res registry.Result) {
	h.ended++
	h.logger.Info("session ended",
		"game", res.GameID,
		"difficulty", res.Difficulty,
		"score", res.Score,
		"rounds", res.Rounds,
		"reason", res.Reason,
		"player", h.player,
	)

	if h.store == nil || res.Reason == registry.ReasonAbandoned || res.Score <= 0 {
		return
	}

	// A best that cannot be read is never beaten.
	high, err := h.store.HighScore(res.GameID, res.Difficulty)
	highKnown := err == nil
	if !highKnown {
		h.logger.Warn("cannot read high score", "error", err)
	}
	personal, personalKnown := 0, false
	if h.player != "" {
		if personal, err = h.store.PersonalBest(res.GameID, res.Difficulty, h.player); err != nil {
			h.logger.Warn("cannot read personal best", "error", err)
		} else {
			personalKnown = true
		}
	}

	_, err = h.store.SaveScore(storage.ScoreEntry{
		GameID:     res.GameID,
		Difficulty: res.Difficulty,
		Player:     h.player,
		Score:      res.Score,
		Rounds:     res.Rounds,
		BestStreak: res.BestStreak,
		EndReason:  res.Reason,
	})
	if err != nil {
		h.logger.Error("cannot save score", "error", err)
		return
	}

	switch {
	case highKnown && res.Score > high:
		h.note = fmt.Sprintf("NEW HIGH SCORE: %d", res.Score)
		h.logger.Info("new high score",
			"game", res.GameID,
			"difficulty", res.Difficulty,
			"score", res.Score,
			"player", h.player,
		)
		if h.presence != nil {
			h.presence.Broadcast(presence.HighScoreEvent{
				Player:     h.player,
				GameID:     res.GameID,
				Difficulty: res.Difficulty,
				Score:      res.Score,
			}, h.sessionID)
		}
	case personalKnown && res.Score > personal:
		h.note = fmt.Sprintf("NEW PERSONAL BEST: %d", res.Score)
	}
}

// takeNote returns and clears the record banner.
func (h *sessionHost) takeNote() string {
	n := h.note
	h.note = ""
	return n
}
