package tui

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/presence"
	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func result(score int, reason string) registry.Result {
	return registry.Result{
		GameID:     "tapcolour",
		Difficulty: config.DifficultyMedium,
		Score:      score,
		Rounds:     score + 1,
		BestStreak: score,
		Reason:     reason,
	}
}

func TestSessionHostSavesScore(t *testing.T) {
	store := openTestStore(t)
	h := newSessionHost(Env{Store: store, Player: "alice"})

	h.SessionStarted(registry.SessionInfo{GameID: "tapcolour", Difficulty: config.DifficultyMedium})
	h.SessionEnded(result(7, "wrong_tap"))

	scores, err := store.TopScores("tapcolour", config.DifficultyMedium, 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}
	got := scores[0]
	if got.Score != 7 || got.Player != "alice" || got.EndReason != "wrong_tap" || got.Rounds != 8 {
		t.Errorf("unexpected entry %+v", got)
	}
	if h.started != 1 || h.ended != 1 {
		t.Errorf("started=%d ended=%d, expected 1 and 1", h.started, h.ended)
	}
}

func TestSessionHostSkipsAbandonedAndEmpty(t *testing.T) {
	store := openTestStore(t)
	h := newSessionHost(Env{Store: store})

	h.SessionEnded(result(5, registry.ReasonAbandoned))
	h.SessionEnded(result(0, "timeout"))

	scores, _ := store.TopScores("tapcolour", config.DifficultyMedium, 10)
	if len(scores) != 0 {
		t.Errorf("expected nothing recorded, got %+v", scores)
	}
}

func TestSessionHostWithoutStore(t *testing.T) {
	h := newSessionHost(Env{})
	h.SessionEnded(result(3, "timeout"))
	if note := h.takeNote(); note != "" {
		t.Errorf("no store should mean no record note, got %q", note)
	}
}

func TestSessionHostAnnouncesHighScore(t *testing.T) {
	store := openTestStore(t)
	reg := presence.NewRegistry()
	me := presence.NewChannelSession("me", "alice", 8)
	other := presence.NewChannelSession("other", "bob", 8)
	reg.Register(me)
	reg.Register(other)
	drainPresence(me)
	drainPresence(other)

	h := newSessionHost(Env{Store: store, Presence: reg, Session: me, Player: "alice"})
	h.SessionEnded(result(4, "timeout"))

	if note := h.takeNote(); note != "NEW HIGH SCORE: 4" {
		t.Errorf("note = %q", note)
	}
	if note := h.takeNote(); note != "" {
		t.Errorf("takeNote should clear the note, got %q", note)
	}

	got := drainPresence(other)
	if len(got) != 1 {
		t.Fatalf("bob got %d events, expected 1", len(got))
	}
	hs, ok := got[0].(presence.HighScoreEvent)
	if !ok || hs.Player != "alice" || hs.Score != 4 || hs.Difficulty != config.DifficultyMedium {
		t.Errorf("unexpected announcement %+v", got[0])
	}
	if len(drainPresence(me)) != 0 {
		t.Error("the scorer should not be told about their own score")
	}

	// Not a server best any more, so nobody hears about it.
	h.SessionEnded(result(2, "timeout"))
	if len(drainPresence(other)) != 0 {
		t.Error("a lower score should not be announced")
	}
}

func TestSessionHostPersonalBest(t *testing.T) {
	store := openTestStore(t)
	carol := newSessionHost(Env{Store: store, Player: "carol"})
	carol.SessionEnded(result(10, "timeout"))

	dave := newSessionHost(Env{Store: store, Player: "dave"})
	dave.SessionEnded(result(6, "timeout"))
	if note := dave.takeNote(); note != "NEW PERSONAL BEST: 6" {
		t.Errorf("first score below the server best: note = %q", note)
	}

	dave.SessionEnded(result(5, "timeout"))
	if note := dave.takeNote(); note != "" {
		t.Errorf("a worse score should not be a record, got %q", note)
	}
}

// brokenReads saves scores but cannot read the bests back.
type brokenReads struct {
	saved []storage.ScoreEntry
}

var errRead = errors.New("read failed")

func (b *brokenReads) HighScore(string, config.DifficultyIndex) (int, error) { return 0, errRead }

func (b *brokenReads) PersonalBest(string, config.DifficultyIndex, string) (int, error) {
	return 0, errRead
}

func (b *brokenReads) SaveScore(e storage.ScoreEntry) (int64, error) {
	b.saved = append(b.saved, e)
	return int64(len(b.saved)), nil
}

func TestSessionHostUnreadableBestIsNotBeaten(t *testing.T) {
	reg := presence.NewRegistry()
	me := presence.NewChannelSession("me", "alice", 8)
	other := presence.NewChannelSession("other", "bob", 8)
	reg.Register(me)
	reg.Register(other)
	drainPresence(other)

	recorder := &brokenReads{}
	h := newSessionHost(Env{Presence: reg, Session: me, Player: "alice"})
	h.store = recorder
	h.SessionEnded(result(3, "timeout"))

	if len(recorder.saved) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(recorder.saved))
	}
	if note := h.takeNote(); note != "" {
		t.Errorf("no record can be claimed without the stored bests, note = %q", note)
	}
	if got := drainPresence(other); len(got) != 0 {
		t.Errorf("nothing should be announced, got %+v", got)
	}
}

func TestSessionHostNilStoreStaysNil(t *testing.T) {
	if h := newSessionHost(Env{}); h.store != nil {
		t.Error("a missing store should leave the host without a recorder")
	}
}

func drainPresence(s *presence.ChannelSession) []presence.Event {
	var out []presence.Event
	for {
		select {
		case evt := <-s.Events():
			out = append(out, evt)
		default:
			return out
		}
	}
}
