package scene

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/core"
	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/tapgame"
)

// recordingHost captures the calls a scene makes to its host.
type recordingHost struct {
	started []registry.SessionInfo
	ended   []registry.Result
}

func (h *recordingHost) SessionStarted(info registry.SessionInfo) { h.started = append(h.started, info) }
func (h *recordingHost) SessionEnded(res registry.Result) { h.ended = append(h.ended, res) }

func newTestScene(mode tapgame.Mode, autoStart bool, host registry.Host) *Scene {
	s := New(Config{
		Mode:       mode,
		Difficulty: config.DifficultyEasy,
		AutoStart:  autoStart,
		Rules:      config.DefaultTapConfig(),
		Host:       host,
	})
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	s.Reset(cfg)
	return s
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func tap(slot int) core.InputFrame {
	f := core.NewInputFrame()
	f.SetTap(slot)
	return f
}

func action(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Set(a)
	return f
}

// wrongSlot returns a slot that does not hold the target.
func wrongSlot(r tapgame.Round) int {
	for i, c := range r.Tiles {
		if c != r.Target {
			return i
		}
	}
	return -1
}

func TestAutoStartBeginsSession(t *testing.T) {
	host := &recordingHost{}
	s := newTestScene(tapgame.ModeClassic, true, host)

	if s.Phase() != PhaseActive {
		t.Fatalf("Phase() = %s, expected active", s.Phase())
	}
	if len(host.started) != 1 {
		t.Fatalf("host saw %d starts, expected 1", len(host.started))
	}
	if host.started[0].GameID != ClassicID {
		t.Errorf("GameID = %q, expected %q", host.started[0].GameID, ClassicID)
	}
}

func TestWaitsForStartTrigger(t *testing.T) {
	host := &recordingHost{}
	s := newTestScene(tapgame.ModeClassic, false, host)

	for i := 0; i < 300; i++ {
		res := s.Step(idle())
		if !res.State.Waiting {
			t.Fatal("scene should wait without a start trigger")
		}
		if s.Score() != 0 {
			t.Fatalf("score changed to %d before a session", s.Score())
		}
	}
	if len(host.started) != 0 {
		t.Error("host should not see a session start")
	}

	res := s.Step(action(core.ActionConfirm))
	if !res.Has(core.EventSessionStarted) || s.Phase() != PhaseActive {
		t.Error("Confirm should start the session")
	}
}

func TestStartTapIsConsumed(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, false, nil)

	res := s.Step(tap(0))
	if s.Phase() != PhaseActive {
		t.Fatal("a tap should start the session")
	}
	if res.Has(core.EventCorrectTap) || res.Has(core.EventWrongTap) || s.Score() != 0 {
		t.Error("the tap that starts a session should not be scored")
	}
}

func TestScoreReadIsIdempotent(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, true, nil)
	s.Step(tap(s.Round().TargetSlot()))

	a, b := s.Score(), s.Score()
	if a != b || a != 1 {
		t.Errorf("Score() returned %d then %d, expected 1 twice", a, b)
	}
}

func TestCorrectTapEvents(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, true, nil)
	res := s.Step(tap(s.Round().TargetSlot()))

	if !res.Has(core.EventCorrectTap) {
		t.Error("expected a CorrectTap event")
	}
	if res.State.Score != 1 {
		t.Errorf("State.Score = %d, expected 1", res.State.Score)
	}
}

func TestSessionEndNotifiesHostOnce(t *testing.T) {
	host := &recordingHost{}
	s := newTestScene(tapgame.ModeClassic, true, host)

	s.Step(tap(s.Round().TargetSlot()))
	res := s.Step(tap(wrongSlot(s.Round())))

	if !res.Has(core.EventWrongTap) || !res.Has(core.EventSessionEnded) {
		t.Fatalf("expected WrongTap and SessionEnded, got %+v", res.Events)
	}
	if !res.State.GameOver || s.Phase() != PhaseEnded {
		t.Fatal("scene should be ended")
	}

	for i := 0; i < 100; i++ {
		s.Step(tap(0))
	}
	if len(host.ended) != 1 {
		t.Fatalf("host saw %d ends, expected exactly 1", len(host.ended))
	}
	got := host.ended[0]
	if got.Score != 1 || got.Reason != "wrong_tap" || got.GameID != ClassicID {
		t.Errorf("unexpected result %+v", got)
	}
	if s.Score() != 1 {
		t.Errorf("final score should be kept after the end, got %d", s.Score())
	}
}

func TestTimeoutEndsClassic(t *testing.T) {
	host := &recordingHost{}
	s := newTestScene(tapgame.ModeClassic, true, host)

	window := s.Round().Window
	var ended bool
	for i := 0; i < window+1 && !ended; i++ {
		ended = s.Step(idle()).Has(core.EventSessionEnded)
	}
	if !ended {
		t.Fatal("classic session should end when the window runs out")
	}
	if len(host.ended) != 1 || host.ended[0].Reason != "timeout" {
		t.Errorf("unexpected host results %+v", host.ended)
	}
}

func TestTimedMissKeepsRunning(t *testing.T) {
	s := newTestScene(tapgame.ModeTimed, true, nil)

	window := s.Round().Window
	missed := false
	for i := 0; i < window; i++ {
		if s.Step(idle()).Has(core.EventMissed) {
			missed = true
		}
	}
	if !missed {
		t.Error("expected a Missed event")
	}
	if s.Phase() != PhaseActive {
		t.Error("timed session should survive a missed window")
	}
}

func TestRestartAfterEnd(t *testing.T) {
	host := &recordingHost{}
	s := newTestScene(tapgame.ModeClassic, false, host)
	s.Step(action(core.ActionConfirm))
	s.Step(tap(s.Round().TargetSlot()))
	s.Step(tap(wrongSlot(s.Round())))

	res := s.Step(action(core.ActionRestart))
	if !res.Has(core.EventSessionStarted) || s.Phase() != PhaseActive {
		t.Fatal("Restart should start a new session at once")
	}
	if s.Score() != 0 {
		t.Errorf("score after restart = %d, expected 0", s.Score())
	}
	if len(host.started) != 2 {
		t.Errorf("host saw %d starts, expected 2", len(host.started))
	}
	if host.started[0].Seed == host.started[1].Seed {
		t.Error("a retry should use a fresh seed")
	}
}

func TestRestartIgnoredWhileActive(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, true, nil)
	s.Step(tap(s.Round().TargetSlot()))
	s.Step(action(core.ActionRestart))
	if s.Score() != 1 {
		t.Error("Restart should only work after the session ends")
	}
}

func TestPauseFreezesSession(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, true, nil)
	before := s.Round().Remaining

	res := s.Step(action(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}
	for i := 0; i < 1000; i++ {
		s.Step(idle())
	}
	if s.Round().Remaining != before || s.Phase() != PhaseActive {
		t.Error("paused session should not advance")
	}

	s.Step(tap(s.Round().TargetSlot()))
	if s.Score() != 0 {
		t.Error("taps while paused should be ignored")
	}

	s.Step(action(core.ActionPause))
	if s.State().Paused {
		t.Error("second Pause should resume")
	}
}

func TestResetAbandonsActiveSession(t *testing.T) {
	host := &recordingHost{}
	s := newTestScene(tapgame.ModeClassic, true, host)
	s.Step(tap(s.Round().TargetSlot()))

	s.Reset(core.DefaultConfig())
	if len(host.ended) != 1 || host.ended[0].Reason != "abandoned" {
		t.Fatalf("expected one abandoned result, got %+v", host.ended)
	}
	if s.Score() != 0 {
		t.Errorf("score after reactivation = %d, expected 0", s.Score())
	}
}

func TestSameSeedSameSession(t *testing.T) {
	play := func() []int {
		s := newTestScene(tapgame.ModeTimed, true, nil)
		var targets []int
		for i := 0; i < 30; i++ {
			r := s.Round()
			targets = append(targets, r.Target)
			if i%5 == 4 {
				s.Step(tap(wrongSlot(r)))
			} else {
				s.Step(tap(r.TargetSlot()))
			}
		}
		return append(targets, s.Score())
	}

	a, b := play(), play()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at step %d", i)
		}
	}
}

func TestSetRulesAppliesNextSession(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, false, nil)

	rules := config.DefaultTapConfig()
	rules.Presets.Easy.Tiles = 5
	s.SetRules(rules)

	s.Step(action(core.ActionConfirm))
	if n := len(s.Round().Tiles); n != 5 {
		t.Errorf("round has %d tiles, expected 5 after SetRules", n)
	}
	if len(s.layout.Tiles) != 5 {
		t.Errorf("layout has %d slots, expected 5", len(s.layout.Tiles))
	}
}

func TestSlotAtMatchesLayout(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, true, nil)
	s.Resize(100, 30)

	n := len(s.Round().Tiles)
	if len(s.layout.Tiles) != n {
		t.Fatalf("layout has %d tiles, expected %d", len(s.layout.Tiles), n)
	}
	for i, r := range s.layout.Tiles {
		cx, cy := r.Center()
		if got := s.SlotAt(cx, cy); got != i {
			t.Errorf("SlotAt(center of tile %d) = %d", i, got)
		}
	}
	if s.SlotAt(0, 0) != -1 {
		t.Error("border cell should not be a tile")
	}
	if s.Phase() != PhaseActive {
		t.Error("resizing should not end the session")
	}
}

func TestRenderStates(t *testing.T) {
	screen := core.NewScreen(80, 24)

	s := newTestScene(tapgame.ModeClassic, false, nil)
	s.Render(screen)
	if !strings.Contains(screen.String(), "READY?") {
		t.Error("waiting scene should show the start prompt")
	}

	s.Step(action(core.ActionConfirm))
	s.Render(screen)
	name := tapgame.SwatchAt(s.Round().Target).Name
	if !strings.Contains(screen.String(), name) {
		t.Errorf("active scene should show the target name %q", name)
	}

	s.Step(tap(wrongSlot(s.Round())))
	s.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("ended scene should show game over")
	}
}

func TestRenderTilesInColour(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, true, nil)
	screen := core.NewScreen(80, 24)
	s.Render(screen)

	r := s.Round()
	for i, rect := range s.layout.Tiles {
		cx, cy := rect.Center()
		cell := screen.GetCell(cx, cy)
		want := tapgame.SwatchAt(r.Tiles[i]).Color
		if cell.Rune != TileChar || cell.Color != want {
			t.Errorf("tile %d centre = %q/%s, expected %q/%s", i, cell.Rune, cell.Color, TileChar, want)
		}
	}
}

func TestRenderTinyScreen(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, true, nil)
	s.Resize(10, 5)
	screen := core.NewScreen(10, 5)
	s.Render(screen) // must not panic
	if s.SlotAt(5, 3) != -1 {
		t.Error("no tiles fit on a tiny screen")
	}
}

func TestRegisteredGames(t *testing.T) {
	for _, id := range []string{ClassicID, TimedID} {
		g, err := registry.Create(id, registry.Options{Difficulty: config.DifficultyExpert})
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
		if g.Score() != 0 {
			t.Error("a new scene should score 0")
		}
	}
}

func TestResizeKeepsRunningTileCount(t *testing.T) {
	s := newTestScene(tapgame.ModeClassic, true, nil)
	s.Resize(120, 40)
	if len(s.Round().Tiles) != 3 {
		t.Fatalf("easy round shows %d tiles, expected 3", len(s.Round().Tiles))
	}

	rules := config.DefaultTapConfig()
	rules.Presets.Easy.Tiles = 2
	s.SetRules(rules)
	s.Resize(120, 40)

	if got, want := len(s.layout.Tiles), len(s.Round().Tiles); got != want {
		t.Fatalf("layout has %d slots, running round shows %d tiles", got, want)
	}
	target := s.Round().TargetSlot()
	x, y := s.layout.Tiles[target].Center()
	if s.SlotAt(x, y) != target {
		t.Error("target tile should stay clickable after a reload and resize")
	}

	s.Step(tap(wrongSlot(s.Round())))
	if s.Phase() != PhaseEnded {
		t.Fatalf("phase = %s after a wrong tap, expected ended", s.Phase())
	}
	s.Step(action(core.ActionRestart))
	if got := len(s.Round().Tiles); got != 2 || len(s.layout.Tiles) != 2 {
		t.Errorf("next session shows %d tiles on %d slots, expected 2", got, len(s.layout.Tiles))
	}
}
