package tapgame

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tapcolour/internal/config"
)

func testRules(mode Mode, d config.DifficultyIndex) Rules {
	return NewRules(mode, d, config.DefaultTapConfig(), 60)
}

// wrongSlot returns a slot that does not hold the target.
func wrongSlot(r Round) int {
	for i, c := range r.Tiles {
		if c != r.Target {
			return i
		}
	}
	return -1
}

func TestNotRunningBeforeStart(t *testing.T) {
	g := New(testRules(ModeClassic, config.DifficultyEasy), 1)
	if g.Running() {
		t.Error("game should not run before Start")
	}
	if g.Tap(0) != OutcomeNone || g.Tick() != OutcomeNone {
		t.Error("input before Start should be ignored")
	}
	if g.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", g.Score())
	}
}

func TestRoundHasExactlyOneTarget(t *testing.T) {
	for _, d := range config.AllDifficulties() {
		g := New(testRules(ModeClassic, d), 42)
		g.Start()
		want := config.DefaultTapConfig().Preset(d).Tiles

		for i := 0; i < 50; i++ {
			r := g.Round()
			if len(r.Tiles) != want {
				t.Fatalf("%s: round has %d tiles, expected %d", d, len(r.Tiles), want)
			}
			matches := 0
			for _, c := range r.Tiles {
				if c == r.Target {
					matches++
				}
			}
			if matches != 1 {
				t.Fatalf("%s: round %d has %d matching tiles", d, r.Number, matches)
			}
			sorted := slices.Clone(r.Tiles)
			slices.Sort(sorted)
			if len(slices.Compact(sorted)) != len(r.Tiles) {
				t.Fatalf("%s: round %d repeats a colour: %v", d, r.Number, r.Tiles)
			}
			if g.Tap(r.TargetSlot()) != OutcomeCorrect {
				t.Fatalf("%s: tapping the target should be correct", d)
			}
		}
	}
}

func TestCorrectTapScores(t *testing.T) {
	g := New(testRules(ModeClassic, config.DifficultyEasy), 3)
	g.Start()

	first := g.Round()
	if out := g.Tap(first.TargetSlot()); out != OutcomeCorrect {
		t.Fatalf("Tap(target) = %s, expected Correct", out)
	}
	if g.Score() != 1 || g.Streak() != 1 || g.Hits() != 1 {
		t.Errorf("score=%d streak=%d hits=%d, expected 1/1/1", g.Score(), g.Streak(), g.Hits())
	}
	if g.Round().Number != 2 {
		t.Errorf("round number = %d, expected 2", g.Round().Number)
	}
	if g.Round().Target == first.Target {
		t.Error("target should change between consecutive rounds")
	}
}

func TestWrongTapEndsClassic(t *testing.T) {
	g := New(testRules(ModeClassic, config.DifficultyMedium), 5)
	g.Start()
	g.Tap(g.Round().TargetSlot())

	if out := g.Tap(wrongSlot(g.Round())); out != OutcomeWrong {
		t.Fatalf("Tap(wrong) = %s, expected Wrong", out)
	}
	if g.Running() {
		t.Error("classic session should end on a wrong tap")
	}
	if g.EndReason() != EndWrongTap {
		t.Errorf("EndReason() = %s, expected wrong_tap", g.EndReason())
	}
	if g.Score() != 1 {
		t.Errorf("final score = %d, expected 1 to be kept", g.Score())
	}
	if g.Tap(0) != OutcomeNone {
		t.Error("taps after the end should be ignored")
	}
}

func TestOutOfRangeTapIgnored(t *testing.T) {
	g := New(testRules(ModeClassic, config.DifficultyEasy), 9)
	g.Start()
	before := g.Round()

	for _, slot := range []int{-1, len(before.Tiles), 99} {
		if out := g.Tap(slot); out != OutcomeNone {
			t.Errorf("Tap(%d) = %s, expected None", slot, out)
		}
	}
	if !g.Running() || g.Round().Number != before.Number {
		t.Error("out-of-range taps should not change the session")
	}
}

func TestWindowTimeoutEndsClassic(t *testing.T) {
	g := New(testRules(ModeClassic, config.DifficultyEasy), 11)
	g.Start()
	window := g.Round().Window

	for i := 0; i < window-1; i++ {
		if out := g.Tick(); out != OutcomeNone {
			t.Fatalf("tick %d = %s, expected None", i, out)
		}
	}
	if out := g.Tick(); out != OutcomeMissed {
		t.Fatalf("last tick = %s, expected Missed", out)
	}
	if g.Running() || g.EndReason() != EndTimeout {
		t.Errorf("running=%v reason=%s, expected ended by timeout", g.Running(), g.EndReason())
	}
}

func TestWindowShrinksWithScore(t *testing.T) {
	rules := testRules(ModeClassic, config.DifficultyExpert)
	g := New(rules, 13)
	g.Start()

	prev := g.Round().Window
	if prev != rules.WindowTicks(0) {
		t.Errorf("first window = %d, expected %d", prev, rules.WindowTicks(0))
	}
	for i := 0; i < 100; i++ {
		g.Tap(g.Round().TargetSlot())
		w := g.Round().Window
		if w > prev {
			t.Fatalf("window grew from %d to %d at score %d", prev, w, g.Score())
		}
		prev = w
	}
	floor := config.MsToTicks(rules.Preset.MinWindowMs, rules.TickRate)
	if prev != floor {
		t.Errorf("window after 100 hits = %d, expected floor %d", prev, floor)
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	g := New(testRules(ModeTimed, config.DifficultyMedium), 17)
	g.Start()

	last := 0
	for i := 0; i < 500 && g.Running(); i++ {
		r := g.Round()
		switch i % 3 {
		case 0:
			g.Tap(r.TargetSlot())
		case 1:
			g.Tap(wrongSlot(r))
		default:
			g.Tick()
		}
		if g.Score() < last {
			t.Fatalf("score dropped from %d to %d", last, g.Score())
		}
		last = g.Score()
	}
}

func TestStreakBonus(t *testing.T) {
	rules := testRules(ModeClassic, config.DifficultyExpert)
	g := New(rules, 19)
	g.Start()

	every := rules.Preset.StreakBonus
	for i := 0; i < every; i++ {
		g.Tap(g.Round().TargetSlot())
	}
	if g.Score() != every+1 {
		t.Errorf("score after %d hits = %d, expected %d with the streak bonus", every, g.Score(), every+1)
	}
	if g.BestStreak() != every {
		t.Errorf("BestStreak() = %d, expected %d", g.BestStreak(), every)
	}
}

func TestTimedWrongTapCostsTime(t *testing.T) {
	rules := testRules(ModeTimed, config.DifficultyEasy)
	g := New(rules, 23)
	g.Start()

	before := g.SessionTicksLeft()
	if out := g.Tap(wrongSlot(g.Round())); out != OutcomeWrong {
		t.Fatalf("Tap(wrong) = %s, expected Wrong", out)
	}
	if !g.Running() {
		t.Fatal("timed session should survive a wrong tap")
	}
	if got := before - g.SessionTicksLeft(); got != rules.PenaltyTicks {
		t.Errorf("clock dropped by %d, expected %d", got, rules.PenaltyTicks)
	}
	if g.Streak() != 0 {
		t.Error("wrong tap should reset the streak")
	}
}

func TestTimedMissDealsNewRound(t *testing.T) {
	g := New(testRules(ModeTimed, config.DifficultyEasy), 29)
	g.Start()

	r := g.Round()
	for i := 0; i < r.Window; i++ {
		g.Tick()
	}
	if !g.Running() {
		t.Fatal("timed session should survive a missed window")
	}
	if g.Misses() != 1 || g.Round().Number != r.Number+1 {
		t.Errorf("misses=%d round=%d, expected 1 and %d", g.Misses(), g.Round().Number, r.Number+1)
	}
}

func TestTimedClockRunsOut(t *testing.T) {
	rules := testRules(ModeTimed, config.DifficultyEasy)
	g := New(rules, 31)
	g.Start()

	for i := 0; i < rules.SessionTicks && g.Running(); i++ {
		g.Tick()
	}
	if g.Running() {
		t.Fatal("session should end when the clock runs out")
	}
	if g.EndReason() != EndTimeUp {
		t.Errorf("EndReason() = %s, expected time_up", g.EndReason())
	}
	if g.SessionTicksLeft() != 0 {
		t.Errorf("SessionTicksLeft() = %d, expected 0", g.SessionTicksLeft())
	}
}

func TestInterferenceInk(t *testing.T) {
	plain := New(testRules(ModeClassic, config.DifficultyEasy), 37)
	plain.Start()
	tricky := New(testRules(ModeClassic, config.DifficultyExpert), 37)
	tricky.Start()

	for i := 0; i < 30; i++ {
		p, x := plain.Round(), tricky.Round()
		if p.Ink != p.Target {
			t.Fatalf("easy round %d: ink %d differs from target %d", p.Number, p.Ink, p.Target)
		}
		if x.Ink == x.Target {
			t.Fatalf("expert round %d: ink should mislead", x.Number)
		}
		plain.Tap(p.TargetSlot())
		tricky.Tap(x.TargetSlot())
	}
}

func TestDeterministic(t *testing.T) {
	play := func() []Round {
		g := New(testRules(ModeTimed, config.DifficultyExpert), 1234)
		g.Start()
		var rounds []Round
		for i := 0; i < 40; i++ {
			rounds = append(rounds, g.Round())
			if i%4 == 3 {
				g.Tap(wrongSlot(g.Round()))
			} else {
				g.Tap(g.Round().TargetSlot())
			}
			g.Tick()
		}
		return rounds
	}

	a, b := play(), play()
	for i := range a {
		if a[i].Target != b[i].Target || a[i].Ink != b[i].Ink || !slices.Equal(a[i].Tiles, b[i].Tiles) {
			t.Fatalf("round %d differs between runs with the same seed", i)
		}
	}
}

func TestStartResets(t *testing.T) {
	g := New(testRules(ModeClassic, config.DifficultyEasy), 41)
	g.Start()
	g.Tap(g.Round().TargetSlot())
	g.Tap(wrongSlot(g.Round()))

	g.Start()
	if !g.Running() || g.Score() != 0 || g.EndReason() != EndNone || g.Round().Number != 1 {
		t.Errorf("Start should reset: running=%v score=%d reason=%s round=%d",
			g.Running(), g.Score(), g.EndReason(), g.Round().Number)
	}
}

func TestRoundCopyIsIndependent(t *testing.T) {
	g := New(testRules(ModeClassic, config.DifficultyEasy), 43)
	g.Start()
	r := g.Round()
	r.Tiles[0] = -1
	if g.Round().Tiles[0] == -1 {
		t.Error("Round() should return a copy of the tiles")
	}
}

func TestSwatchAt(t *testing.T) {
	if SwatchAt(0).Name != "RED" {
		t.Errorf("SwatchAt(0) = %s, expected RED", SwatchAt(0).Name)
	}
	if SwatchAt(-1).Name != "?" || SwatchAt(len(Palette())).Name != "?" {
		t.Error("out-of-range swatches should be the placeholder")
	}
	names := map[string]bool{}
	for _, s := range Palette() {
		names[s.Name] = true
	}
	if len(names) != config.PaletteSize {
		t.Errorf("palette has %d distinct names, expected %d", len(names), config.PaletteSize)
	}
}
