package scene

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tapcolour/internal/core"
	"github.com/vovakirdan/tapcolour/internal/tapgame"
)

// Visual characters for rendering
const (
	TileChar      = '█'
	IdleTileChar  = '▒'
	TimerFull     = '━'
	TimerEmpty    = '─'
	hintKeysShort = "asdfgh"
)

// Render draws the current scene to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()
	l := s.layout
	if l.Frame.W != dst.Width() || l.Frame.H != dst.Height() {
		l = NewLayout(dst.Width(), dst.Height(), s.tileCount())
	}

	round := s.Round()
	border := core.ColorGray
	if s.phase == PhaseActive {
		border = tapgame.SwatchAt(round.Target).Color
	}
	s.bg.Render(dst, border, s.phase == PhaseInactive)

	s.drawHUD(dst, l)

	if l.Tiles == nil {
		dst.DrawTextCenteredColored(dst.Height()/2, "Window too small", core.ColorBrightRed)
		return
	}

	switch s.phase {
	case PhaseInactive:
		s.drawIdleTiles(dst, l)
		dst.DrawTextCenteredColored(l.PromptY, s.Title(), core.ColorBrightWhite)
		s.drawMessage(dst, "READY?", "Enter or tap a tile to start")

	case PhaseActive:
		s.drawRound(dst, l, round)
		if s.paused {
			s.drawMessage(dst, "PAUSED", "P to resume  |  B for menu")
		}

	case PhaseEnded:
		s.drawRound(dst, l, round)
		s.drawMessage(dst, "GAME OVER", fmt.Sprintf("%s  |  Score: %d  |  R retry  B menu",
			endText(s.game.EndReason()), s.Score()))
	}
}

// drawHUD draws score, difficulty and the streak or session clock.
func (s *Scene) drawHUD(dst *core.Screen, l Layout) {
	left := fmt.Sprintf(" Score: %d ", s.Score())
	dst.DrawTextColored(l.Frame.X+2, l.HUDY, left, core.ColorBrightWhite)

	dst.DrawTextCentered(l.HUDY, " "+s.cfg.Difficulty.Label()+" ")

	var right string
	if s.cfg.Mode == tapgame.ModeTimed && s.game != nil && s.phase != PhaseInactive {
		secs := float64(s.game.SessionTicksLeft()) / float64(s.rules.TickRate)
		right = fmt.Sprintf(" Time: %4.1fs ", secs)
	} else if s.game != nil {
		right = fmt.Sprintf(" Streak: %d ", s.game.Streak())
	}
	if right != "" {
		dst.DrawText(l.Frame.Right()-2-utf8.RuneCountInString(right), l.HUDY, right)
	}
}

// drawRound draws the prompt, the reaction-window bar and the tiles.
func (s *Scene) drawRound(dst *core.Screen, l Layout, r tapgame.Round) {
	target := tapgame.SwatchAt(r.Target)
	ink := tapgame.SwatchAt(r.Ink)
	dst.DrawTextCenteredColored(l.PromptY, target.Name, ink.Color)

	filled := int(r.Progress() * float64(l.Timer.W))
	barColor := core.ColorGreen
	switch {
	case r.Progress() < 0.25:
		barColor = core.ColorRed
	case r.Progress() < 0.5:
		barColor = core.ColorYellow
	}
	dst.DrawHLine(l.Timer.X, l.Timer.Y, l.Timer.W, TimerEmpty, core.ColorGray)
	dst.DrawHLine(l.Timer.X, l.Timer.Y, filled, TimerFull, barColor)

	for i, rect := range l.Tiles {
		if i >= len(r.Tiles) {
			break
		}
		dst.DrawRect(rect, TileChar, tapgame.SwatchAt(r.Tiles[i]).Color)
		s.drawHint(dst, rect, l.LabelY, i)
	}
}

// drawIdleTiles draws gray placeholders while waiting to start.
func (s *Scene) drawIdleTiles(dst *core.Screen, l Layout) {
	for i, rect := range l.Tiles {
		dst.DrawRect(rect, IdleTileChar, core.ColorGray)
		s.drawHint(dst, rect, l.LabelY, i)
	}
}

// drawHint writes the keys for a slot centred under its tile.
func (s *Scene) drawHint(dst *core.Screen, rect core.Rect, y, slot int) {
	hint := fmt.Sprintf("[%d]", slot+1)
	if slot < len(hintKeysShort) && rect.W >= 7 {
		hint = fmt.Sprintf("[%d/%c]", slot+1, hintKeysShort[slot])
	}
	cx, _ := rect.Center()
	dst.DrawTextColored(cx-utf8.RuneCountInString(hint)/2, y, hint, core.ColorGray)
}

// drawMessage draws a message box in the center of the screen.
func (s *Scene) drawMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	tw := utf8.RuneCountInString(title)
	sw := utf8.RuneCountInString(subtitle)
	boxW := core.Min(core.Max(tw, sw)+4, w)
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextColored(box.X+(boxW-tw)/2, box.Y+1, title, core.ColorBrightWhite)
	dst.DrawText(box.X+(boxW-sw)/2, box.Y+3, subtitle)
}

// endText describes why a session ended.
func endText(r tapgame.EndReason) string {
	switch r {
	case tapgame.EndWrongTap:
		return "Wrong colour"
	case tapgame.EndTimeout:
		return "Too slow"
	case tapgame.EndTimeUp:
		return "Time's up"
	default:
		return "Session over"
	}
}
