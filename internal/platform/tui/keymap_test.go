package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tapcolour/internal/core"
)

// keyMsg builds a key message the way Bubble Tea reports it.
func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestSlotKeys(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		slot int
	}{
		{"1", 0},
		{"a", 0},
		{"2", 1},
		{"s", 1},
		{"6", 5},
		{"h", 5},
		{"9", 8},
		{"l", 8},
	}
	for _, tc := range tests {
		got, ok := km.Slot(keyMsg(tc.key))
		if !ok || got != tc.slot {
			t.Errorf("Slot(%q) = %d, %v; expected %d", tc.key, got, ok, tc.slot)
		}
	}
	if _, ok := km.Slot(keyMsg("p")); ok {
		t.Error("p should not tap a tile")
	}
}

func TestMapKeyEscDependsOnState(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name  string
		state core.GameState
		want  core.Action
	}{
		{"running", core.GameState{}, core.ActionPause},
		{"paused", core.GameState{Paused: true}, core.ActionBack},
		{"ended", core.GameState{GameOver: true}, core.ActionBack},
		{"waiting", core.GameState{Waiting: true}, core.ActionBack},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(keyMsg("esc"), tc.state); got != tc.want {
				t.Errorf("esc = %s, expected %s", got, tc.want)
			}
		})
	}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		want core.Action
	}{
		{"enter", core.ActionConfirm},
		{"space", core.ActionConfirm},
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"b", core.ActionBack},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"x", core.ActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKey(keyMsg(tc.key), core.GameState{}); got != tc.want {
			t.Errorf("MapKey(%q) = %s, expected %s", tc.key, got, tc.want)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if got := km.MapKeyToFrame(keyMsg("3"), core.GameState{}, &frame); got != core.ActionNone {
		t.Errorf("tile key returned %s", got)
	}
	if slot, ok := frame.Tapped(); !ok || slot != 2 {
		t.Errorf("Tapped() = %d, %v; expected slot 2", slot, ok)
	}

	km.MapKeyToFrame(keyMsg("p"), core.GameState{}, &frame)
	if !frame.Has(core.ActionPause) {
		t.Error("p should set Pause in the frame")
	}

	if got := km.MapKeyToFrame(keyMsg("q"), core.GameState{}, &frame); got != core.ActionQuit {
		t.Errorf("q returned %s, expected Quit", got)
	}
	if frame.Has(core.ActionQuit) {
		t.Error("Quit is not game input and should stay out of the frame")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		want MenuAction
	}{
		{"up", MenuActionUp},
		{"k", MenuActionUp},
		{"down", MenuActionDown},
		{"left", MenuActionLeft},
		{"right", MenuActionRight},
		{"enter", MenuActionSelect},
		{"esc", MenuActionBack},
		{"tab", MenuActionScoreboard},
		{"s", MenuActionSettings},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tc.key)); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", tc.key, got, tc.want)
		}
	}
}
