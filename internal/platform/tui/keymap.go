package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tapcolour/internal/core"
)

// slotKeys lists, per slot, the keys that tap it: the digit row and the
// home row.
var slotKeys = [core.MaxSlots][2]string{
	{"1", "a"},
	{"2", "s"},
	{"3", "d"},
	{"4", "f"},
	{"5", "g"},
	{"6", "h"},
	{"7", "j"},
	{"8", "k"},
	{"9", "l"},
}

// KeyMapper translates Bubble Tea key messages to game actions and taps.
type KeyMapper struct {
	slots map[string]int
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{slots: make(map[string]int, 2*core.MaxSlots)}
	for slot, keys := range slotKeys {
		for _, k := range keys {
			km.slots[k] = slot
		}
	}
	return km
}

// Slot returns the tile slot a key taps.
func (km *KeyMapper) Slot(msg tea.KeyMsg) (int, bool) {
	slot, ok := km.slots[msg.String()]
	return slot, ok
}

// MapKey translates a key message to an action for the given scene state.
// Esc pauses a running session and backs out of anything else.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, state core.GameState) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case "enter", " ":
		return core.ActionConfirm
	case "p":
		return core.ActionPause
	case "r":
		return core.ActionRestart
	case "b":
		return core.ActionBack
	case "esc":
		if state.GameOver || state.Paused || state.Waiting {
			return core.ActionBack
		}
		return core.ActionPause
	}
	return core.ActionNone
}

// MapKeyToFrame records a key in the input frame. Quit and Back are not
// game input and are returned for the caller to act on.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, state core.GameState, frame *core.InputFrame) core.Action {
	if slot, ok := km.Slot(msg); ok {
		frame.SetTap(slot)
		return core.ActionNone
	}

	action := km.MapKey(msg, state)
	switch action {
	case core.ActionNone, core.ActionQuit, core.ActionBack:
		return action
	}
	frame.Set(action)
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionSettings
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "up", "k":
		return MenuActionUp
	case "down", "j":
		return MenuActionDown
	case "left", "h":
		return MenuActionLeft
	case "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "s":
		return MenuActionSettings
	}
	return MenuActionNone
}
