package core

// Action represents a semantic game action, abstracted from physical key presses
// and mouse clicks.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter, Space - start a session that is waiting for input
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - play again after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause
)

// MaxSlots is the number of tile slots an input frame can address.
const MaxSlots = 9

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input collected for a single simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// tap is the tapped slot plus one, so the zero value means no tap.
	// Only the first tap of a frame counts; a player cannot answer twice
	// within one tick.
	tap int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetTap records a tap on the given slot. Later taps in the same frame
// and slots outside [0, MaxSlots) are ignored.
func (f *InputFrame) SetTap(slot int) {
	if slot < 0 || slot >= MaxSlots {
		return
	}
	if f.tap != 0 {
		return
	}
	f.tap = slot + 1
}

// Tapped returns the tapped slot and whether a tap happened this frame.
func (f InputFrame) Tapped() (int, bool) {
	return f.tap - 1, f.tap != 0
}

// Clear resets all actions and the tap for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.tap = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.tap = f.tap
	return clone
}
