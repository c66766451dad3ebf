package core

// Action is a semantic game command, decoupled from the key that produced it.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Shift the piece left
	ActionRight           // Shift the piece right
	ActionDown            // Soft drop one row
	ActionRotate          // Rotate clockwise
	ActionHardDrop        // Drop and lock
	ActionHold            // Stash or swap the active piece
	ActionPause           // Toggle pause
	ActionRestart         // Start a new game after game over
	ActionBack            // Leave the game for the menu
	ActionQuit            // Exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionRotate:
		return "Rotate"
	case ActionHardDrop:
		return "HardDrop"
	case ActionHold:
		return "Hold"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two simulation ticks.
// Repeated presses of the same action within a tick are counted, so fast key
// repeat still moves a piece several columns.
type InputFrame struct {
	Actions map[Action]int
	order   []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]int),
	}
}

// Set records one press of a.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]int)
	}
	f.Actions[a]++
	f.order = append(f.order, a)
}

// Has reports whether a was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a] > 0
}

// Count returns how many times a was pressed this frame.
func (f InputFrame) Count(a Action) int {
	return f.Actions[a]
}

// Sequence returns the presses in arrival order.
func (f InputFrame) Sequence() []Action {
	return append([]Action(nil), f.order...)
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.order = f.order[:0]
}

// Clone creates an independent copy of the frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.order = f.Sequence()
	return clone
}
