package core

// Action is a semantic key intent, abstracted from physical keys.
type Action int

const (
	ActionNone        Action = iota
	ActionConfirm            // Enter
	ActionBack               // Esc: clear selection
	ActionRestart            // R: new battle after game over
	ActionQuit               // Q, Ctrl+C
	ActionPause              // P
	ActionStartBattle        // S: leave setup and roll initiative
	ActionEndTurn            // E, Space
	ActionWait               // W
	ActionDefend             // D
	ActionNextUnit           // Tab: select the next friendly unit
)

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
	case ActionStartBattle:
		return "StartBattle"
	case ActionEndTurn:
		return "EndTurn"
	case ActionWait:
		return "Wait"
	case ActionDefend:
		return "Defend"
	case ActionNextUnit:
		return "NextUnit"
	default:
		return "Unknown"
	}
}

// PointerKind is the type of a raw pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerContext // Right click
)

// Pointer is a raw pointer event in screen cells.
type Pointer struct {
	Kind PointerKind
	X, Y int
}

// InputFrame collects the input of one frame.
type InputFrame struct {
	Actions  map[Action]bool
	Pointers []Pointer // In arrival order
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

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// AddPointer appends a pointer event.
func (f *InputFrame) AddPointer(p Pointer) {
	f.Pointers = append(f.Pointers, p)
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointers = f.Pointers[:0]
}

// Clone returns a deep copy.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointers = append([]Pointer(nil), f.Pointers...)
	return clone
}
