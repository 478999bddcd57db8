package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hex-skirmish/internal/core"
)

// KeyMapper translates Bubble Tea key messages to battle actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a battle action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "s":
		return core.ActionStartBattle, false
	case "enter":
		return core.ActionConfirm, false
	case "esc":
		return core.ActionBack, false
	case "e", " ", "space":
		return core.ActionEndTurn, false
	case "w":
		return core.ActionWait, false
	case "d":
		return core.ActionDefend, false
	case "tab":
		return core.ActionNextUnit, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouse translates a Bubble Tea mouse message to a pointer event.
// Wheel and other buttons report false.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (core.Pointer, bool) {
	p := core.Pointer{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionMotion:
		p.Kind = core.PointerMove
		return p, true
	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonRight {
			return p, false
		}
		p.Kind = core.PointerUp
		return p, true
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			p.Kind = core.PointerDown
			return p, true
		case tea.MouseButtonRight:
			p.Kind = core.PointerContext
			return p, true
		}
	}
	return p, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionHistory
	MenuActionDifficulty
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "h", "tab":
		return MenuActionHistory
	case "d":
		return MenuActionDifficulty
	}

	return MenuActionNone
}
