package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jumpy-bird/internal/core"
	"github.com/vovakirdan/jumpy-bird/internal/games/jumpy"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action. The pause key toggles,
// so it maps to Pause or Resume depending on the current state.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, state jumpy.State) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "w", "up", "k":
		return core.ActionJump, false
	case "p", "esc":
		if state == jumpy.StatePaused {
			return core.ActionResume, false
		}
		return core.ActionPause, false
	case "r", "enter":
		return core.ActionRestart, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame appends the key's action to an input frame.
// A pause toggle already waiting in the frame is cancelled by the next
// press, so an even number of presses within one tick leaves the state as is.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, state jumpy.State, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg, state)
	if action == core.ActionNone || isQuit {
		return isQuit
	}
	if action == core.ActionPause || action == core.ActionResume {
		for _, pending := range []core.Action{core.ActionPause, core.ActionResume} {
			if frame.Has(pending) {
				frame.Remove(pending)
				return false
			}
		}
	}
	frame.Set(action)
	return false
}

// IsBack reports whether the key asks to leave the game for the menu.
func (km *KeyMapper) IsBack(msg tea.KeyMsg) bool {
	return msg.String() == "b"
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
	}

	return MenuActionNone
}
