package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Action is what a key or click means to the game
type Action int

const (
	ActionNone   Action = iota
	ActionToggle        // Switch the active goalie
	ActionMute          // Flip sound on/off
	ActionEnter         // Start a session or submit a name
	ActionQuit
)

// KeyToAction converts a key event to a game action
func KeyToAction(key tcell.Key, r rune) Action {
	switch {
	case IsQuitKey(key, r):
		return ActionQuit
	case IsStartKey(key):
		return ActionEnter
	}

	switch key {
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown:
		return ActionToggle
	case tcell.KeyRune:
		switch r {
		case ' ':
			return ActionToggle
		case 'm', 'M':
			return ActionMute
		}
	}
	return ActionNone
}

// MouseToAction turns a primary button press into a toggle.
// pressed is the previous button state so a held button fires once.
func MouseToAction(buttons, pressed tcell.ButtonMask) Action {
	if buttons&tcell.Button1 != 0 && pressed&tcell.Button1 == 0 {
		return ActionToggle
	}
	return ActionNone
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}

// IsStartKey returns true if the key should start/confirm
func IsStartKey(key tcell.Key) bool {
	return key == tcell.KeyEnter
}
