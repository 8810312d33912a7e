package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyToAction(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		rune rune
		want Action
	}{
		{tcell.KeyRune, ' ', ActionToggle},
		{tcell.KeyLeft, 0, ActionToggle},
		{tcell.KeyRight, 0, ActionToggle},
		{tcell.KeyUp, 0, ActionToggle},
		{tcell.KeyDown, 0, ActionToggle},
		{tcell.KeyRune, 'm', ActionMute},
		{tcell.KeyRune, 'M', ActionMute},
		{tcell.KeyEnter, 0, ActionEnter},
		{tcell.KeyEscape, 0, ActionQuit},
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyCtrlC, 0, ActionQuit},
		{tcell.KeyRune, 'x', ActionNone},
		{tcell.KeyTab, 0, ActionNone},
	}

	for _, tt := range tests {
		got := KeyToAction(tt.key, tt.rune)
		if got != tt.want {
			t.Errorf("KeyToAction(%v, %q) = %v, want %v", tt.key, tt.rune, got, tt.want)
		}
	}
}

func TestMouseToAction(t *testing.T) {
	tests := []struct {
		name             string
		buttons, pressed tcell.ButtonMask
		want             Action
	}{
		{"press", tcell.Button1, tcell.ButtonNone, ActionToggle},
		{"held", tcell.Button1, tcell.Button1, ActionNone},
		{"release", tcell.ButtonNone, tcell.Button1, ActionNone},
		{"right button", tcell.Button2, tcell.ButtonNone, ActionNone},
		{"move", tcell.ButtonNone, tcell.ButtonNone, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MouseToAction(tt.buttons, tt.pressed); got != tt.want {
				t.Errorf("MouseToAction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsQuitKey(t *testing.T) {
	if !IsQuitKey(tcell.KeyRune, 'q') {
		t.Error("'q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyRune, 'Q') {
		t.Error("'Q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyEscape, 0) {
		t.Error("Escape should be quit key")
	}
	if !IsQuitKey(tcell.KeyCtrlC, 0) {
		t.Error("Ctrl+C should be quit key")
	}
	if IsQuitKey(tcell.KeyRune, 'x') {
		t.Error("'x' should not be quit key")
	}
}

func TestIsStartKey(t *testing.T) {
	if !IsStartKey(tcell.KeyEnter) {
		t.Error("Enter should be start key")
	}
	if IsStartKey(tcell.KeyRune) {
		t.Error("other keys should not be start key")
	}
}

func TestNameEntry(t *testing.T) {
	var e NameEntry

	if got := e.HandleKey(tcell.KeyEnter, 0); got != EntryEditing {
		t.Error("blank name must not submit")
	}

	for _, r := range "q Bob" {
		e.HandleKey(tcell.KeyRune, r)
	}
	if e.String() != "q Bob" {
		t.Errorf("expected 'q Bob', got %q", e.String())
	}

	e.HandleKey(tcell.KeyBackspace2, 0)
	if e.String() != "q Bo" {
		t.Errorf("expected 'q Bo' after backspace, got %q", e.String())
	}

	if got := e.HandleKey(tcell.KeyEnter, 0); got != EntrySubmit {
		t.Errorf("expected submit, got %v", got)
	}
	if got := e.HandleKey(tcell.KeyEscape, 0); got != EntryCancel {
		t.Errorf("expected cancel, got %v", got)
	}
}

func TestNameEntry_Limit(t *testing.T) {
	var e NameEntry
	for i := 0; i < 30; i++ {
		e.HandleKey(tcell.KeyRune, 'A')
	}
	if n := len([]rune(e.String())); n != 15 {
		t.Errorf("expected name capped at 15 runes, got %d", n)
	}

	var empty NameEntry
	empty.HandleKey(tcell.KeyBackspace, 0)
	if empty.String() != "" {
		t.Error("backspace on an empty field should do nothing")
	}
}
