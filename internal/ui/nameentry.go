package ui

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/puckstop/internal/protocol"
)

// EntryResult is the outcome of a key press in the name field
type EntryResult int

const (
	EntryEditing EntryResult = iota
	EntrySubmit
	EntryCancel
)

// NameEntry is a single line text field for the leaderboard name
type NameEntry struct {
	runes []rune
}

// HandleKey edits the field. Enter submits only a non-blank name.
func (e *NameEntry) HandleKey(key tcell.Key, r rune) EntryResult {
	switch key {
	case tcell.KeyEnter:
		if strings.TrimSpace(e.String()) == "" {
			return EntryEditing
		}
		return EntrySubmit
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return EntryCancel
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.runes) > 0 {
			e.runes = e.runes[:len(e.runes)-1]
		}
	case tcell.KeyRune:
		if unicode.IsPrint(r) && len(e.runes) < protocol.MaxNameLen {
			e.runes = append(e.runes, r)
		}
	}
	return EntryEditing
}

func (e *NameEntry) String() string {
	return string(e.runes)
}
