package protocol

import (
	"sort"
)

// TruncateName keeps the first MaxNameLen runes of name
func TruncateName(name string) string {
	n := 0
	for i := range name {
		if n == MaxNameLen {
			return name[:i]
		}
		n++
	}
	return name
}

// Insert returns a new board with e added, sorted by score descending and
// capped at MaxEntries. Equal scores keep their arrival order.
func (b Board) Insert(e Entry) Board {
	next := make(Board, 0, len(b)+1)
	next = append(next, b...)
	next = append(next, e)

	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Score > next[j].Score
	})

	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	return next
}

// IsTopScore reports whether score earns a place on the board.
// A tie with the last entry of a full board does not.
func IsTopScore(b Board, score int) bool {
	if score <= 0 {
		return false
	}
	if len(b) < MaxEntries {
		return true
	}
	return score > b[len(b)-1].Score
}
