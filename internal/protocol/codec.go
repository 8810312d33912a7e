package protocol

import (
	"encoding/json"
	"io"
)

// EncodeBoard writes b as indented JSON. A nil board encodes as [].
func EncodeBoard(w io.Writer, b Board) error {
	if b == nil {
		b = Board{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// DecodeBoard reads a JSON board
func DecodeBoard(r io.Reader) (Board, error) {
	var b Board
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, err
	}
	if b == nil {
		b = Board{}
	}
	return b, nil
}

// EncodeMessage writes a {"message": ...} body
func EncodeMessage(w io.Writer, msg string) error {
	return json.NewEncoder(w).Encode(Message{Message: msg})
}
