// Package protocol defines the leaderboard wire format shared by the service and the game.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Service routes
const (
	PathLeaderboard = "/api/leaderboard"
	PathLive        = "/api/leaderboard/live"
)

const (
	MaxEntries = 10 // Board size kept by the service
	MaxNameLen = 15 // Runes kept from a submitted name
)

// Message texts returned by the service
const (
	MsgInvalid = "invalid data"
	MsgSaved   = "score saved"
)

var (
	ErrInvalidName  = errors.New("name must be a non-blank string")
	ErrInvalidScore = errors.New("score must be a number")
)

// Entry is one leaderboard row
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Board is the leaderboard, best score first
type Board []Entry

// Message is the body of non-board responses
type Message struct {
	Message string `json:"message"`
}

// SubmitRequest is the POST body. Fields stay raw so their JSON types can be checked.
type SubmitRequest struct {
	Name  json.RawMessage `json:"name"`
	Score json.RawMessage `json:"score"`
}

// ParseSubmit validates a POST body and returns the entry to store.
// The name is truncated, not trimmed; fractional scores are truncated toward zero.
func ParseSubmit(data []byte) (Entry, error) {
	var req SubmitRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return Entry{}, fmt.Errorf("decode submit: %w", err)
	}

	name, err := parseName(req.Name)
	if err != nil {
		return Entry{}, err
	}
	score, err := parseScore(req.Score)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Name: TruncateName(name), Score: score}, nil
}

func parseName(raw json.RawMessage) (string, error) {
	if !isJSONString(raw) {
		return "", ErrInvalidName
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return "", ErrInvalidName
	}
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// Largest score that survives a float64 round trip
const maxScore = 1 << 53

func parseScore(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return 0, ErrInvalidScore
	}
	var score float64
	if err := json.Unmarshal(raw, &score); err != nil {
		return 0, ErrInvalidScore
	}
	if math.IsNaN(score) || math.Abs(score) > maxScore {
		return 0, ErrInvalidScore
	}
	return int(math.Trunc(score)), nil
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) >= 2 && raw[0] == '"'
}
