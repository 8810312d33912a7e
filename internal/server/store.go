package server

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/diegok/puckstop/internal/protocol"
)

// Store keeps the leaderboard in a JSON file. Every read goes to disk so
// the file stays the only source of truth.
type Store struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

// NewStore creates a store backed by path. The file is created on first write.
func NewStore(path string, log *zap.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load returns the current board. A missing or unreadable file is an empty board.
func (s *Store) Load() protocol.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() protocol.Board {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("read leaderboard", zap.String("path", s.path), zap.Error(err))
		}
		return protocol.Board{}
	}

	board, err := protocol.DecodeBoard(bytes.NewReader(data))
	if err != nil {
		s.log.Warn("parse leaderboard, starting empty", zap.String("path", s.path), zap.Error(err))
		return protocol.Board{}
	}
	return board
}

// Add inserts e and persists the new board, returning it
func (s *Store) Add(e protocol.Entry) (protocol.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := s.load().Insert(e)
	if err := s.write(board); err != nil {
		return nil, err
	}
	return board, nil
}

// write replaces the file through a temp file in the same directory
func (s *Store) write(board protocol.Board) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp leaderboard: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp leaderboard: %w", err)
	}
	if err := protocol.EncodeBoard(tmp, board); err != nil {
		tmp.Close()
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp leaderboard: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace leaderboard: %w", err)
	}
	return nil
}
