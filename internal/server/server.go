// Package server implements the leaderboard HTTP service.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/diegok/puckstop/internal/protocol"
)

const (
	maxBodyBytes    = 4 << 10
	shutdownTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server is the leaderboard service
type Server struct {
	addr  string
	store *Store
	hub   *Hub
	log   *zap.Logger

	mu       sync.Mutex
	http     *http.Server
	listener net.Listener
}

// NewServer creates a service listening on addr once started
func NewServer(addr string, store *Store, log *zap.Logger) *Server {
	return &Server{
		addr:  addr,
		store: store,
		hub:   NewHub(log),
		log:   log,
	}
}

// Handler returns the routed service with request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+protocol.PathLeaderboard, s.handleGet)
	mux.HandleFunc("POST "+protocol.PathLeaderboard, s.handlePost)
	mux.HandleFunc("GET "+protocol.PathLive, s.handleLive)
	return requestID(s.log, mux)
}

// Start begins listening. It returns once the port is bound.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	srv := &http.Server{
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	s.mu.Lock()
	s.http = srv
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("leaderboard server stopped", zap.Error(err))
		}
	}()

	s.log.Info("leaderboard server listening", zap.String("addr", listener.Addr().String()))
	return nil
}

// Stop gracefully shuts down the server and drops live subscribers
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	s.http = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	s.hub.Close()
	return srv.Shutdown(ctx)
}

// Run starts the server and blocks until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(stopCtx)
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	var body bytes.Buffer
	if err := protocol.EncodeBoard(&body, s.store.Load()); err != nil {
		requestLogger(r, s.log).Error("encode leaderboard", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	etag := boardETag(body.Bytes())
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body.Bytes())
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, s.log)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Info("read submit body", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, protocol.MsgInvalid)
		return
	}

	entry, err := protocol.ParseSubmit(data)
	if err != nil {
		log.Info("rejected score", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, protocol.MsgInvalid)
		return
	}

	board, err := s.store.Add(entry)
	if err != nil {
		log.Error("save leaderboard", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "could not save score")
		return
	}

	log.Info("score saved", zap.String("name", entry.Name), zap.Int("score", entry.Score))
	s.hub.Broadcast(board)
	writeMessage(w, http.StatusCreated, protocol.MsgSaved)
}

// handleLive streams the board on connect and after every accepted score
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, s.log)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Info("live upgrade failed", zap.Error(err))
		return
	}

	// Register before reading the board so no accepted score slips between
	sub := newSubscriber(conn)
	s.hub.add(sub)
	defer s.hub.remove(sub)
	sub.send(s.store.Load())
	log.Debug("live subscriber joined", zap.String("subscriber", sub.id), zap.Int("subscribers", s.hub.Len()))

	go sub.writeLoop(log)

	// Drain client frames so close and ping control messages are handled
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	protocol.EncodeMessage(w, msg)
}

func boardETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
}
