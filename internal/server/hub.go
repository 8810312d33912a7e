package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/diegok/puckstop/internal/protocol"
)

const (
	sendBufferSize = 8
	writeTimeout   = 5 * time.Second
)

// subscriber is one live leaderboard websocket
type subscriber struct {
	id     string
	conn   *websocket.Conn
	sendCh chan protocol.Board
	done   chan struct{}
	once   sync.Once
}

func newSubscriber(conn *websocket.Conn) *subscriber {
	return &subscriber{
		id:     uuid.NewString(),
		conn:   conn,
		sendCh: make(chan protocol.Board, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// writeLoop owns all writes to the connection
func (c *subscriber) writeLoop(log *zap.Logger) {
	for {
		select {
		case <-c.done:
			return
		case board := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(board); err != nil {
				log.Debug("live write failed", zap.String("subscriber", c.id), zap.Error(err))
				c.close()
				return
			}
		}
	}
}

// send queues a board without blocking. A slow subscriber misses updates.
func (c *subscriber) send(board protocol.Board) {
	select {
	case c.sendCh <- board:
	default:
	}
}

func (c *subscriber) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Hub fans accepted boards out to live subscribers
type Hub struct {
	log  *zap.Logger
	mu   sync.Mutex
	subs map[string]*subscriber
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{log: log, subs: make(map[string]*subscriber)}
}

func (h *Hub) add(c *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[c.id] = c
}

func (h *Hub) remove(c *subscriber) {
	h.mu.Lock()
	delete(h.subs, c.id)
	h.mu.Unlock()
	c.close()
}

// Broadcast sends board to every subscriber
func (h *Hub) Broadcast(board protocol.Board) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.subs {
		c.send(board)
	}
}

// Len returns the number of live subscribers
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[string]*subscriber)
	h.mu.Unlock()

	h.log.Debug("closing live feed", zap.Int("subscribers", len(subs)))

	for _, c := range subs {
		c.close()
	}
}
