// Package client talks to the leaderboard service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/diegok/puckstop/internal/protocol"
)

const (
	channelBufferSize = 4
	requestTimeout    = 5 * time.Second
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrRejected         = errors.New("score rejected")
)

// Client is a leaderboard client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	dialer  *websocket.Dialer

	mu     sync.Mutex
	etag   string
	cached protocol.Board
}

// New creates a client for the service at baseURL (http://host:port)
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		dialer:  &websocket.Dialer{HandshakeTimeout: requestTimeout},
	}
}

// Fetch returns the current board. Unchanged boards are served from cache.
func (c *Client) Fetch(ctx context.Context) (protocol.Board, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+protocol.PathLeaderboard, nil)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.etag != "" {
		req.Header.Set("If-None-Match", c.etag)
	}
	c.mu.Unlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.cached, nil
	case http.StatusOK:
	default:
		return nil, fmt.Errorf("fetch leaderboard: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	board, err := protocol.DecodeBoard(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}

	c.mu.Lock()
	c.etag = resp.Header.Get("ETag")
	c.cached = board
	c.mu.Unlock()

	return board, nil
}

// Submit posts a score. A 400 is reported as ErrRejected.
func (c *Client) Submit(ctx context.Context, name string, score int) error {
	body, err := json.Marshal(protocol.Entry{Name: name, Score: score})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+protocol.PathLeaderboard, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	defer resp.Body.Close()

	var msg protocol.Message
	json.NewDecoder(resp.Body).Decode(&msg)

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrRejected, msg.Message)
	}
	return fmt.Errorf("submit score: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
}

// Watch subscribes to the live feed. The channel yields the board on connect
// and after every accepted score, and closes when ctx ends or the feed drops.
// A slow reader only sees the newest board.
func (c *Client) Watch(ctx context.Context) (<-chan protocol.Board, error) {
	u, err := url.Parse(c.baseURL + protocol.PathLive)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := c.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("watch leaderboard: %w", err)
	}

	out := make(chan protocol.Board, channelBufferSize)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	go func() {
		defer close(out)
		defer close(done)
		for {
			var board protocol.Board
			if err := conn.ReadJSON(&board); err != nil {
				return
			}
			select {
			case out <- board:
			default:
				// Drop the oldest board to make room
				select {
				case <-out:
				default:
				}
				select {
				case out <- board:
				default:
				}
			}
		}
	}()

	return out, nil
}
