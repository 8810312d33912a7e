package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/diegok/puckstop/internal/protocol"
	"github.com/diegok/puckstop/internal/server"
)

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	log := zap.NewNop()
	srv := server.NewServer(":0", server.NewStore(filepath.Join(t.TempDir(), "board.json"), log), log)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_SubmitThenFetch(t *testing.T) {
	ts := newService(t)
	c := New(ts.URL + "/")
	ctx := context.Background()

	board, err := c.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, board)

	require.NoError(t, c.Submit(ctx, "Alice", 12))
	require.NoError(t, c.Submit(ctx, "Bob", 30))

	board, err = c.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, protocol.Board{{Name: "Bob", Score: 30}, {Name: "Alice", Score: 12}}, board)
}

func TestClient_SubmitRejected(t *testing.T) {
	ts := newService(t)
	c := New(ts.URL)

	err := c.Submit(context.Background(), "   ", 5)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), protocol.MsgInvalid)
}

func TestClient_FetchUsesETag(t *testing.T) {
	var hits, notModified atomic.Int32
	board := `[{"name":"A","score":1}]`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			notModified.Add(1)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte(board))
	}))
	defer ts.Close()

	c := New(ts.URL)
	first, err := c.Fetch(context.Background())
	require.NoError(t, err)
	second, err := c.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, int32(1), notModified.Load())
}

func TestClient_UnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	err = c.Submit(context.Background(), "A", 1)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(url)
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
	_, err = c.Watch(context.Background())
	assert.Error(t, err)
}

func TestClient_Watch(t *testing.T) {
	ts := newService(t)
	c := New(ts.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, err := c.Watch(ctx)
	require.NoError(t, err)

	select {
	case board := <-feed:
		assert.Empty(t, board)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial board")
	}

	require.NoError(t, c.Submit(context.Background(), "Live", 7))

	select {
	case board := <-feed:
		assert.Equal(t, protocol.Board{{Name: "Live", Score: 7}}, board)
	case <-time.After(5 * time.Second):
		t.Fatal("no board after submit")
	}

	cancel()
	select {
	case _, ok := <-feed:
		for ok {
			_, ok = <-feed
		}
	case <-time.After(5 * time.Second):
		t.Fatal("feed not closed after cancel")
	}
}
