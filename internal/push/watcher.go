// Package push implements the optional websocket refresh-hint channel.
// The server never carries message payloads over it; a hint only means
// "fetch now", so the session keeps its replace-on-fetch semantics and
// polling remains the fallback when the stream is down.
package push

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed between reads before the connection is considered dead;
	// server pings refresh the deadline
	readWait = 90 * time.Second

	// Reconnect backoff bounds
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// Watcher maintains a websocket subscription to one conversation's stream
// and invokes onHint for every hint received. It reconnects with backoff
// until stopped; a dead stream degrades to plain polling, never to an
// error the user sees.
type Watcher struct {
	url    string
	token  string
	onHint func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher for one match conversation.
func NewWatcher(baseURL, token, matchID string, onHint func()) (*Watcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/chat/" + url.PathEscape(matchID) + "/stream"

	return &Watcher{
		url:    u.String(),
		token:  token,
		onHint: onHint,
	}, nil
}

// Start begins the connect/read loop. No-op if already started.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(ctx, w.done)
}

// Stop closes the stream and waits for the loop to exit. Idempotent.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// run dials and reads until stopped, reconnecting with capped exponential
// backoff. This runs in its own goroutine.
func (w *Watcher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	backoff := minBackoff
	for {
		if err := w.listen(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[Push] Stream closed: %v (reconnecting in %v)", err, backoff)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// listen dials once and reads hints until the connection drops.
func (w *Watcher) listen(ctx context.Context) error {
	header := http.Header{}
	header.Set("Authorization", fmt.Sprintf("Bearer %s", w.token))

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, w.url, header)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Close the connection as soon as the watcher is stopped so the
	// blocked read below returns
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(readWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(10*time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return err
		}
		conn.SetReadDeadline(time.Now().Add(readWait))
		// Any frame is a hint; payloads are advisory only
		w.onHint()
	}
}
