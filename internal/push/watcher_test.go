package push

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoralabs/amora-chat/internal/api"
	"github.com/amoralabs/amora-chat/internal/mockapi"
)

func TestNewWatcherRejectsBadURL(t *testing.T) {
	_, err := NewWatcher("://bad", "tok", "m1", func() {})
	require.Error(t, err)
}

func TestWatcherReceivesHintOnNewMessage(t *testing.T) {
	ts := httptest.NewServer(mockapi.NewServer(mockapi.Options{}).Handler())
	defer ts.Close()

	hints := make(chan struct{}, 16)
	w, err := NewWatcher(ts.URL, "u1", "m1", func() { hints <- struct{}{} })
	require.NoError(t, err)

	w.Start()
	defer w.Stop()

	// The watcher connects asynchronously; keep sending until a hint for
	// one of the messages arrives
	client := api.NewClient(ts.URL, "u2")
	deadline := time.After(5 * time.Second)
	for {
		_, err := client.SendMessage(context.Background(), "m1", "ping")
		require.NoError(t, err)

		select {
		case <-hints:
			return
		case <-deadline:
			t.Fatal("no refresh hint received")
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	ts := httptest.NewServer(mockapi.NewServer(mockapi.Options{}).Handler())
	defer ts.Close()

	w, err := NewWatcher(ts.URL, "u1", "m1", func() {})
	require.NoError(t, err)

	// Stop before Start is a no-op
	w.Stop()

	w.Start()
	w.Stop()
	w.Stop()

	assert.NotNil(t, w)
}
