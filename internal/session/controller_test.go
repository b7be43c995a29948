package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Covers the full send path: one POST with the trimmed body, followed by
// exactly one out-of-cycle GET, after which the store holds the new message.
func TestControllerSendThenFetch(t *testing.T) {
	api := newFakeChatAPI()
	sent := make(chan struct{}, 1)

	c := New(api, "m1", Options{
		PollInterval: time.Hour,
		OnSent:       func() { sent <- struct{}{} },
	})
	c.Start()
	defer c.Close()

	// Initial fetch of the empty room
	require.True(t, api.waitListed(time.Second))
	require.Empty(t, c.Messages())

	c.SetDraft("  hello ")
	require.NoError(t, c.Send(context.Background()))

	assert.Empty(t, c.Draft(), "draft is cleared on confirmed success")

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("expected OnSent after a successful send")
	}

	// The refresh is out-of-cycle: the hour-long timer cannot explain it
	require.True(t, api.waitListed(time.Second), "expected an immediate fetch after send")

	require.Eventually(t, func() bool {
		msgs := c.Messages()
		return len(msgs) == 1 && msgs[0].Message == "hello"
	}, time.Second, 5*time.Millisecond)

	msgs := c.Messages()
	assert.Equal(t, "1", msgs[0].ID)
	assert.Equal(t, "u1", msgs[0].SenderID)

	lists, sends := api.counts()
	assert.Equal(t, 1, sends)
	assert.Equal(t, 2, lists, "exactly one fetch beyond the initial one")
}

func TestControllerSendFailurePreservesDraftAndStore(t *testing.T) {
	api := newFakeChatAPI()
	api.messages["m1"] = snapshot("existing").Messages
	sentCalled := false

	c := New(api, "m1", Options{
		PollInterval: time.Hour,
		OnSent:       func() { sentCalled = true },
	})
	c.Start()
	defer c.Close()

	require.True(t, api.waitListed(time.Second))
	before := c.Messages()
	listsBefore, _ := api.counts()

	api.mu.Lock()
	api.sendErr = assert.AnError
	api.mu.Unlock()

	c.SetDraft("typed text")
	require.Error(t, c.Send(context.Background()))

	// The user does not lose what they typed, and nothing refreshes
	assert.Equal(t, "typed text", c.Draft())
	assert.Equal(t, before, c.Messages())
	assert.False(t, sentCalled)

	time.Sleep(50 * time.Millisecond)
	listsAfter, _ := api.counts()
	assert.Equal(t, listsBefore, listsAfter, "no out-of-cycle fetch after a failed send")
}

func TestControllerSendEmptyDraftRejected(t *testing.T) {
	api := newFakeChatAPI()
	c := New(api, "m1", Options{PollInterval: time.Hour})

	c.SetDraft("   ")
	require.ErrorIs(t, c.Send(context.Background()), ErrEmptyMessage)
	assert.Equal(t, "   ", c.Draft(), "a rejected send leaves the draft alone")
}

func TestControllerCloseStopsPollingAndDiscardsLateState(t *testing.T) {
	api := newFakeChatAPI()
	c := New(api, "m1", Options{PollInterval: 20 * time.Millisecond})
	c.Start()
	require.True(t, api.waitListed(time.Second))

	c.Close()
	lists, _ := api.counts()

	time.Sleep(100 * time.Millisecond)
	after, _ := api.counts()
	assert.Equal(t, lists, after, "no fetches after Close")

	// Close is idempotent
	c.Close()
}
