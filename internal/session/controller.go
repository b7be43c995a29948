// Package session implements the chat session core for one match
// conversation: a replace-on-fetch message store, a fixed-interval poll
// scheduler with out-of-cycle refresh, and a send gate that serializes
// outgoing submissions and owns the draft lifecycle.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/amoralabs/amora-chat/internal/models"
)

// ChatAPI is the slice of the REST API the session core depends on.
type ChatAPI interface {
	ListMessages(ctx context.Context, matchID string) (*models.MessagesResponse, error)
	SendMessage(ctx context.Context, matchID, text string) (*models.Message, error)
}

// Options configures a session Controller.
type Options struct {
	// PollInterval is the poll period; zero means DefaultPollInterval
	PollInterval time.Duration

	// OnUpdate is called after every applied message snapshot
	OnUpdate func()

	// OnSent is called after every confirmed successful send
	OnSent func()
}

// Controller owns the chat session for one match: store, poller, send gate
// and the outgoing draft. Its lifetime is tied to the active view - create
// and Start it when the conversation opens, Close it when the view goes
// away or the match key changes. State is never shared across controllers
// and never persisted; a new controller starts from zero and re-fetches.
type Controller struct {
	matchID string
	store   *Store
	poller  *Poller
	gate    *SendGate
	onSent  func()

	mu    sync.Mutex
	draft string
}

// New creates a controller for one match conversation.
func New(api ChatAPI, matchID string, opts Options) *Controller {
	store := NewStore()
	return &Controller{
		matchID: matchID,
		store:   store,
		poller:  NewPoller(api, store, matchID, opts.PollInterval, opts.OnUpdate),
		gate:    NewSendGate(api, matchID),
		onSent:  opts.OnSent,
	}
}

// MatchID returns the room key this controller is scoped to.
func (c *Controller) MatchID() string {
	return c.matchID
}

// Start begins polling: one immediate fetch, then one per tick.
func (c *Controller) Start() {
	c.poller.Start()
}

// Close tears the session down. The timer stops, and any fetch that
// resolves afterwards is discarded rather than applied. Idempotent.
func (c *Controller) Close() {
	c.poller.Stop()
	c.store.Close()
}

// Messages returns the current message set in server order.
func (c *Controller) Messages() []models.Message {
	return c.store.Messages()
}

// OtherUser returns the other party's summary from the latest snapshot.
func (c *Controller) OtherUser() models.OtherUser {
	return c.store.OtherUser()
}

// Draft returns the outgoing draft text.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the outgoing draft text.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
}

// Sending reports whether a send is currently in flight.
func (c *Controller) Sending() bool {
	return c.gate.Sending()
}

// Send submits the current draft through the send gate.
// On success the draft is cleared and one out-of-cycle fetch is triggered
// immediately, so the sender sees their own message without waiting for
// the next tick. On failure the draft is preserved so no typed text is
// lost, and nothing is retried.
func (c *Controller) Send(ctx context.Context) error {
	if _, err := c.gate.Send(ctx, c.Draft()); err != nil {
		return err
	}

	c.SetDraft("")
	c.poller.Refresh()
	if c.onSent != nil {
		c.onSent()
	}
	return nil
}

// Refresh requests one out-of-cycle fetch (used by push hints).
func (c *Controller) Refresh() {
	c.poller.Refresh()
}
