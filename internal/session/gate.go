package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/amoralabs/amora-chat/internal/models"
)

// ErrEmptyMessage is returned when the outgoing text is empty after trimming
var ErrEmptyMessage = errors.New("message is empty")

// ErrSendInFlight is returned when a send is attempted while another is
// still in flight. The attempt is dropped, never queued.
var ErrSendInFlight = errors.New("send already in flight")

// SendGate serializes outgoing message submission for one conversation.
// "Sending" is a boolean mutex, not a queue: a second submit attempt while
// one is in flight is simply rejected at the gate.
type SendGate struct {
	api     ChatAPI
	matchID string
	sending atomic.Bool
}

// NewSendGate creates a gate for one match conversation.
func NewSendGate(api ChatAPI, matchID string) *SendGate {
	return &SendGate{api: api, matchID: matchID}
}

// Send submits one message. The text is trimmed before sending; empty text
// and reentrant calls are rejected without issuing a request. On failure
// the error is logged and returned with no retry.
func (g *SendGate) Send(ctx context.Context, text string) (*models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	if !g.sending.CompareAndSwap(false, true) {
		return nil, ErrSendInFlight
	}
	defer g.sending.Store(false)

	msg, err := g.api.SendMessage(ctx, g.matchID, trimmed)
	if err != nil {
		log.Printf("[Send] Failed for match %s: %v", g.matchID, err)
		return nil, err
	}

	return msg, nil
}

// Sending reports whether a send is currently in flight.
func (g *SendGate) Sending() bool {
	return g.sending.Load()
}
