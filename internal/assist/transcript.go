package assist

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Turn roles in the assistant transcript
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry in the assistant transcript. The transcript is purely
// client-owned: no fetch ever returns it, entries are only appended around
// each request/response pair, and it is gone when the session is.
type Turn struct {
	ID      string
	Role    string
	Content string
	At      time.Time
}

// Ask sends one user turn to the assistant. The user's turn is appended
// before the request goes out; the assistant's reply is appended when it
// arrives. A failed turn is appended as an assistant-role entry carrying
// the error text, so the transcript always reflects exactly what the user
// saw, visible failures included.
func (c *Controller) Ask(ctx context.Context, text string) {
	c.appendTurn(RoleUser, text)

	reply, err := c.api.AskAssistant(ctx, c.matchID, text)
	if err != nil {
		log.Printf("[Assist] Chat turn failed for match %s: %v", c.matchID, err)
		c.appendTurn(RoleAssistant, err.Error())
		return
	}

	c.appendTurn(RoleAssistant, reply)
}

// Transcript returns a copy of the transcript in append order.
func (c *Controller) Transcript() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]Turn, len(c.transcript))
	copy(result, c.transcript)
	return result
}

func (c *Controller) appendTurn(role, content string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.transcript = append(c.transcript, Turn{
		ID:      uuid.New().String(),
		Role:    role,
		Content: content,
		At:      time.Now().UTC(),
	})
	c.mu.Unlock()
	c.notify()
}
