package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amoralabs/amora-chat/internal/models"
)

// fakeChatAPI is an in-memory stand-in for the REST client. Sends append
// to the room and lists return the full set, mirroring the server contract.
type fakeChatAPI struct {
	mu       sync.Mutex
	messages map[string][]models.Message
	nextID   int

	listCalls int
	sendCalls int

	listErr error
	sendErr error

	// listed receives one signal per completed ListMessages call
	listed chan struct{}

	// sendBlock, when set, is awaited before SendMessage returns
	sendBlock chan struct{}
}

func newFakeChatAPI() *fakeChatAPI {
	return &fakeChatAPI{
		messages: make(map[string][]models.Message),
		listed:   make(chan struct{}, 64),
	}
}

func (f *fakeChatAPI) ListMessages(ctx context.Context, matchID string) (*models.MessagesResponse, error) {
	f.mu.Lock()
	f.listCalls++
	err := f.listErr
	msgs := make([]models.Message, len(f.messages[matchID]))
	copy(msgs, f.messages[matchID])
	f.mu.Unlock()

	defer func() {
		select {
		case f.listed <- struct{}{}:
		default:
		}
	}()

	if err != nil {
		return nil, err
	}
	return &models.MessagesResponse{
		Messages:  msgs,
		OtherUser: models.OtherUser{ID: "u2", Name: "Riley"},
	}, nil
}

func (f *fakeChatAPI) SendMessage(ctx context.Context, matchID, text string) (*models.Message, error) {
	f.mu.Lock()
	f.sendCalls++
	err := f.sendErr
	block := f.sendBlock
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.nextID++
	msg := models.Message{
		ID:         fmt.Sprintf("%d", f.nextID),
		SenderID:   "u1",
		SenderName: "Alex",
		Message:    text,
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.messages[matchID] = append(f.messages[matchID], msg)
	f.mu.Unlock()

	return &msg, nil
}

func (f *fakeChatAPI) counts() (lists, sends int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.sendCalls
}

// waitListed blocks until one ListMessages call has completed.
func (f *fakeChatAPI) waitListed(timeout time.Duration) bool {
	select {
	case <-f.listed:
		return true
	case <-time.After(timeout):
		return false
	}
}
