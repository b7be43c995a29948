package session

import (
	"sync"

	"github.com/amoralabs/amora-chat/internal/models"
)

// Store holds the current known-complete message set for one match
// conversation. The server is the sole source of truth: every successful
// fetch replaces the contents wholesale, in server order, with no merging,
// filtering or client-side sorting.
type Store struct {
	mu        sync.RWMutex
	messages  []models.Message
	otherUser models.OtherUser
	lastSeq   uint64
	closed    bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{messages: []models.Message{}}
}

// Apply replaces the store contents with a fetched snapshot.
// Each fetch carries a monotonically increasing sequence number; a response
// whose sequence is at or below the last applied one is a straggler from an
// older request and is discarded, so a slow early fetch can never overwrite
// a newer one. Returns whether the snapshot was applied.
func (s *Store) Apply(seq uint64, resp *models.MessagesResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq <= s.lastSeq {
		return false
	}
	s.lastSeq = seq

	s.messages = make([]models.Message, len(resp.Messages))
	copy(s.messages, resp.Messages)
	s.otherUser = resp.OtherUser
	return true
}

// Messages returns a copy of the current message set in server order.
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Message, len(s.messages))
	copy(result, s.messages)
	return result
}

// OtherUser returns the other party's summary from the latest snapshot.
func (s *Store) OtherUser() models.OtherUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.otherUser
}

// Len returns the number of messages currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Close marks the store as torn down. Late-resolving fetches that complete
// after the owning view is gone must not mutate state; after Close, Apply
// is a no-op.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
