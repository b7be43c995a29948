package models

import "time"

// Message represents one chat message inside a match conversation.
// Messages are immutable once created; the server assigns the ID and
// timestamp and the client never edits or reorders them.
type Message struct {
	// ID is the server-assigned unique identifier, stable across fetches
	ID string `json:"id"`

	// SenderID identifies the authoring party
	SenderID string `json:"sender_id"`

	// SenderName is the sender's display name, denormalized for rendering
	// (may be stale relative to the sender's current profile)
	SenderName string `json:"sender_name"`

	// Message is the plain text payload
	Message string `json:"message"`

	// CreatedAt is the server timestamp (RFC 3339)
	CreatedAt time.Time `json:"created_at"`
}

// OtherUser is the summary of the other party in a conversation,
// returned alongside the message list.
type OtherUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// SendMessageRequest is the request body for sending a message
type SendMessageRequest struct {
	Message string `json:"message"`
}

// MessagesResponse is the response for fetching a conversation's messages.
// The server returns the full ordered set every time; the client replaces
// its local copy wholesale rather than merging.
type MessagesResponse struct {
	Messages  []Message `json:"messages"`
	OtherUser OtherUser `json:"other_user"`
}
