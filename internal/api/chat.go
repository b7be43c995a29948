package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/amoralabs/amora-chat/internal/models"
)

// ListMessages retrieves the full ordered message set for a match,
// together with a summary of the other party.
func (c *Client) ListMessages(ctx context.Context, matchID string) (*models.MessagesResponse, error) {
	endpoint := fmt.Sprintf("chat/%s/messages", url.PathEscape(matchID))
	respBody, err := c.doRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp models.MessagesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	if resp.Messages == nil {
		resp.Messages = []models.Message{}
	}

	return &resp, nil
}

// SendMessage posts one message to a match conversation and returns the
// created record.
func (c *Client) SendMessage(ctx context.Context, matchID, text string) (*models.Message, error) {
	endpoint := fmt.Sprintf("chat/%s/messages", url.PathEscape(matchID))
	respBody, err := c.doRequest(ctx, "POST", endpoint, models.SendMessageRequest{Message: text})
	if err != nil {
		return nil, err
	}

	var msg models.Message
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	return &msg, nil
}
