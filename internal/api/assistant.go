package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/amoralabs/amora-chat/internal/models"
)

// AIStatus retrieves the assistant's current state for this user.
func (c *Client) AIStatus(ctx context.Context) (*models.AIStatus, error) {
	respBody, err := c.doRequest(ctx, "GET", "chat/ai/status", nil)
	if err != nil {
		return nil, err
	}

	var status models.AIStatus
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("failed to parse ai status: %w", err)
	}

	return &status, nil
}

// ToggleAI requests the assistant to be switched on or off.
// The returned status reflects the server's decision, which may differ
// from the requested state.
func (c *Client) ToggleAI(ctx context.Context, enabled bool) (*models.AIStatus, error) {
	respBody, err := c.doRequest(ctx, "POST", "chat/ai/toggle", models.AIToggleRequest{Enabled: enabled})
	if err != nil {
		return nil, err
	}

	var status models.AIStatus
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("failed to parse toggle response: %w", err)
	}

	return &status, nil
}

// Analyze requests a fresh conversation analysis snapshot for a match.
func (c *Client) Analyze(ctx context.Context, matchID string) (*models.Analysis, error) {
	endpoint := fmt.Sprintf("chat/%s/ai/analyze", url.PathEscape(matchID))
	respBody, err := c.doRequest(ctx, "POST", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var analysis models.Analysis
	if err := json.Unmarshal(respBody, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}

	return &analysis, nil
}

// Suggestions retrieves candidate replies for a match conversation.
func (c *Client) Suggestions(ctx context.Context, matchID string) ([]string, error) {
	endpoint := fmt.Sprintf("chat/%s/ai/suggestions", url.PathEscape(matchID))
	respBody, err := c.doRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp models.SuggestionsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}

	return resp.Suggestions, nil
}

// AskAssistant sends one user turn to the assistant and returns its reply.
func (c *Client) AskAssistant(ctx context.Context, matchID, text string) (string, error) {
	endpoint := fmt.Sprintf("chat/%s/ai/chat", url.PathEscape(matchID))
	respBody, err := c.doRequest(ctx, "POST", endpoint, models.AssistantChatRequest{Message: text})
	if err != nil {
		return "", err
	}

	var resp models.AssistantChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to parse assistant reply: %w", err)
	}

	return resp.Response, nil
}
