package mockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoralabs/amora-chat/internal/api"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

// End-to-end send scenario: an empty room, one POST with {message:"hello"},
// one GET, and the store-visible result is exactly that one entry.
func TestSendThenListScenario(t *testing.T) {
	ts := newTestServer(t, Options{})
	client := api.NewClient(ts.URL, "u1")

	resp, err := client.ListMessages(context.Background(), "m1")
	require.NoError(t, err)
	assert.Empty(t, resp.Messages)

	sent, err := client.SendMessage(context.Background(), "m1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "u1", sent.SenderID)
	assert.Equal(t, "hello", sent.Message)
	assert.False(t, sent.CreatedAt.IsZero())

	resp, err = client.ListMessages(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, sent.ID, resp.Messages[0].ID)
	assert.Equal(t, "hello", resp.Messages[0].Message)
}

func TestListIncludesOtherPartySummary(t *testing.T) {
	ts := newTestServer(t, Options{})

	other := api.NewClient(ts.URL, "u2")
	_, err := other.SendMessage(context.Background(), "m1", "hey there")
	require.NoError(t, err)

	me := api.NewClient(ts.URL, "u1")
	resp, err := me.ListMessages(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "u2", resp.OtherUser.ID)
	assert.Equal(t, "U2", resp.OtherUser.Name)
}

func TestMissingBearerIsUnauthorized(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/chat/m1/messages")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEmptyMessageRejected(t *testing.T) {
	ts := newTestServer(t, Options{})
	client := api.NewClient(ts.URL, "u1")

	_, err := client.SendMessage(context.Background(), "m1", "   ")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

// Toggle is server-authoritative: a user outside the entitled set asks for
// on and gets back ai_enabled:false.
func TestToggleRespectsEntitlement(t *testing.T) {
	ts := newTestServer(t, Options{EntitledUsers: []string{"premium"}})

	basic := api.NewClient(ts.URL, "basic")
	status, err := basic.ToggleAI(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, status.AIEnabled)
	assert.False(t, status.CanUseAI)

	premium := api.NewClient(ts.URL, "premium")
	status, err = premium.ToggleAI(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, status.AIEnabled)
	assert.True(t, status.CanUseAI)

	// State is per user and visible on the status endpoint
	status, err = premium.AIStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.AIEnabled)

	status, err = basic.AIStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.AIEnabled)
}

func TestAnalyzeFlagsCautionWords(t *testing.T) {
	ts := newTestServer(t, Options{})
	client := api.NewClient(ts.URL, "u1")

	_, err := client.SendMessage(context.Background(), "m1", "can you wire me some money?")
	require.NoError(t, err)

	analysis, err := client.Analyze(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "caution", analysis.SafetyLevel)
	assert.NotEmpty(t, analysis.Warnings)
}

func TestSuggestionsAndAssistantChat(t *testing.T) {
	ts := newTestServer(t, Options{})
	client := api.NewClient(ts.URL, "u1")

	suggestions, err := client.Suggestions(context.Background(), "m1")
	require.NoError(t, err)
	assert.NotEmpty(t, suggestions)

	reply, err := client.AskAssistant(context.Background(), "m1", "how do I open?")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
