package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoralabs/amora-chat/internal/models"
)

func TestListMessagesSendsBearerAndParses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/chat/m1/messages", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(models.MessagesResponse{
			Messages: []models.Message{{ID: "1", SenderID: "u1", Message: "hi"}},
			OtherUser: models.OtherUser{ID: "u2", Name: "Riley"},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok-123")
	resp, err := client.ListMessages(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "hi", resp.Messages[0].Message)
	assert.Equal(t, "Riley", resp.OtherUser.Name)
}

func TestListMessagesNormalizesNilSlice(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"messages": null, "other_user": {"id":"u2","name":"Riley"}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok")
	resp, err := client.ListMessages(context.Background(), "m1")
	require.NoError(t, err)
	assert.NotNil(t, resp.Messages)
	assert.Empty(t, resp.Messages)
}

func TestSendMessagePostsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat/m1/messages", r.URL.Path)

		var req models.SendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Message)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Message{ID: "1", Message: req.Message})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok")
	msg, err := client.SendMessage(context.Background(), "m1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "1", msg.ID)
}

func TestUnauthorizedIsTyped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "stale")
	_, err := client.ListMessages(context.Background(), "m1")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestServerErrorCarriesStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok")
	_, err := client.SendMessage(context.Background(), "m1", "hello")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestToggleAIRoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/ai/toggle", r.URL.Path)

		var req models.AIToggleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Enabled)

		// Server rejects: returned state differs from the requested one
		json.NewEncoder(w).Encode(models.AIStatus{AIEnabled: false, AIAvailable: true, CanUseAI: false})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok")
	status, err := client.ToggleAI(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, status.AIEnabled)
}

func TestAskAssistantParsesReply(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/m1/ai/chat", r.URL.Path)
		json.NewEncoder(w).Encode(models.AssistantChatResponse{Response: "be yourself"})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok")
	reply, err := client.AskAssistant(context.Background(), "m1", "any advice?")
	require.NoError(t, err)
	assert.Equal(t, "be yourself", reply)
}

func TestContextCancellationPropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListMessages(ctx, "m1")
	require.Error(t, err)
}
