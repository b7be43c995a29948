// Package mockapi is a local stand-in for the Amora chat API, used for
// development, demos and scenario tests. State is in-memory and gone on
// restart. It implements the same endpoint contract the real backend
// serves: message list/send, assistant status/toggle/analyze/suggestions/
// chat, and the websocket hint stream.
package mockapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/amoralabs/amora-chat/internal/auth"
	"github.com/amoralabs/amora-chat/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Options configures the mock server's behavior.
type Options struct {
	// EntitledUsers limits which user ids may use the assistant.
	// Nil entitles everyone.
	EntitledUsers []string

	// AIUnavailable reports the assistant service as down
	AIUnavailable bool
}

// Server holds the mock API's in-memory state.
type Server struct {
	opts Options
	hub  *hub

	mu        sync.Mutex
	messages  map[string][]models.Message
	aiEnabled map[string]bool
}

// NewServer creates an empty mock API server.
func NewServer(opts Options) *Server {
	return &Server{
		opts:      opts,
		hub:       newHub(),
		messages:  make(map[string][]models.Message),
		aiEnabled: make(map[string]bool),
	}
}

// Handler returns the mock API's HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requireBearer)

	r.Route("/chat", func(r chi.Router) {
		r.Get("/ai/status", s.handleAIStatus)
		r.Post("/ai/toggle", s.handleAIToggle)

		r.Route("/{matchID}", func(r chi.Router) {
			r.Get("/messages", s.handleListMessages)
			r.Post("/messages", s.handleSendMessage)
			r.Get("/stream", s.handleStream)
			r.Post("/ai/analyze", s.handleAnalyze)
			r.Get("/ai/suggestions", s.handleSuggestions)
			r.Post("/ai/chat", s.handleAssistantChat)
		})
	})

	return r
}

type contextKey string

const userKey contextKey = "user"

func contextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

func userFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userKey).(string)
	return userID
}

// requireBearer extracts the caller's identity from the bearer token.
// JWTs are decoded for their subject; any other non-empty token is treated
// as the user id directly, which keeps demo setups to AMORA_TOKEN=u1.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			// Websocket clients cannot always set headers; allow ?token=
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		userID := token
		if id, err := auth.FromToken(token); err == nil {
			userID = id.UserID
		}

		next.ServeHTTP(w, r.WithContext(contextWithUser(r.Context(), userID)))
	})
}

// handleListMessages handles GET /chat/{matchID}/messages
// Returns the full ordered message set plus the other party's summary.
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	caller := userFromContext(r.Context())

	s.mu.Lock()
	msgs := make([]models.Message, len(s.messages[matchID]))
	copy(msgs, s.messages[matchID])
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.MessagesResponse{
		Messages:  msgs,
		OtherUser: s.otherParty(msgs, caller),
	})
}

// handleSendMessage handles POST /chat/{matchID}/messages
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	caller := userFromContext(r.Context())

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	msg := models.Message{
		ID:         uuid.New().String(),
		SenderID:   caller,
		SenderName: displayName(caller),
		Message:    req.Message,
		CreatedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.messages[matchID] = append(s.messages[matchID], msg)
	s.mu.Unlock()

	log.Printf("[MockAPI] Stored message %s in match %s from %s", msg.ID, matchID, caller)
	s.hub.broadcast(matchID)
	writeJSON(w, http.StatusCreated, msg)
}

var upgrader = websocket.Upgrader{
	// Dev tool; any origin may subscribe
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStream handles GET /chat/{matchID}/stream
// Upgrades to a websocket that carries refresh hints for the conversation.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[MockAPI] Stream upgrade failed for match %s: %v", matchID, err)
		return
	}

	s.hub.add(matchID, conn)

	// Keep the peer alive and notice when it goes away
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for range ticker.C {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.hub.remove(matchID, conn)
				return
			}
		}
	}()

	go func() {
		defer s.hub.remove(matchID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// otherParty picks the most recent sender that isn't the caller; a fresh
// conversation falls back to a canned profile so the UI has a name to show.
func (s *Server) otherParty(msgs []models.Message, caller string) models.OtherUser {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].SenderID != caller {
			return models.OtherUser{ID: msgs[i].SenderID, Name: msgs[i].SenderName}
		}
	}
	return models.OtherUser{ID: "riley", Name: "Riley"}
}

// displayName derives a presentable name from a demo user id.
func displayName(userID string) string {
	if userID == "" {
		return "Unknown"
	}
	return strings.ToUpper(userID[:1]) + userID[1:]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[MockAPI] Failed to encode response: %v", err)
	}
}
