package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/amoralabs/amora-chat/internal/models"
	"github.com/go-chi/chi/v5"
)

// Words that trip the mock safety screen, loosely modeled on what the real
// backend warns about in early conversations.
var cautionWords = []string{"money", "payment", "wire", "gift card", "address"}

func (s *Server) entitled(userID string) bool {
	if s.opts.EntitledUsers == nil {
		return true
	}
	for _, u := range s.opts.EntitledUsers {
		if u == userID {
			return true
		}
	}
	return false
}

func (s *Server) statusFor(userID string) models.AIStatus {
	s.mu.Lock()
	enabled := s.aiEnabled[userID]
	s.mu.Unlock()

	return models.AIStatus{
		AIEnabled:   enabled,
		AIAvailable: !s.opts.AIUnavailable,
		CanUseAI:    s.entitled(userID),
	}
}

// handleAIStatus handles GET /chat/ai/status
func (s *Server) handleAIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.statusFor(userFromContext(r.Context())))
}

// handleAIToggle handles POST /chat/ai/toggle
// The response carries the state the server actually settled on: a
// toggle-on from a user without entitlement comes back ai_enabled:false.
func (s *Server) handleAIToggle(w http.ResponseWriter, r *http.Request) {
	caller := userFromContext(r.Context())

	var req models.AIToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	granted := req.Enabled && s.entitled(caller) && !s.opts.AIUnavailable

	s.mu.Lock()
	s.aiEnabled[caller] = granted
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.statusFor(caller))
}

// handleAnalyze handles POST /chat/{matchID}/ai/analyze
// Produces a deterministic snapshot derived from the conversation so the
// client has realistic data to render.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	s.mu.Lock()
	msgs := make([]models.Message, len(s.messages[matchID]))
	copy(msgs, s.messages[matchID])
	s.mu.Unlock()

	analysis := models.Analysis{
		SafetyLevel:  "safe",
		Warnings:     []string{},
		MoodAnalysis: "The conversation is just getting started.",
		Tips:         []string{"Ask an open-ended question about their interests."},
	}

	for _, m := range msgs {
		lower := strings.ToLower(m.Message)
		for _, word := range cautionWords {
			if strings.Contains(lower, word) {
				analysis.SafetyLevel = "caution"
				analysis.Warnings = append(analysis.Warnings,
					fmt.Sprintf("A message mentions %q - never share financial or personal details.", word))
			}
		}
	}

	if len(msgs) >= 6 {
		analysis.MoodAnalysis = "The conversation is flowing well with steady back-and-forth."
		analysis.Tips = []string{
			"Suggest moving from small talk to a shared activity.",
			"Mirror their message length to keep the energy balanced.",
		}
	}

	writeJSON(w, http.StatusOK, analysis)
}

// handleSuggestions handles GET /chat/{matchID}/ai/suggestions
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	caller := userFromContext(r.Context())

	s.mu.Lock()
	msgs := make([]models.Message, len(s.messages[matchID]))
	copy(msgs, s.messages[matchID])
	s.mu.Unlock()

	other := s.otherParty(msgs, caller)
	suggestions := []string{
		fmt.Sprintf("Hey %s! What's been the highlight of your week?", other.Name),
		"I'd love to hear more about that - what got you into it?",
		"Any favorite spot in the city you think I should try?",
	}

	writeJSON(w, http.StatusOK, models.SuggestionsResponse{Suggestions: suggestions})
}

// handleAssistantChat handles POST /chat/{matchID}/ai/chat
func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	var req models.AssistantChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply := fmt.Sprintf(
		"Here's a thought on %q: keep it light, stay curious, and let the conversation breathe.",
		strings.TrimSpace(req.Message))
	writeJSON(w, http.StatusOK, models.AssistantChatResponse{Response: reply})
}
