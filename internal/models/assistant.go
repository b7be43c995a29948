package models

// AIStatus reports whether the AI assistant is switched on for the current
// user, whether the feature is available at all, and whether the user's
// subscription tier permits it. The server is authoritative for all three.
type AIStatus struct {
	// AIEnabled is the user's current on/off state for the assistant
	AIEnabled bool `json:"ai_enabled"`

	// AIAvailable reports whether the assistant service is up
	AIAvailable bool `json:"ai_available"`

	// CanUseAI is the entitlement verdict (subscription tier)
	CanUseAI bool `json:"can_use_ai"`
}

// AIToggleRequest asks the server to switch the assistant on or off.
// The response carries the actual resulting state, which may differ from
// the requested one (e.g. entitlement rejection).
type AIToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// Analysis is the assistant's snapshot view of a conversation.
// Each fetch fully replaces the previous snapshot.
type Analysis struct {
	SafetyLevel  string   `json:"safety_level"`
	Warnings     []string `json:"warnings"`
	MoodAnalysis string   `json:"mood_analysis"`
	Tips         []string `json:"tips"`
}

// SuggestionsResponse carries candidate replies for the current
// conversation, ordered by the server.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// AssistantChatRequest is one user turn addressed to the assistant
type AssistantChatRequest struct {
	Message string `json:"message"`
}

// AssistantChatResponse is the assistant's reply to one turn
type AssistantChatResponse struct {
	Response string `json:"response"`
}
