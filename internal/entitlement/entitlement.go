// Package entitlement turns server-reported capability flags into typed
// permission decisions. Callers consult a Decision before exposing a
// feature; no ad hoc boolean checks are scattered through the UI.
package entitlement

import (
	"context"

	"github.com/amoralabs/amora-chat/internal/models"
)

// Decision is a typed permission result.
type Decision struct {
	Allowed bool

	// Reason explains a denial in user-presentable terms; empty when allowed
	Reason string
}

// StatusAPI fetches the assistant capability flags.
type StatusAPI interface {
	AIStatus(ctx context.Context) (*models.AIStatus, error)
}

// ForAssistant derives the assistant entitlement from a status response.
// The server computes entitlement; this only names the denial.
func ForAssistant(status *models.AIStatus) Decision {
	switch {
	case !status.AIAvailable:
		return Decision{Reason: "the assistant is currently unavailable"}
	case !status.CanUseAI:
		return Decision{Reason: "the assistant requires a premium subscription"}
	default:
		return Decision{Allowed: true}
	}
}

// CheckAssistant fetches the current status and derives the assistant
// entitlement from it. The returned status carries the current on/off
// state for callers that also need it.
func CheckAssistant(ctx context.Context, api StatusAPI) (Decision, *models.AIStatus, error) {
	status, err := api.AIStatus(ctx)
	if err != nil {
		return Decision{}, nil, err
	}
	return ForAssistant(status), status, nil
}
