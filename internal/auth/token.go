package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the client knows about itself from its bearer token.
// The token is decoded without signature verification: verification is the
// server's job, the client only needs its own user id to tell its messages
// apart from the other party's, and the expiry for diagnostics.
type Identity struct {
	// UserID is the token subject (or user_id claim)
	UserID string

	// Name is the display name claim, if present
	Name string

	// ExpiresAt is the token expiry; zero if the token carries none
	ExpiresAt time.Time
}

// ErrNoSubject is returned when the token carries no usable user identifier
var ErrNoSubject = errors.New("token has no subject or user_id claim")

// FromToken decodes the claims of a bearer token without verifying it.
func FromToken(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("failed to decode token: %w", err)
	}

	var id Identity

	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		id.UserID = sub
	} else if v, ok := claims["user_id"].(string); ok && v != "" {
		id.UserID = v
	}
	if id.UserID == "" {
		return Identity{}, ErrNoSubject
	}

	if v, ok := claims["name"].(string); ok {
		id.Name = v
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}

	return id, nil
}

// Expired reports whether the identity's token expiry has passed.
// Tokens without an expiry never report as expired.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}
