package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenRole binds a token to its purpose. Each role is signed with its own key
// and has its own lifetime.
type TokenRole string

const (
	TokenRoleAccess  TokenRole = "access"
	TokenRoleRefresh TokenRole = "refresh"
)

// Other returns the opposite role.
func (r TokenRole) Other() TokenRole {
	if r == TokenRoleAccess {
		return TokenRoleRefresh
	}

	return TokenRoleAccess
}

// Valid reports whether r is a known role.
func (r TokenRole) Valid() bool {
	return r == TokenRoleAccess || r == TokenRoleRefresh
}

// TokenPair is an access token together with the refresh token minted in the
// same call.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionEventType names a session lifecycle transition.
type SessionEventType string

const (
	EventPrincipalRegistered  SessionEventType = "principal.registered"
	EventSessionStarted       SessionEventType = "session.started"
	EventSessionEnded         SessionEventType = "session.ended"
	EventSessionRefreshed     SessionEventType = "session.refreshed"
	EventRefreshReuseDetected SessionEventType = "session.refresh_reuse_detected"
)

// SessionEvent is published after a session state change.
type SessionEvent struct {
	RequestID   string           `json:"request_id,omitempty"`
	Type        SessionEventType `json:"type"`
	PrincipalID uuid.UUID        `json:"principal_id"`
	OccurredAt  time.Time        `json:"occurred_at"`
}
