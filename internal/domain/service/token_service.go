package service

import (
	"time"

	"github.com/google/uuid"

	"warden/internal/domain/entity"
)

// Claims is the verified content of a token.
type Claims struct {
	PrincipalID uuid.UUID
	Role        entity.TokenRole
	TokenID     string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenService defines the interface for minting and verifying role-bound tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue mints a token for principalID bound to role.
	Issue(principalID uuid.UUID, role entity.TokenRole) (string, error)

	// IssuePair mints an access and a refresh token in one call.
	IssuePair(principalID uuid.UUID) (*entity.TokenPair, error)

	// Verify checks signature, expiry and role of token.
	Verify(token string, role entity.TokenRole) (*Claims, error)

	// HashToken returns the digest under which a refresh token is stored.
	HashToken(token string) string

	// Lifetime returns the configured lifetime of tokens with role.
	Lifetime(role entity.TokenRole) time.Duration
}
