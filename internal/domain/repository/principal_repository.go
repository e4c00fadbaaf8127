// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"warden/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrPrincipalNotFound is returned when no principal matches the lookup.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrRefreshTokenMismatch is returned by RotateRefreshTokenHash when the stored
	// hash no longer equals the expected one.
	ErrRefreshTokenMismatch = errors.New("stored refresh token hash does not match")
)

// PrincipalRepository defines the persistence operations for principals.
// Every mutation touches a single row and is atomic on its own.
type PrincipalRepository interface {
	// FindByUsernameOrEmail returns the principal whose username equals username
	// or whose email equals email. Blank arguments are not matched.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.Principal, error)

	// FindByID retrieves a principal including its secret-bearing fields.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error)

	// FindPublicByID retrieves only the public projection of a principal.
	FindPublicByID(ctx context.Context, id uuid.UUID) (*entity.PublicPrincipal, error)

	// Create persists a new principal and assigns its ID and timestamps.
	Create(ctx context.Context, principal *entity.Principal) error

	// UpdateRefreshTokenHash overwrites the stored refresh token hash. A nil hash
	// clears the active session.
	UpdateRefreshTokenHash(ctx context.Context, id uuid.UUID, hash *string) error

	// RotateRefreshTokenHash replaces currentHash with nextHash only if currentHash
	// is still the stored value.
	RotateRefreshTokenHash(ctx context.Context, id uuid.UUID, currentHash, nextHash string) error
}
