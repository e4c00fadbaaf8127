// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"warden/internal/domain/entity"
	"warden/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new principal.
type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     *service.MediaFile
	CoverImage *service.MediaFile // optional
}

// LoginInput identifies a principal by username or email.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// RefreshInput carries the refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// LoginOutput returns the minted tokens together with the public principal.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	Principal    *entity.PublicPrincipal
}

// RefreshOutput returns the rotated token pair.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// SessionUsecase defines the credential and session lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type SessionUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.PublicPrincipal, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, principalID uuid.UUID) error
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
}
