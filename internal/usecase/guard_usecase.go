package usecase

import (
	"context"

	"warden/internal/domain/entity"
)

// GuardUsecase resolves an access token to the principal it was issued for.
type GuardUsecase interface {
	// Authenticate returns the public principal for a valid access token. Every
	// rejection is reported as Unauthorized.
	Authenticate(ctx context.Context, accessToken string) (*entity.PublicPrincipal, error)
}
