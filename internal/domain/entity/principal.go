// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Principal is an identity able to authenticate: a registered account with a
// unique username and email and, while logged in, a single active session.
type Principal struct {
	ID               uuid.UUID // Assigned by the store at creation, immutable afterwards.
	Username         string    // Lowercased at creation, globally unique.
	Email            string    // Globally unique.
	FullName         string    // Display name.
	AvatarURL        string    // Public URL of the uploaded avatar, required.
	CoverImageURL    string    // Public URL of the cover image, empty when absent.
	PasswordHash     string    // bcrypt digest of the secret. Never leaves the service.
	RefreshTokenHash *string   // SHA-256 digest of the active refresh token, nil when logged out.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PublicPrincipal is the projection of a Principal that may be returned to
// clients. It has no secret-bearing fields at all.
type PublicPrincipal struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Public maps the principal onto its public projection.
func (p *Principal) Public() *PublicPrincipal {
	return &PublicPrincipal{
		ID:            p.ID,
		Username:      p.Username,
		Email:         p.Email,
		FullName:      p.FullName,
		AvatarURL:     p.AvatarURL,
		CoverImageURL: p.CoverImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// HasActiveSession reports whether a refresh token hash is stored.
func (p *Principal) HasActiveSession() bool {
	return p.RefreshTokenHash != nil && *p.RefreshTokenHash != ""
}
