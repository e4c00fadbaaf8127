package context

import (
	"context"

	"github.com/labstack/echo/v4"

	"warden/internal/domain/constants"
	"warden/internal/domain/entity"
)

// KeyPrincipal is the key for storing the authenticated principal in context.
const KeyPrincipal ContextKey = constants.ContextKeyPrincipal

// WithPrincipal returns a new context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, principal *entity.PublicPrincipal) context.Context {
	return context.WithValue(ctx, KeyPrincipal, principal)
}

// GetPrincipal extracts the authenticated principal from context.Context.
func GetPrincipal(ctx context.Context) (*entity.PublicPrincipal, bool) {
	principal, ok := ctx.Value(KeyPrincipal).(*entity.PublicPrincipal)

	return principal, ok && principal != nil
}

// SetPrincipal stores the principal in echo.Context and in the request context.
func SetPrincipal(c echo.Context, principal *entity.PublicPrincipal) {
	c.Set(constants.ContextKeyPrincipal, principal)
	c.Set(constants.ContextKeyPrincipalID, principal.ID)

	req := c.Request()
	c.SetRequest(req.WithContext(WithPrincipal(req.Context(), principal)))
}

// GetPrincipalFromEcho extracts the principal stored by the request guard.
func GetPrincipalFromEcho(c echo.Context) (*entity.PublicPrincipal, bool) {
	principal, ok := c.Get(constants.ContextKeyPrincipal).(*entity.PublicPrincipal)

	return principal, ok && principal != nil
}
