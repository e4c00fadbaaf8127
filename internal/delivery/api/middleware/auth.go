package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"warden/config"
	deliverycontext "warden/internal/delivery/context"
	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/errors"
	"warden/internal/usecase"
)

const bearerPrefix = "Bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Guard  usecase.GuardUsecase
	Config *config.Config
}

// AuthMiddleware guards routes that require an authenticated principal.
type AuthMiddleware struct {
	guard      usecase.GuardUsecase
	cookieName string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		guard:      params.Guard,
		cookieName: params.Config.Auth.Cookie.AccessTokenName,
	}
}

// Authenticate resolves the access token of the request and attaches the
// principal to the context. The next handler only runs on success.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.extractToken(c)
		if token == "" {
			return errors.Wrap(domainerrors.ErrUnauthorized, "access token is missing")
		}

		principal, err := m.guard.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// extractToken prefers the access token cookie over the Authorization header.
func (m *AuthMiddleware) extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(authHeader, bearerPrefix); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

// GetPrincipal returns the principal attached by Authenticate.
func GetPrincipal(c echo.Context) (*entity.PublicPrincipal, bool) {
	return deliverycontext.GetPrincipalFromEcho(c)
}
