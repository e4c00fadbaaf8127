package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warden/config"
	deliverycontext "warden/internal/delivery/context"
	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/errors"
	mockUsecase "warden/internal/mocks/usecase"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			Cookie: config.CookieConfig{AccessTokenName: "accessToken", RefreshTokenName: "refreshToken"},
		},
	}
}

func newAuthMiddleware(t *testing.T) (*AuthMiddleware, *mockUsecase.MockGuardUsecase) {
	t.Helper()

	guard := mockUsecase.NewMockGuardUsecase(t)

	return NewAuthMiddleware(AuthMiddlewareParams{Guard: guard, Config: newTestConfig()}), guard
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	principal := &entity.PublicPrincipal{ID: uuid.New(), Username: "alice", CreatedAt: time.Now()}

	tests := []struct {
		name  string
		setup func(req *http.Request)
		token string
	}{
		{
			name:  "cookie",
			setup: func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "accessToken", Value: "cookie-token"}) },
			token: "cookie-token",
		},
		{
			name:  "bearer header",
			setup: func(req *http.Request) { req.Header.Set(echo.HeaderAuthorization, "Bearer header-token") },
			token: "header-token",
		},
		{
			name: "cookie wins over header",
			setup: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: "accessToken", Value: "cookie-token"})
				req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
			},
			token: "cookie-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, guard := newAuthMiddleware(t)
			guard.EXPECT().Authenticate(mock.Anything, tt.token).Return(principal, nil)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
			tt.setup(req)
			c := e.NewContext(req, httptest.NewRecorder())

			var fromEcho, fromCtx *entity.PublicPrincipal
			err := m.Authenticate(func(c echo.Context) error {
				fromEcho, _ = GetPrincipal(c)
				fromCtx, _ = deliverycontext.GetPrincipal(c.Request().Context())

				return nil
			})(c)

			require.NoError(t, err)
			assert.Equal(t, principal, fromEcho)
			assert.Equal(t, principal, fromCtx)
		})
	}
}

func TestAuthMiddleware_RejectsWithoutCallingHandler(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		m, _ := newAuthMiddleware(t)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic YWxpY2U6cA==")
		c := e.NewContext(req, httptest.NewRecorder())

		err := m.Authenticate(func(echo.Context) error {
			t.Fatal("handler must not run")

			return nil
		})(c)

		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})

	t.Run("guard rejects", func(t *testing.T) {
		m, guard := newAuthMiddleware(t)
		guard.EXPECT().Authenticate(mock.Anything, "expired").
			Return(nil, errors.Wrap(domainerrors.ErrUnauthorized, "invalid access token"))

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer expired")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := m.Authenticate(func(echo.Context) error {
			t.Fatal("handler must not run")

			return nil
		})(c)
		require.Error(t, err)

		NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError(err, c)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
	})
}
