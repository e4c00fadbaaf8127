package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"warden/config"
	"warden/internal/domain/entity"
	"warden/internal/domain/service"
)

// sessionCookies writes the token pair as HttpOnly cookies.
type sessionCookies struct {
	cfg        config.CookieConfig
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// newSessionCookies expires each cookie together with the token it carries.
func newSessionCookies(cfg config.CookieConfig, tokens service.TokenService) sessionCookies {
	return sessionCookies{
		cfg:        cfg,
		accessTTL:  tokens.Lifetime(entity.TokenRoleAccess),
		refreshTTL: tokens.Lifetime(entity.TokenRoleRefresh),
	}
}

func (s sessionCookies) set(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(s.cookie(s.cfg.AccessTokenName, accessToken, s.accessTTL))
	c.SetCookie(s.cookie(s.cfg.RefreshTokenName, refreshToken, s.refreshTTL))
}

func (s sessionCookies) clear(c echo.Context) {
	for _, name := range []string{s.cfg.AccessTokenName, s.cfg.RefreshTokenName} {
		cookie := s.cookie(name, "", 0)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		c.SetCookie(cookie)
	}
}

func (s sessionCookies) refreshToken(c echo.Context) string {
	cookie, err := c.Cookie(s.cfg.RefreshTokenName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func (s sessionCookies) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     s.cfg.Path,
		Domain:   s.cfg.Domain,
		MaxAge:   int(ttl.Seconds()),
		Secure:   s.cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite(s.cfg.SameSite),
	}
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
