package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"warden/internal/delivery/api/middleware"
	"warden/internal/delivery/api/response"
)

// TestHandler handles test endpoints for middleware validation
type TestHandler struct{}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// TestAuthMiddleware tests the authentication middleware
// This endpoint requires a valid access token as cookie or Bearer header
func (h *TestHandler) TestAuthMiddleware(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "Principal not found in context")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"message":     "Authentication middleware test successful",
		"principalID": principal.ID,
		"username":    principal.Username,
		"status":      "authenticated",
	})
}

// TestPublicEndpoint tests a public endpoint (no authentication required)
func (h *TestHandler) TestPublicEndpoint(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Public endpoint test successful",
		"status":  "public",
	})
}
