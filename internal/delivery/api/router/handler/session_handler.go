// Package handler contains the HTTP handlers for the application.
package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"warden/config"
	"warden/internal/delivery/api/middleware"
	"warden/internal/delivery/api/response"
	"warden/internal/delivery/api/validator"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/service"
	"warden/internal/errors"
	"warden/internal/usecase"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC    usecase.SessionUsecase
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// SessionHandler serves registration and the session lifecycle endpoints.
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
	cookies   sessionCookies
	logger    *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler.
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		sessionUC: params.SessionUC,
		cookies:   newSessionCookies(params.Config.Auth.Cookie, params.TokenService),
		logger:    params.Logger,
	}
}

// RegisterRequest represents the multipart form fields of a registration.
type RegisterRequest struct {
	FullName string `form:"fullName" json:"fullName" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// LoginRequest represents the request body for login. Either username or email identifies the principal.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token when it is not sent as a cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse is returned by login.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         any    `json:"user"`
}

// Register handles POST /auth/register.
func (h *SessionHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	avatar, err := formFile(c, "avatar")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid avatar upload")
	}

	coverImage, err := formFile(c, "coverImage")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cover image upload")
	}

	principal, err := h.sessionUC.Register(c.Request().Context(), &usecase.RegisterInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		Avatar:     avatar,
		CoverImage: coverImage,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, principal, "User registered successfully")
}

// Login handles POST /auth/login and sets the session cookies.
func (h *SessionHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	output, err := h.sessionUC.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.set(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, &LoginResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         output.Principal,
	}, "User logged in successfully")
}

// Refresh handles POST /auth/refresh. The cookie takes precedence over the body.
func (h *SessionHandler) Refresh(c echo.Context) error {
	token := h.cookies.refreshToken(c)
	if token == "" {
		var req RefreshRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
		}
		token = req.RefreshToken
	}

	output, err := h.sessionUC.Refresh(c.Request().Context(), &usecase.RefreshInput{RefreshToken: token})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.set(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, map[string]string{
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
	}, "Access token refreshed")
}

// Logout handles POST /auth/logout for the authenticated principal and clears the cookies.
func (h *SessionHandler) Logout(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	if err := h.sessionUC.Logout(c.Request().Context(), principal.ID); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.clear(c)

	return response.Success(c, http.StatusOK, map[string]any{}, "User logged out")
}

// Me handles GET /user/me.
func (h *SessionHandler) Me(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	return response.Success(c, http.StatusOK, principal, "Current user fetched successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// formFile returns the named upload, or nil when the field is absent.
func formFile(c echo.Context, field string) (*service.MediaFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}

		return nil, errors.WithStack(err)
	}

	return mediaFile(header), nil
}

func mediaFile(header *multipart.FileHeader) *service.MediaFile {
	return &service.MediaFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			file, err := header.Open()
			if err != nil {
				return nil, err
			}

			return file, nil
		},
	}
}

func validationError(c echo.Context, err error) error {
	return response.BadRequestWithDetails(c,
		domainerrors.ErrValidationFailed.ErrorCode(),
		domainerrors.ErrValidationFailed.Message(),
		validator.Describe(err),
	)
}
