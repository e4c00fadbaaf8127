package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warden/config"
	"warden/internal/delivery/api/validator"
	deliverycontext "warden/internal/delivery/context"
	"warden/internal/domain/entity"
	"warden/internal/infra/auth"
	mockUsecase "warden/internal/mocks/usecase"
	"warden/internal/usecase"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Token: config.TokenConfig{AccessTTL: 15 * time.Minute, RefreshTTL: 7 * 24 * time.Hour},
		Auth: &config.AuthConfig{
			Cookie: config.CookieConfig{
				AccessTokenName:  "accessToken",
				RefreshTokenName: "refreshToken",
				Path:             "/",
				Secure:           true,
				SameSite:         "strict",
			},
		},
	}
	cfg.SecretKey.Access = "handler_test_access_secret"
	cfg.SecretKey.Refresh = "handler_test_refresh_secret"

	return cfg
}

func newTestSessionHandler(t *testing.T) (*SessionHandler, *mockUsecase.MockSessionUsecase, *echo.Echo) {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	uc := mockUsecase.NewMockSessionUsecase(t)
	h := NewSessionHandler(SessionHandlerParams{
		SessionUC:    uc,
		TokenService: tokens,
		Config:       cfg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	e := echo.New()
	e.Validator = validator.New()

	return h, uc, e
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}

	return cookies
}

func alicePublic() *entity.PublicPrincipal {
	return &entity.PublicPrincipal{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@x.com",
		FullName:  "Alice Liddell",
		AvatarURL: "https://cdn.example.test/avatars/a.png",
	}
}

func multipartRegister(t *testing.T, withAvatar bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("fullName", "Alice Liddell"))
	require.NoError(t, w.WriteField("email", "alice@x.com"))
	require.NoError(t, w.WriteField("username", "alice"))
	require.NoError(t, w.WriteField("password", "p@ss1"))
	if withAvatar {
		part, err := w.CreateFormFile("avatar", "alice.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())

	return req
}

func TestSessionHandler_Register(t *testing.T) {
	h, uc, e := newTestSessionHandler(t)
	principal := alicePublic()

	uc.EXPECT().Register(mock.Anything, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
		if in.Avatar == nil || in.CoverImage != nil {
			return false
		}
		src, err := in.Avatar.Open()
		if err != nil {
			return false
		}
		defer src.Close()
		content, _ := io.ReadAll(src)

		return in.Username == "alice" && in.Password == "p@ss1" &&
			in.Avatar.Filename == "alice.png" && string(content) == "png-bytes"
	})).Return(principal, nil)

	rec := httptest.NewRecorder()
	require.NoError(t, h.Register(e.NewContext(multipartRegister(t, true), rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), `"avatar":"https://cdn.example.test/avatars/a.png"`)
}

func TestSessionHandler_Register_MissingAvatarReachesUsecase(t *testing.T) {
	h, uc, e := newTestSessionHandler(t)

	uc.EXPECT().Register(mock.Anything, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
		return in.Avatar == nil
	})).Return(nil, assert.AnError)

	err := h.Register(e.NewContext(multipartRegister(t, false), httptest.NewRecorder()))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSessionHandler_Register_ValidationFailure(t *testing.T) {
	h, _, e := newTestSessionHandler(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("fullName", "Alice"))
	require.NoError(t, w.WriteField("email", "not-an-email"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()

	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"email"`)
	assert.Contains(t, rec.Body.String(), `"username":"required"`)
}

func TestSessionHandler_Login_SetsCookies(t *testing.T) {
	h, uc, e := newTestSessionHandler(t)
	principal := alicePublic()

	uc.EXPECT().Login(mock.Anything, &usecase.LoginInput{Username: "alice", Password: "p@ss1"}).
		Return(&usecase.LoginOutput{AccessToken: "a1", RefreshToken: "r1", Principal: principal}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"p@ss1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a1", body.Data.AccessToken)
	assert.Equal(t, "r1", body.Data.RefreshToken)

	cookies := cookiesByName(rec)
	require.Contains(t, cookies, "accessToken")
	require.Contains(t, cookies, "refreshToken")
	assert.Equal(t, "a1", cookies["accessToken"].Value)
	assert.True(t, cookies["accessToken"].HttpOnly)
	assert.True(t, cookies["accessToken"].Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookies["accessToken"].SameSite)
	assert.Equal(t, int((15 * time.Minute).Seconds()), cookies["accessToken"].MaxAge)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookies["refreshToken"].MaxAge)
}

func TestSessionHandler_Refresh_TokenSources(t *testing.T) {
	t.Run("cookie", func(t *testing.T) {
		h, uc, e := newTestSessionHandler(t)
		uc.EXPECT().Refresh(mock.Anything, &usecase.RefreshInput{RefreshToken: "from-cookie"}).
			Return(&usecase.RefreshOutput{AccessToken: "a2", RefreshToken: "r2"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refreshToken":"from-body"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "from-cookie"})
		rec := httptest.NewRecorder()

		require.NoError(t, h.Refresh(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "r2", cookiesByName(rec)["refreshToken"].Value)
	})

	t.Run("body", func(t *testing.T) {
		h, uc, e := newTestSessionHandler(t)
		uc.EXPECT().Refresh(mock.Anything, &usecase.RefreshInput{RefreshToken: "from-body"}).
			Return(&usecase.RefreshOutput{AccessToken: "a2", RefreshToken: "r2"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refreshToken":"from-body"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.Refresh(e.NewContext(req, rec)))
		assert.Contains(t, rec.Body.String(), `"accessToken":"a2"`)
	})
}

func TestSessionHandler_Logout_ClearsCookies(t *testing.T) {
	h, uc, e := newTestSessionHandler(t)
	principal := alicePublic()

	uc.EXPECT().Logout(mock.Anything, principal.ID).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetPrincipal(c, principal)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := cookiesByName(rec)
	require.Contains(t, cookies, "accessToken")
	assert.Empty(t, cookies["accessToken"].Value)
	assert.Negative(t, cookies["accessToken"].MaxAge)
	assert.Negative(t, cookies["refreshToken"].MaxAge)
}

func TestSessionHandler_Me(t *testing.T) {
	h, _, e := newTestSessionHandler(t)
	principal := alicePublic()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/user/me", nil), rec)
	deliverycontext.SetPrincipal(c, principal)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), principal.ID.String())
}

func TestMediaFile_OpensUpload(t *testing.T) {
	req := multipartRegister(t, true)
	require.NoError(t, req.ParseMultipartForm(1<<20))
	header := req.MultipartForm.File["avatar"][0]

	file := mediaFile(header)
	assert.Equal(t, "alice.png", file.Filename)
	assert.Equal(t, "application/octet-stream", file.ContentType)

	src, err := file.Open()
	require.NoError(t, err)
	defer src.Close()
	content, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}
