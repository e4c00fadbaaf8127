package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/config"
	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/errors"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Token: config.TokenConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func newTestJWTService(t *testing.T) (*jwtService, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := newJWTService(newTestConfig(), clock.Now)
	require.NoError(t, err)

	return svc, clock
}

func TestNewJWTService_RejectsBadSecrets(t *testing.T) {
	cfg := newTestConfig()
	cfg.SecretKey.Refresh = ""
	_, err := NewJWTService(cfg)
	assert.EqualError(t, err, "jwt secrets must be provided")

	cfg = newTestConfig()
	cfg.SecretKey.Refresh = cfg.SecretKey.Access
	_, err = NewJWTService(cfg)
	assert.EqualError(t, err, "access and refresh secrets must differ")

	cfg = newTestConfig()
	cfg.Token.AccessTTL = 0
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, clock := newTestJWTService(t)
	principalID := uuid.New()

	for _, role := range []entity.TokenRole{entity.TokenRoleAccess, entity.TokenRoleRefresh} {
		t.Run(string(role), func(t *testing.T) {
			token, err := svc.Issue(principalID, role)
			require.NoError(t, err)

			claims, err := svc.Verify(token, role)
			require.NoError(t, err)
			assert.Equal(t, principalID, claims.PrincipalID)
			assert.Equal(t, role, claims.Role)
			assert.NotEmpty(t, claims.TokenID)
			assert.True(t, claims.IssuedAt.Equal(clock.Now()))
			assert.True(t, claims.ExpiresAt.Equal(clock.Now().Add(svc.Lifetime(role))))
		})
	}
}

func TestJWTService_ExpiryBoundary(t *testing.T) {
	svc, clock := newTestJWTService(t)
	principalID := uuid.New()

	token, err := svc.Issue(principalID, entity.TokenRoleAccess)
	require.NoError(t, err)

	clock.Advance(15*time.Minute - time.Second)
	_, err = svc.Verify(token, entity.TokenRoleAccess)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = svc.Verify(token, entity.TokenRoleAccess)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
	assert.Equal(t, domainerrors.KindExpiredToken, domainerrors.KindOf(err))
}

func TestJWTService_WrongRole(t *testing.T) {
	svc, _ := newTestJWTService(t)
	principalID := uuid.New()

	pair, err := svc.IssuePair(principalID)
	require.NoError(t, err)

	_, err = svc.Verify(pair.RefreshToken, entity.TokenRoleAccess)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenWrongRole))

	_, err = svc.Verify(pair.AccessToken, entity.TokenRoleRefresh)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenWrongRole))
}

func TestJWTService_TypeClaimMismatch(t *testing.T) {
	svc, clock := newTestJWTService(t)

	// Signed with the access key but labelled as a refresh token.
	claims := tokenClaims{
		Type: entity.TokenRoleRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(clock.Now()),
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secrets[entity.TokenRoleAccess])
	require.NoError(t, err)

	_, err = svc.Verify(token, entity.TokenRoleAccess)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenWrongRole))
}

func TestJWTService_InvalidTokens(t *testing.T) {
	svc, clock := newTestJWTService(t)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Type: entity.TokenRoleAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("someone-elses-key"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		Type: entity.TokenRoleAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Minute)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Type: entity.TokenRoleAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Minute)),
		},
	}).SignedString(svc.secrets[entity.TokenRoleAccess])
	require.NoError(t, err)

	tests := map[string]string{
		"empty":         "",
		"garbled":       "not.a.jwt",
		"foreign key":   foreign,
		"unsigned":      unsigned,
		"bad subject":   badSubject,
		"truncated":     badSubject[:len(badSubject)-4],
		"extra segment": strings.Join([]string{badSubject, "x"}, "."),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token, entity.TokenRoleAccess)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
		})
	}
}

func TestJWTService_ExpiredTokenOfOtherRoleIsNotReportedExpired(t *testing.T) {
	svc, clock := newTestJWTService(t)

	refresh, err := svc.Issue(uuid.New(), entity.TokenRoleRefresh)
	require.NoError(t, err)

	clock.Advance(8 * 24 * time.Hour)

	_, err = svc.Verify(refresh, entity.TokenRoleAccess)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenWrongRole))
	assert.False(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTService_TokensIssuedInSameSecondDiffer(t *testing.T) {
	svc, _ := newTestJWTService(t)
	principalID := uuid.New()

	first, err := svc.IssuePair(principalID)
	require.NoError(t, err)
	second, err := svc.IssuePair(principalID)
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, svc.HashToken(first.RefreshToken), svc.HashToken(second.RefreshToken))
}

func TestJWTService_HashToken(t *testing.T) {
	svc, _ := newTestJWTService(t)

	hash := svc.HashToken("token")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, svc.HashToken("token"))
	assert.NotEqual(t, hash, svc.HashToken("token2"))
}
