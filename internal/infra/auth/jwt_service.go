package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"warden/config"
	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/service"
	"warden/internal/errors"
)

// tokenClaims is the JWT payload. Typ binds the token to a role in addition to
// the role-specific signing key.
type tokenClaims struct {
	Type entity.TokenRole `json:"typ"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secrets   map[entity.TokenRole][]byte
	lifetimes map[entity.TokenRole]time.Duration
	now       func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg, time.Now)
}

// NewJWTServiceWithClock builds a token service that reads time from now.
func NewJWTServiceWithClock(cfg *config.Config, now func() time.Time) (service.TokenService, error) {
	return newJWTService(cfg, now)
}

func newJWTService(cfg *config.Config, now func() time.Time) (*jwtService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.Token.AccessTTL <= 0 || cfg.Token.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &jwtService{
		secrets: map[entity.TokenRole][]byte{
			entity.TokenRoleAccess:  []byte(cfg.SecretKey.Access),
			entity.TokenRoleRefresh: []byte(cfg.SecretKey.Refresh),
		},
		lifetimes: map[entity.TokenRole]time.Duration{
			entity.TokenRoleAccess:  cfg.Token.AccessTTL,
			entity.TokenRoleRefresh: cfg.Token.RefreshTTL,
		},
		now: now,
	}, nil
}

// Issue signs a token for principalID with the key and lifetime of role.
func (s *jwtService) Issue(principalID uuid.UUID, role entity.TokenRole) (string, error) {
	if !role.Valid() {
		return "", errors.Errorf("unknown token role %q", role)
	}

	issuedAt := s.now()
	claims := tokenClaims{
		Type: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.lifetimes[role])),
			// Random ID so two tokens minted in the same second differ.
			ID: uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secrets[role])
	if err != nil {
		return "", errors.Wrapf(err, "sign %s token", role)
	}

	return signed, nil
}

// IssuePair mints an access token and a refresh token. Either both are
// returned or neither is.
func (s *jwtService) IssuePair(principalID uuid.UUID) (*entity.TokenPair, error) {
	accessToken, err := s.Issue(principalID, entity.TokenRoleAccess)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.Issue(principalID, entity.TokenRoleRefresh)
	if err != nil {
		return nil, err
	}

	return &entity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Verify checks token against the key of role. The signature is checked before
// any claim, so an expired token is only reported as expired when it was
// really issued for role.
func (s *jwtService) Verify(token string, role entity.TokenRole) (*service.Claims, error) {
	if !role.Valid() {
		return nil, errors.Wrapf(domainerrors.ErrTokenInvalid, "unknown token role %q", role)
	}

	claims, err := s.parse(token, role)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, errors.Wrap(domainerrors.ErrTokenExpired, err.Error())
		case errors.Is(err, jwt.ErrTokenSignatureInvalid) && s.signedFor(token, role.Other()):
			return nil, errors.Wrapf(domainerrors.ErrTokenWrongRole, "token was issued for %s", role.Other())
		default:
			return nil, errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
		}
	}

	if claims.Type != role {
		return nil, errors.Wrapf(domainerrors.ErrTokenWrongRole, "token type %q", claims.Type)
	}

	principalID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "malformed subject")
	}

	return &service.Claims{
		PrincipalID: principalID,
		Role:        claims.Type,
		TokenID:     claims.ID,
		IssuedAt:    claims.IssuedAt.Time,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// HashToken returns the hex SHA-256 digest of token.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// Lifetime returns the configured lifetime of role.
func (s *jwtService) Lifetime(role entity.TokenRole) time.Duration {
	return s.lifetimes[role]
}

func (s *jwtService) parse(token string, role entity.TokenRole, opts ...jwt.ParserOption) (*tokenClaims, error) {
	claims := &tokenClaims{}
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secrets[role], nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// signedFor reports whether token carries a valid signature for role,
// regardless of its claims.
func (s *jwtService) signedFor(token string, role entity.TokenRole) bool {
	_, err := s.parse(token, role, jwt.WithoutClaimsValidation())

	return err == nil
}
