// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "warden/internal/delivery/context"
	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/repository"
	"warden/internal/domain/service"
	"warden/internal/infra/metrics"
	"warden/internal/usecase"
)

// dummyPassword is hashed once so that logins for unknown accounts still pay
// for a bcrypt comparison.
const dummyPassword = "warden-timing-equalizer"

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	principalRepo repository.PrincipalRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	mediaStore    service.MediaStore
	publisher     service.EventPublisher
	metrics       *metrics.SessionMetrics
	logger        *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	PrincipalRepo repository.PrincipalRepository
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	MediaStore    service.MediaStore
	Publisher     service.EventPublisher
	Metrics       *metrics.SessionMetrics `optional:"true"`
	Logger        *slog.Logger
}

// NewSessionService is the constructor for sessionService. It receives all dependencies as interfaces.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		principalRepo: params.PrincipalRepo,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		mediaStore:    params.MediaStore,
		publisher:     params.Publisher,
		metrics:       params.Metrics,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a principal after uploading its media. No record is created
// when any step fails.
func (srv *sessionService) Register(ctx context.Context, input *usecase.RegisterInput) (_ *entity.PublicPrincipal, err error) {
	defer func() { srv.observe(metrics.OpRegister, err) }()

	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	username := strings.ToLower(strings.TrimSpace(input.Username))

	if fullName == "" || email == "" || username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, errors.WithStack(domainerrors.ErrBadRequest)
	}

	if input.Avatar == nil {
		return nil, errors.WithStack(domainerrors.ErrAvatarRequired)
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("username", username))

		return nil, errors.WithStack(err)
	}

	existing, err := srv.principalRepo.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil && existing != nil:
		return nil, errors.Wrap(domainerrors.ErrPrincipalAlreadyExists, "username or email already taken")
	case err != nil && !errors.Is(err, repository.ErrPrincipalNotFound):
		srv.log(ctx).Error("Failed to look up existing principal", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to look up existing principal")
	}

	passwordHash, err := srv.hashPassword(input.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrPasswordTooLong) {
			return nil, err
		}
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	avatarURL, err := srv.upload(ctx, service.MediaFolderAvatars, input.Avatar)
	if err != nil {
		return nil, err
	}

	var coverImageURL string
	if input.CoverImage != nil {
		coverImageURL, err = srv.upload(ctx, service.MediaFolderCovers, input.CoverImage)
		if err != nil {
			return nil, err
		}
	}

	principal := &entity.Principal{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
		PasswordHash:  passwordHash,
	}
	if err := srv.principalRepo.Create(ctx, principal); err != nil {
		srv.log(ctx).Error("Failed to create principal", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create principal during registration")
	}

	srv.log(ctx).Info("Principal registered", slog.Any("principal_id", principal.ID))
	srv.publish(ctx, entity.EventPrincipalRegistered, principal.ID)

	return principal.Public(), nil
}

// Login verifies the password and starts a new session, replacing any earlier one.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (_ *usecase.LoginOutput, err error) {
	defer func() { srv.observe(metrics.OpLogin, err) }()

	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.TrimSpace(input.Email)
	if username == "" && email == "" {
		return nil, errors.Wrap(domainerrors.ErrBadRequest, "username or email is required")
	}
	if input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrBadRequest, "password is required")
	}

	principal, err := srv.principalRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			srv.checkPassword(input.Password, srv.fallbackHash())

			return nil, errors.Wrap(domainerrors.ErrPrincipalNotFound, "no principal for login")
		}
		srv.log(ctx).Error("Failed to find principal for login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find principal")
	}

	if !srv.checkPassword(input.Password, principal.PasswordHash) {
		srv.log(ctx).Warn("Invalid password on login", slog.Any("principal_id", principal.ID))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	pair, err := srv.tokenService.IssuePair(principal.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue tokens", slog.Any("principal_id", principal.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	refreshHash := srv.tokenService.HashToken(pair.RefreshToken)
	if err := srv.principalRepo.UpdateRefreshTokenHash(ctx, principal.ID, &refreshHash); err != nil {
		srv.log(ctx).Error("Failed to store refresh token", slog.Any("principal_id", principal.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	srv.log(ctx).Info("Session started", slog.Any("principal_id", principal.ID))
	srv.publish(ctx, entity.EventSessionStarted, principal.ID)

	return &usecase.LoginOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Principal:    principal.Public(),
	}, nil
}

// Logout clears the stored refresh token. Unknown principals and sessions that
// are already closed are not an error.
func (srv *sessionService) Logout(ctx context.Context, principalID uuid.UUID) (err error) {
	defer func() { srv.observe(metrics.OpLogout, err) }()

	if err := srv.principalRepo.UpdateRefreshTokenHash(ctx, principalID, nil); err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			srv.log(ctx).Debug("Logout for unknown principal", slog.Any("principal_id", principalID))

			return nil
		}
		srv.log(ctx).Error("Failed to clear refresh token", slog.Any("principal_id", principalID), slog.Any("error", err))

		return errors.Wrap(err, "failed to clear refresh token")
	}

	srv.log(ctx).Info("Session ended", slog.Any("principal_id", principalID))
	srv.publish(ctx, entity.EventSessionEnded, principalID)

	return nil
}

// Refresh exchanges the current refresh token for a new pair. Presenting a
// token that is no longer the stored one is rejected.
func (srv *sessionService) Refresh(ctx context.Context, input *usecase.RefreshInput) (_ *usecase.RefreshOutput, err error) {
	defer func() { srv.observe(metrics.OpRefresh, err) }()

	token := strings.TrimSpace(input.RefreshToken)
	if token == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "refresh token is required")
	}

	claims, err := srv.tokenService.Verify(token, entity.TokenRoleRefresh)
	if err != nil {
		return nil, err
	}

	principal, err := srv.principalRepo.FindByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, errors.WithStack(domainerrors.ErrRefreshTokenInvalid)
		}
		srv.log(ctx).Error("Failed to load principal for refresh", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find principal")
	}

	presentedHash := srv.tokenService.HashToken(token)
	if !principal.HasActiveSession() ||
		subtle.ConstantTimeCompare([]byte(presentedHash), []byte(*principal.RefreshTokenHash)) != 1 {
		srv.log(ctx).Warn("Refresh token reuse detected", slog.Any("principal_id", principal.ID))
		srv.publish(ctx, entity.EventRefreshReuseDetected, principal.ID)

		return nil, errors.WithStack(domainerrors.ErrRefreshTokenStale)
	}

	pair, err := srv.tokenService.IssuePair(principal.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue tokens", slog.Any("principal_id", principal.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	nextHash := srv.tokenService.HashToken(pair.RefreshToken)
	if err := srv.principalRepo.RotateRefreshTokenHash(ctx, principal.ID, presentedHash, nextHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenMismatch) {
			srv.log(ctx).Warn("Lost refresh rotation race", slog.Any("principal_id", principal.ID))

			return nil, errors.Wrap(domainerrors.ErrRefreshTokenStale, "refresh token rotated concurrently")
		}
		srv.log(ctx).Error("Failed to rotate refresh token", slog.Any("principal_id", principal.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("principal_id", principal.ID))
	srv.publish(ctx, entity.EventSessionRefreshed, principal.ID)

	return &usecase.RefreshOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (srv *sessionService) upload(ctx context.Context, folder service.MediaFolder, file *service.MediaFile) (string, error) {
	url, err := srv.mediaStore.Upload(ctx, folder, file)
	if err != nil {
		srv.log(ctx).Error("Media upload failed", slog.String("folder", string(folder)), slog.Any("error", err))

		return "", errors.Wrapf(domainerrors.ErrUploadFailed, "upload to %s: %v", folder, err)
	}
	if url == "" {
		return "", errors.Wrapf(domainerrors.ErrUploadFailed, "upload to %s returned no url", folder)
	}

	return url, nil
}

func (srv *sessionService) hashPassword(password string) (string, error) {
	start := time.Now()
	defer func() { srv.metrics.ObserveHash(time.Since(start)) }()

	return srv.hasher.Hash(password)
}

func (srv *sessionService) checkPassword(password, hash string) bool {
	start := time.Now()
	defer func() { srv.metrics.ObserveHash(time.Since(start)) }()

	return srv.hasher.Check(password, hash)
}

// fallbackHash returns a valid hash that no user-supplied password matches.
func (srv *sessionService) fallbackHash() string {
	srv.dummyOnce.Do(func() {
		hash, err := srv.hasher.Hash(dummyPassword)
		if err != nil {
			srv.logger.Warn("Failed to prepare dummy password hash", slog.Any("error", err))

			return
		}
		srv.dummyHash = hash
	})

	return srv.dummyHash
}

// publish emits a session event. A failed publish is logged and never fails the operation.
func (srv *sessionService) publish(ctx context.Context, eventType entity.SessionEventType, principalID uuid.UUID) {
	event := &entity.SessionEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        eventType,
		PrincipalID: principalID,
		OccurredAt:  time.Now().UTC(),
	}

	if err := srv.publisher.PublishSessionEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish session event",
			slog.String("type", string(eventType)),
			slog.Any("principal_id", principalID),
			slog.Any("error", err))
	}
}

func (srv *sessionService) observe(operation string, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = string(domainerrors.KindOf(err))
	}
	srv.metrics.ObserveOperation(operation, outcome)
}
