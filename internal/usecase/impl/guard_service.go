package impl

import (
	"context"
	"log/slog"
	"strings"

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

// guardService implements the GuardUsecase interface.
type guardService struct {
	principalRepo repository.PrincipalRepository
	tokenService  service.TokenService
	metrics       *metrics.SessionMetrics
	logger        *slog.Logger
}

// GuardServiceParams holds dependencies for GuardService, injected by Fx.
type GuardServiceParams struct {
	fx.In

	PrincipalRepo repository.PrincipalRepository
	TokenService  service.TokenService
	Metrics       *metrics.SessionMetrics `optional:"true"`
	Logger        *slog.Logger
}

// NewGuardService is the constructor for guardService.
func NewGuardService(params GuardServiceParams) usecase.GuardUsecase {
	return &guardService{
		principalRepo: params.PrincipalRepo,
		tokenService:  params.TokenService,
		metrics:       params.Metrics,
		logger:        params.Logger,
	}
}

// Authenticate verifies an access token and loads the public principal it names.
func (srv *guardService) Authenticate(ctx context.Context, accessToken string) (_ *entity.PublicPrincipal, err error) {
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = string(domainerrors.KindOf(err))
		}
		srv.metrics.ObserveOperation(metrics.OpGuard, outcome)
	}()

	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "access token is missing")
	}

	claims, err := srv.tokenService.Verify(accessToken, entity.TokenRoleAccess)
	if err != nil {
		logger.Debug("Access token rejected", slog.String("kind", string(domainerrors.KindOf(err))), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "invalid access token")
	}

	principal, err := srv.principalRepo.FindPublicByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			logger.Debug("Access token names unknown principal", slog.Any("principal_id", claims.PrincipalID))

			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "invalid access token")
		}
		logger.Error("Failed to load principal for access token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load principal")
	}

	return principal, nil
}
