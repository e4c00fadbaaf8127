// Package handler contains the Pub/Sub push handler of the audit worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"

	"warden/config"
	deliverycontext "warden/internal/delivery/context"
	"warden/internal/domain/constants"
	"warden/internal/domain/entity"
	"warden/internal/errors"
	"warden/internal/infra/metrics"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// tokenValidator checks a Google-signed OIDC token for audience.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler records session events delivered by Pub/Sub push
type PushHandler struct {
	verifyPushAuth bool
	validate       tokenValidator
	metrics        *metrics.SessionMetrics
	logger         *slog.Logger
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config  *config.Config
	Metrics *metrics.SessionMetrics `optional:"true"`
	Logger  *slog.Logger
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only Google push requests carry an OIDC token; local pushes are trusted in development
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		validate:       idtoken.Validate,
		metrics:        params.Metrics,
		logger:         params.Logger,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Malformed envelopes are
// answered with 400 so Pub/Sub retries them; unknown event types are acknowledged.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event entity.SessionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse session event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Priority: message attributes > event field > existing context
	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	h.record(ctx, reqLogger, &pushMsg, &event)

	return c.NoContent(http.StatusOK)
}

// record writes the audit line for event. Reuse of a rotated refresh token is
// reported at warn level.
func (h *PushHandler) record(ctx context.Context, logger *slog.Logger, pushMsg *PubSubMessage, event *entity.SessionEvent) {
	level := slog.LevelInfo
	switch event.Type {
	case entity.EventRefreshReuseDetected:
		level = slog.LevelWarn
	case entity.EventPrincipalRegistered, entity.EventSessionStarted, entity.EventSessionEnded, entity.EventSessionRefreshed:
	default:
		logger.WarnContext(ctx, "[Worker] Dropping unknown session event", slog.String("type", string(event.Type)))

		return
	}

	h.metrics.ObserveEvent(string(event.Type))
	logger.LogAttrs(ctx, level, "[Worker] Session event",
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.String("type", string(event.Type)),
		slog.String("principal_id", event.PrincipalID.String()),
		slog.Time("occurred_at", event.OccurredAt),
	)
}

// extractRequestID extracts request_id from message attributes, event, or the request context
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *entity.SessionEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	return deliverycontext.GetRequestIDFromContext(ctx)
}

// verifyPubSubToken verifies the OIDC token Google attaches to push requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	token, ok := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !ok || token == "" {
		return errors.New("missing bearer token")
	}

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := scheme + "://" + req.Host + req.URL.Path

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
