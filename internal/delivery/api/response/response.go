// Package response renders the JSON envelopes returned by the API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	deliverycontext "warden/internal/delivery/context"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/errors"
)

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any, message ...string) error {
	resp := domainerrors.SuccessResponse{
		Data: data,
		Meta: &domainerrors.MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}

	return c.JSON(statusCode, resp)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	return write(c, statusCode, "", errorCode, message, details)
}

// AppError renders the public view of err. Details are only kept for client
// errors that are not about authentication.
func AppError(c echo.Context, err domainerrors.AppError) error {
	info := domainerrors.PublicInfo(err)

	return write(c, err.HTTPCode(), info.Kind, info.Code, info.Message, info.Details)
}

func write(c echo.Context, statusCode int, kind domainerrors.Kind, errorCode, message string, details any) error {
	// Details should not be included for 5xx errors or authentication errors
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized {
		details = nil
	}

	return c.JSON(statusCode, domainerrors.ErrorResponse{
		Error: &domainerrors.ErrorInfo{
			Kind:    kind,
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &domainerrors.MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// BadRequestWithDetails returns a 400 error with details
func BadRequestWithDetails(c echo.Context, errorCode string, message string, details any) error {
	return write(c, http.StatusBadRequest, domainerrors.KindBadRequest, errorCode, message, details)
}

// BindingError returns a binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return write(c, http.StatusBadRequest, domainerrors.KindBadRequest, errorCode, message, nil)
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return write(c, http.StatusUnauthorized, domainerrors.KindUnauthorized, errorCode, message, nil)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return write(c, http.StatusInternalServerError, domainerrors.KindInternal, errorCode, message, nil)
}

// HandleAppError handles application errors, converting domain errors to appropriate HTTP responses
func HandleAppError(c echo.Context, err error) error {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return AppError(c, appErr)
	}

	return errors.WithStack(err)
}
