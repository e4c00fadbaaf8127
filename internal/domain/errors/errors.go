package errors

import (
	"net/http"

	"warden/internal/errors"
)

// Kind classifies a failure independently of its transport mapping.
type Kind string

const (
	KindBadRequest   Kind = "BadRequest"
	KindConflict     Kind = "Conflict"
	KindNotFound     Kind = "NotFound"
	KindUnauthorized Kind = "Unauthorized"
	KindExpiredToken Kind = "ExpiredToken"
	KindUploadFailed Kind = "UploadFailed"
	KindInternal     Kind = "Internal"
)

// HTTPCode returns the status code a kind is rendered with.
func (k Kind) HTTPCode() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized, KindExpiredToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Failure classification
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same error code, so copies made by
// WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the failure classification
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.kind.HTTPCode()
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Principal-related errors
	ErrPrincipalNotFound = NewBaseError(
		KindNotFound,
		"PRINCIPAL_NOT_FOUND",
		"principal not found",
		"",
	)

	ErrPrincipalAlreadyExists = NewBaseError(
		KindConflict,
		"PRINCIPAL_ALREADY_EXISTS",
		"username or email already registered",
		"",
	)

	ErrPrincipalCreationFailed = NewBaseError(
		KindInternal,
		"PRINCIPAL_CREATION_FAILED",
		"failed to create principal",
		"",
	)

	// Authentication-related errors
	ErrUnauthorized = NewBaseError(
		KindUnauthorized,
		"UNAUTHORIZED",
		"unauthorized request",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		KindUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid user credentials",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		KindUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"invalid refresh token",
		"",
	)

	ErrRefreshTokenStale = NewBaseError(
		KindUnauthorized,
		"REFRESH_TOKEN_STALE",
		"refresh token is expired or used",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		KindUnauthorized,
		"TOKEN_INVALID",
		"invalid token",
		"",
	)

	ErrTokenWrongRole = NewBaseError(
		KindUnauthorized,
		"TOKEN_WRONG_ROLE",
		"token is not valid for this operation",
		"",
	)

	ErrTokenExpired = NewBaseError(
		KindExpiredToken,
		"TOKEN_EXPIRED",
		"token has expired",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindInternal,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	ErrPasswordTooLong = NewBaseError(
		KindBadRequest,
		"PASSWORD_TOO_LONG",
		"password exceeds the maximum supported length",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		KindBadRequest,
		"PASSWORD_STRENGTH",
		"password does not meet strength requirements",
		"",
	)

	ErrTokenIssueFailed = NewBaseError(
		KindInternal,
		"TOKEN_ISSUE_FAILED",
		"failed to issue session tokens",
		"",
	)

	// Media-related errors
	ErrAvatarRequired = NewBaseError(
		KindBadRequest,
		"AVATAR_REQUIRED",
		"avatar file is required",
		"",
	)

	ErrUploadFailed = NewBaseError(
		KindUploadFailed,
		"UPLOAD_FAILED",
		"failed to upload media",
		"",
	)

	// Validation-related errors
	ErrBadRequest = NewBaseError(
		KindBadRequest,
		"BAD_REQUEST",
		"all fields are required",
		"",
	)

	ErrValidationFailed = NewBaseError(
		KindBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindInternal,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		KindNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)
)

// KindOf returns the kind of the first AppError in err's chain, or
// KindInternal when none is present.
func KindOf(err error) Kind {
	if appErr, ok := errors.AsType[AppError](err); ok {
		return appErr.Kind()
	}

	return KindInternal
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error for errors.Is checks.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the failure classification
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
