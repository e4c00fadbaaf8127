package errors

// ErrorInfo is the error half of the response envelope.
type ErrorInfo struct {
	Kind    Kind   `json:"kind,omitempty"`    // Failure classification, e.g. "Conflict"
	Code    string `json:"code"`              // Machine-readable error code, e.g. "PRINCIPAL_ALREADY_EXISTS"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Client-error details, never set for 401 or 5xx
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data    any       `json:"data"`
	Message string    `json:"message,omitempty"`
	Meta    *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// PublicInfo returns the code and message a client may see for err. Every
// Unauthorized failure is reported as ErrUnauthorized so the response does not
// tell which credential check rejected the request.
func PublicInfo(err AppError) *ErrorInfo {
	if err.Kind() == KindUnauthorized {
		return &ErrorInfo{
			Kind:    KindUnauthorized,
			Code:    ErrUnauthorized.ErrorCode(),
			Message: ErrUnauthorized.Message(),
		}
	}

	info := &ErrorInfo{
		Kind:    err.Kind(),
		Code:    err.ErrorCode(),
		Message: err.Message(),
	}
	if details := err.Details(); details != "" {
		info.Details = details
	}

	return info
}
