package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigRequired ErrorCode = "CONFIG_REQUIRED"

	// Database errors
	ErrCodeDatabaseQuery ErrorCode = "DATABASE_QUERY"

	// Capture and upload errors
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrCodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrCodeEmptyInput       ErrorCode = "EMPTY_INPUT"

	// Transcription backend errors
	ErrCodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	ErrCodeBackendError       ErrorCode = "BACKEND_ERROR"

	// Export errors
	ErrCodeMissingSegments   ErrorCode = "MISSING_SEGMENTS"
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	// Resource errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Validation errors
	ErrCodeValidation ErrorCode = "VALIDATION"

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// AppError represents a structured application error
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Cause    error                  `json:"-"`
	HTTPCode int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// GetHTTPCode returns the appropriate HTTP status code
func (e *AppError) GetHTTPCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}
	return getDefaultHTTPCode(e.Code)
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Newf creates a new AppError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with an AppError
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(cause error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(cause, code, fmt.Sprintf(format, args...))
}

func getDefaultHTTPCode(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodePermissionDenied:
		return http.StatusForbidden
	case ErrCodeInvalidFormat:
		return http.StatusUnsupportedMediaType
	case ErrCodeEmptyInput, ErrCodeUnsupportedFormat, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeMissingSegments:
		return http.StatusUnprocessableEntity
	case ErrCodeBackendUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeBackendError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors

// NotFound creates a not found error
func NotFound(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// PermissionDenied reports that the input device could not be acquired
func PermissionDenied(device string, cause error) *AppError {
	return Wrap(cause, ErrCodePermissionDenied, fmt.Sprintf("access to %s denied or unavailable", device)).
		WithDetail("device", device)
}

// InvalidFormat reports a payload whose content type is not audio
func InvalidFormat(contentType string) *AppError {
	return New(ErrCodeInvalidFormat, fmt.Sprintf("unsupported content type %q, expected audio/*", contentType)).
		WithDetail("content_type", contentType)
}

// EmptyInput reports an operation invoked without an active audio artifact
func EmptyInput() *AppError {
	return New(ErrCodeEmptyInput, "no audio to transcribe")
}

// BackendUnavailable reports a connection-level failure to reach a backend
func BackendUnavailable(backend string, cause error) *AppError {
	return Wrap(cause, ErrCodeBackendUnavailable, fmt.Sprintf("transcription backend '%s' is unreachable", backend)).
		WithDetail("backend", backend)
}

// BackendError reports a backend that was reached but rejected or failed the request
func BackendError(backend string, detail string) *AppError {
	return New(ErrCodeBackendError, fmt.Sprintf("transcription backend '%s' failed: %s", backend, detail)).
		WithDetail("backend", backend)
}

// BackendStatusError reports a non-success HTTP status from a backend
func BackendStatusError(backend string, status int, body string) *AppError {
	return BackendError(backend, fmt.Sprintf("http %d: %s", status, body)).
		WithDetail("status", status)
}

// MissingSegments reports a timestamped export requested without segments
func MissingSegments(format string) *AppError {
	return New(ErrCodeMissingSegments, fmt.Sprintf("%s export requires timestamp segments", format)).
		WithDetail("format", format)
}

// UnsupportedFormat reports an unrecognized export format key
func UnsupportedFormat(format string) *AppError {
	return New(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported export format: %s", format)).
		WithDetail("format", format)
}

// ValidationError creates a validation error
func ValidationError(field string, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// DatabaseError creates a database error
func DatabaseError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeDatabaseQuery, fmt.Sprintf("database %s failed", operation)).
		WithDetail("operation", operation)
}

// ConfigError creates a configuration error
func ConfigError(key string, reason string) *AppError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("configuration error for '%s': %s", key, reason)).
		WithDetail("key", key).
		WithDetail("reason", reason)
}

// As finds the first AppError in err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is checks if an error carries a specific code anywhere in its chain
func Is(err error, code ErrorCode) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode extracts the HTTP status code from an error
func GetHTTPCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
