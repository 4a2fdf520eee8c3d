package errors

import (
	"net/http"

	"housing/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
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
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Token-related errors. ErrTokenExpired is recoverable through the
	// refresh flow; everything else in this group forces re-authentication.
	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"Access token expired",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"Invalid access token",
		"",
	)

	// ErrSessionNotFound means the presented refresh token is missing from
	// the store or differs from the stored value (rotated or revoked).
	ErrSessionNotFound = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_NOT_FOUND",
		"No active session for this refresh token",
		"",
	)

	ErrPrincipalNotFound = NewBaseError(
		http.StatusUnauthorized,
		"PRINCIPAL_NOT_FOUND",
		"Account behind this session no longer exists",
		"",
	)

	// Credential-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Login id or password is incorrect",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Login id or email already registered",
		"",
	)

	// Email verification errors. A code mismatch is NOT in this list:
	// it is an ordinary negative result, not a failure.
	ErrCodeExpired = NewBaseError(
		http.StatusGone,
		"CODE_EXPIRED",
		"Verification code expired or never issued",
		"",
	)

	ErrEmailNotVerified = NewBaseError(
		http.StatusForbidden,
		"EMAIL_NOT_VERIFIED",
		"Email address has not completed verification",
		"",
	)

	// OAuth-related errors
	ErrUnsupportedProvider = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_PROVIDER",
		"Unsupported social login provider",
		"",
	)

	ErrMissingProviderID = NewBaseError(
		http.StatusBadRequest,
		"MISSING_PROVIDER_ID",
		"Provider did not supply a user identifier",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		"",
	)

	// Infrastructure errors. The keyed store being unreachable is a hard
	// failure for the request; it is never downgraded to "unauthenticated".
	ErrStoreUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORE_UNAVAILABLE",
		"Session store is unreachable",
		"",
	)

	ErrMailDeliveryFailed = NewBaseError(
		http.StatusInternalServerError,
		"MAIL_DELIVERY_FAILED",
		"Failed to send verification email",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

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
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
