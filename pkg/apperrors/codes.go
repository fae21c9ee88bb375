package apperrors

type ErrorCode string

// Error codes grouped by concern.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Resources
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Lifecycle / state machine
	CodeInvalidState      ErrorCode = "INVALID_STATE"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	// Business logic
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"

	// System
	CodeInternalError       ErrorCode = "INTERNAL_ERROR"
	CodeStorageError        ErrorCode = "STORAGE_ERROR"
	CodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
)
