package apperrors

// ErrorCode identifies a class of application error.
type ErrorCode string

// Cross-cutting, non-domain error codes.
const (
	// System and unknown failures
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business-logic codes (used by the factories)
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Authentication and authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Payment
	CodeInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	CodePaymentFailed    ErrorCode = "PAYMENT_FAILED"
)
