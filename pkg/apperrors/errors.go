package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error carried through services up to handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New is the base constructor.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// MarshalJSON hides Err and HTTPCode from the wire format.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Shared (non-domain) factories ---

// InternalError wraps an unknown system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError builds a validation error with per-field details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

func NewNotFoundError(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

func NewConflictError(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusConflict)
}

// NewExternalServiceError marks a failure of an upstream collaborator
// (assessment backend, payment gateway, object storage).
func NewExternalServiceError(domain, message string, err error) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusInternalServerError)
}
