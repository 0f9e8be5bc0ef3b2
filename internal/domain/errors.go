package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map them to stable user-facing messages
// without leaking infrastructure details.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrExpired            = errors.New("expired")
	ErrMismatch           = errors.New("code mismatch")
	ErrEmailDelivery      = errors.New("email delivery failed")
	ErrPersistence        = errors.New("persistence failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternal           = errors.New("internal error")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
