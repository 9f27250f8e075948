package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller has no usable identity.
var ErrUnauthorized = errors.New("not authenticated")

// ErrForbidden indicates that the caller's role is insufficient for the operation.
var ErrForbidden = errors.New("permission denied")

// ErrRefreshTokenExpired indicates that a stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInvalidCode indicates that no pending invitation matches the supplied code,
// or that a setup secret did not match.
var ErrInvalidCode = errors.New("invalid code")

// ErrCodeAlreadyAccepted indicates that the invitation code was redeemed earlier.
// Accepted codes are permanently inert.
var ErrCodeAlreadyAccepted = errors.New("invitation already accepted")

// ErrCodeRevoked indicates that the invitation was revoked by its issuer.
var ErrCodeRevoked = errors.New("invitation revoked")

// ErrModeSwitchInProgress indicates a reentrant store-mode switch attempt.
var ErrModeSwitchInProgress = errors.New("store mode switch already in progress")

// AppError carries an HTTP-ish status code alongside a message and the wrapped
// underlying error. Repositories use it to surface storage failures without
// leaking driver details to callers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError that matches ErrDuplicate via errors.Is.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates an AppError that matches ErrValidation via errors.Is.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
