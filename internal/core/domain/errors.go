package domain

import "errors"

// Common domain errors
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidRole  = errors.New("invalid role")
)

// Clinic errors
var (
	ErrPetNotOwned       = errors.New("pet not valid for this user")
	ErrInvalidTransition = errors.New("invalid appointment status transition")
)

// ValidationError carries a client-facing message and matches ErrValidation
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
