package errors

import (
	"errors"
	"fmt"
)

// Common error types for the gym server
var (
	// Token errors
	ErrMissingToken = errors.New("token is missing")
	ErrMalformed    = errors.New("token is malformed")
	ErrExpired      = errors.New("token has expired")

	// Authentication / authorization errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("admin access required")
	ErrBadCredentials = errors.New("invalid credentials")

	// Registry / registration errors
	ErrAlreadyRevoked        = errors.New("token is already revoked")
	ErrDuplicateRegistration = errors.New("user already exists")

	// Storage errors
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInUse            = errors.New("record is still referenced")
	ErrValidation       = errors.New("validation failed")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Validationf returns an ErrValidation carrying a formatted reason.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
