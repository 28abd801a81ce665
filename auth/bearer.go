package auth

import (
	"strings"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
)

// ParseBearer extracts the token from an Authorization header of the form
// "Bearer <token>". The scheme word itself is not checked.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return "", apperrors.ErrMalformed
	}
	if parts[1] == "" {
		return "", apperrors.ErrMissingToken
	}
	return parts[1], nil
}
