package users

import (
	"regexp"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-\(\)]{6,20}$`)

// Phone is a contact number owned by a user. The number itself is the key.
type Phone struct {
	Number  string `json:"phone"`
	UserSSN string `json:"userSSN"`
}

func ValidatePhone(number string) error {
	if !phonePattern.MatchString(number) {
		return apperrors.Validationf("invalid phone number %q", number)
	}
	return nil
}
