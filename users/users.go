package users

import (
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// Role is the access level of an identity. It is derived from the membership
// sign at the storage boundary and never compared as a raw string elsewhere.
type Role string

const (
	RoleMember     Role = "member"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Sentinel membership signs. Every other sign is a paying member tier.
const (
	AdminMembership      = "ad"
	InstructorMembership = "in"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// RoleFromMembership maps a membership sign onto the closed role set.
func RoleFromMembership(sign string) Role {
	switch sign {
	case AdminMembership:
		return RoleAdmin
	case InstructorMembership:
		return RoleInstructor
	default:
		return RoleMember
	}
}

// IsSentinelMembership reports whether sign grants more than a member tier.
func IsSentinelMembership(sign string) bool {
	return RoleFromMembership(sign) != RoleMember
}

type User struct {
	SSN            string `json:"SSN"`                      // Government style identifier, primary key
	FirstName      string `json:"firstName"`                // First name of the user
	LastName       string `json:"lastName"`                 // Last name of the user
	PasswordHash   string `json:"-"`                        // bcrypt hash - never serialize
	MembershipType string `json:"membershipType,omitempty"` // Membership sign, empty when none
}

// Update is an admin edit of a user. Nil fields are left unchanged.
type Update struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	MembershipType *string `json:"membershipType"`
	Password       *string `json:"password"`
}

const MaxNameLength = 20

// ValidateName checks a required first or last name.
func ValidateName(field, value string) error {
	if strings.TrimSpace(value) == "" || len(value) > MaxNameLength {
		return apperrors.Validationf("%s is required and limited to %d characters", field, MaxNameLength)
	}
	return nil
}

func (u *User) Role() Role {
	return RoleFromMembership(u.MembershipType)
}

func (u *User) IsAdmin() bool {
	return u.Role() == RoleAdmin
}

// Redacted returns a copy without the password hash.
func (u *User) Redacted() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, bcrypt.DefaultCost)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash compares in constant time with respect to the password.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
