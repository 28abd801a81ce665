package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// CredentialStore verifies passwords against the stored bcrypt hashes.
type CredentialStore struct {
	repo      UserRepo
	cost      int
	dummyHash string // compared against when the user is unknown
}

type CredentialOption func(*CredentialStore)

// WithCost sets the bcrypt cost used for new hashes.
func WithCost(cost int) CredentialOption {
	return func(c *CredentialStore) {
		c.cost = cost
	}
}

func NewCredentialStore(repo UserRepo, options ...CredentialOption) (*CredentialStore, error) {
	if repo == nil {
		return nil, fmt.Errorf("[NewCredentialStore] user repo is required")
	}
	c := &CredentialStore{
		repo: repo,
		cost: bcrypt.DefaultCost,
	}
	for _, opt := range options {
		opt(c)
	}

	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("[NewCredentialStore] rand.Read: %w", err)
	}
	hash, err := HashPasswordWithCost(hex.EncodeToString(secret), c.cost)
	if err != nil {
		return nil, fmt.Errorf("[NewCredentialStore] dummy hash: %w", err)
	}
	c.dummyHash = hash
	return c, nil
}

// Verify returns the identity for ssn when password matches its hash.
// Unknown users still pay for one bcrypt comparison.
func (c *CredentialStore) Verify(ctx context.Context, ssn, password string) (*User, error) {
	user, err := c.repo.Get(ctx, ssn)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			CheckPasswordHash(password, c.dummyHash)
		}
		return nil, apperrors.Wrapf(err, "[CredentialStore Verify] %s", ssn)
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrBadCredentials
	}
	return user.Redacted(), nil
}

// Lookup resolves an identity without checking a password.
func (c *CredentialStore) Lookup(ctx context.Context, ssn string) (*User, error) {
	user, err := c.repo.Get(ctx, ssn)
	if err != nil {
		return nil, err
	}
	return user.Redacted(), nil
}

// Hash produces a salted hash at the store's cost. Empty passwords and
// passwords bcrypt cannot take are validation errors.
func (c *CredentialStore) Hash(password string) (string, error) {
	if password == "" {
		return "", apperrors.Validationf("password must not be empty")
	}
	if len(password) > MaxPasswordBytes {
		return "", apperrors.Validationf("password is limited to %d bytes", MaxPasswordBytes)
	}
	hash, err := HashPasswordWithCost(password, c.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		return "", fmt.Errorf("[CredentialStore Hash] %w", err)
	}
	return hash, nil
}

// Save writes user's profile. When password is set its hash goes out in the
// same write; otherwise the stored hash is kept. Nothing is written when the
// password is rejected.
func (c *CredentialStore) Save(ctx context.Context, user *User, password *string) error {
	hash := ""
	if password != nil {
		var err error
		if hash, err = c.Hash(*password); err != nil {
			return err
		}
	}
	user.PasswordHash = hash
	if err := c.repo.Update(ctx, user); err != nil {
		return apperrors.Wrapf(err, "[CredentialStore Save] %s", user.SSN)
	}
	user.PasswordHash = ""
	return nil
}

// SetPassword replaces the stored hash for ssn, leaving the profile as is.
func (c *CredentialStore) SetPassword(ctx context.Context, ssn, password string) error {
	user, err := c.repo.Get(ctx, ssn)
	if err != nil {
		return apperrors.Wrapf(err, "[CredentialStore SetPassword] %s", ssn)
	}
	return c.Save(ctx, user, &password)
}
