package auth

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/revocation"
	"github.com/jrsteele09/go-gym-server/token"
	"github.com/jrsteele09/go-gym-server/users"
)

// Guard resolves a bearer token to an identity and enforces roles.
//
// Every token failure surfaces as apperrors.ErrUnauthorized, wrapping the
// underlying cause (ErrMalformed, ErrExpired) so callers can still tell them
// apart. An absent token is apperrors.ErrMissingToken.
type Guard struct {
	tokens      *token.Service
	registry    revocation.Registry
	credentials *users.CredentialStore
}

func NewGuard(tokens *token.Service, registry revocation.Registry, credentials *users.CredentialStore) (*Guard, error) {
	if tokens == nil {
		return nil, errors.New("[NewGuard] token service is required")
	}
	if registry == nil {
		return nil, errors.New("[NewGuard] revocation registry is required")
	}
	if credentials == nil {
		return nil, errors.New("[NewGuard] credential store is required")
	}
	return &Guard{tokens: tokens, registry: registry, credentials: credentials}, nil
}

// Authenticate validates the bearer header and returns the identity it names.
func (g *Guard) Authenticate(ctx context.Context, header string) (*users.User, error) {
	raw, err := ParseBearer(header)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrMissingToken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	return g.AuthenticateToken(ctx, raw)
}

// AuthenticateToken is Authenticate for a token already taken from its header.
func (g *Guard) AuthenticateToken(ctx context.Context, raw string) (*users.User, error) {
	claims, err := g.tokens.Validate(raw, g.tokens.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}

	revoked, err := g.registry.IsRevoked(ctx, raw)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Guard Authenticate] revocation lookup")
	}
	if revoked {
		return nil, fmt.Errorf("%w: token has been revoked", apperrors.ErrUnauthorized)
	}

	user, err := g.credentials.Lookup(ctx, claims.SSN)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: identity no longer exists", apperrors.ErrUnauthorized)
		}
		return nil, apperrors.Wrapf(err, "[Guard Authenticate] lookup %s", claims.SSN)
	}
	return user, nil
}

// RequireAdmin checks the already resolved identity; it never looks at the token again.
func (g *Guard) RequireAdmin(user *users.User) error {
	if user == nil || !user.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

// WithIdentity authenticates header and runs fn with the resolved identity.
func (g *Guard) WithIdentity(ctx context.Context, header string, fn func(*users.User) error) error {
	user, err := g.Authenticate(ctx, header)
	if err != nil {
		return err
	}
	return fn(user)
}

// WithAdmin is WithIdentity restricted to admins.
func (g *Guard) WithAdmin(ctx context.Context, header string, fn func(*users.User) error) error {
	return g.WithIdentity(ctx, header, func(user *users.User) error {
		if err := g.RequireAdmin(user); err != nil {
			return err
		}
		return fn(user)
	})
}
