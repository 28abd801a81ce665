// Package revocation records tokens that were invalidated before their
// natural expiry (logout) and answers whether a token is revoked.
package revocation

import (
	"context"
	"time"
)

// Record is a revoked token. Token is unique across the registry.
type Record struct {
	Token     string
	RevokedOn time.Time
	ExpiresAt time.Time // the token's own expiry, kept so stale records can be pruned
}

// Registry is the durable set of revoked tokens.
//
// Revoke returns apperrors.ErrAlreadyRevoked when the token is already present.
// Once revoked, IsRevoked stays true until Prune removes the record, and Prune
// only removes records whose ExpiresAt is before the given time.
type Registry interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}
