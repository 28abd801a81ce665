package postgres

import (
	"context"
	"database/sql"
	"time"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/revocation"
)

var _ revocation.Registry = (*RevocationRegistry)(nil)

// RevocationRegistry is the durable revocation store. Uniqueness of a
// revoked token is enforced by the table's unique constraint, so concurrent
// logouts of the same token resolve to one success.
type RevocationRegistry struct {
	db      *sql.DB
	nowFunc func() time.Time
}

type RegistryOption func(*RevocationRegistry)

func WithNowFunc(now func() time.Time) RegistryOption {
	return func(r *RevocationRegistry) {
		r.nowFunc = now
	}
}

func NewRevocationRegistry(db *sql.DB, options ...RegistryOption) *RevocationRegistry {
	r := &RevocationRegistry{db: db, nowFunc: time.Now}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *RevocationRegistry) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO revoked_tokens (token, revoked_on, expires_at) VALUES ($1, $2, $3)`,
		token, r.nowFunc().UTC(), expiresAt.UTC(),
	)
	if err != nil {
		if apperrors.Is(writeErr(err), apperrors.ErrAlreadyExists) {
			return apperrors.ErrAlreadyRevoked
		}
		return apperrors.Wrapf(err, "[RevocationRegistry Revoke]")
	}
	return nil
}

func (r *RevocationRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	var revoked bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1)`, token,
	).Scan(&revoked)
	if err != nil {
		return false, apperrors.Wrapf(err, "[RevocationRegistry IsRevoked]")
	}
	return revoked, nil
}

func (r *RevocationRegistry) Prune(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, before.UTC())
	if err != nil {
		return 0, apperrors.Wrapf(err, "[RevocationRegistry Prune]")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrapf(err, "[RevocationRegistry Prune] rows affected")
	}
	return n, nil
}
