package fakerevocationrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/revocation"
)

var _ revocation.Registry = (*FakeRegistry)(nil)

// FakeRegistry is a simple in-memory implementation
type FakeRegistry struct {
	revoked map[string]revocation.Record
	nowFunc func() time.Time
	mu      sync.RWMutex
}

type Option func(*FakeRegistry)

func WithNowFunc(now func() time.Time) Option {
	return func(r *FakeRegistry) {
		r.nowFunc = now
	}
}

func NewFakeRegistry(options ...Option) *FakeRegistry {
	r := &FakeRegistry{
		revoked: make(map[string]revocation.Record),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *FakeRegistry) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.revoked[token]; exists {
		return apperrors.ErrAlreadyRevoked
	}
	r.revoked[token] = revocation.Record{
		Token:     token,
		RevokedOn: r.nowFunc(),
		ExpiresAt: expiresAt,
	}
	return nil
}

func (r *FakeRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.revoked[token]
	return exists, nil
}

func (r *FakeRegistry) Prune(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for token, rec := range r.revoked {
		if rec.ExpiresAt.Before(before) {
			delete(r.revoked, token)
			removed++
		}
	}
	return removed, nil
}

// Records returns a snapshot ordered by revocation time.
func (r *FakeRegistry) Records() []revocation.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]revocation.Record, 0, len(r.revoked))
	for _, rec := range r.revoked {
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].RevokedOn.Before(list[j].RevokedOn)
	})
	return list
}
