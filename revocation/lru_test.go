package revocation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/revocation"
	fakerevocationrepo "github.com/jrsteele09/go-gym-server/revocation/repofake"
	"github.com/stretchr/testify/require"
)

// countingRegistry counts lookups that reach the durable registry.
type countingRegistry struct {
	revocation.Registry
	lookups int
	failing bool
}

func (c *countingRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	c.lookups++
	if c.failing {
		return false, errors.New("store down")
	}
	return c.Registry.IsRevoked(ctx, token)
}

func TestLRUCache(t *testing.T) {
	ctx := context.Background()
	durable := &countingRegistry{Registry: fakerevocationrepo.NewFakeRegistry()}
	cache := revocation.NewLRUCache(durable, 16, time.Minute)
	exp := time.Now().Add(time.Hour)

	t.Run("negative answers are not cached", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			revoked, err := cache.IsRevoked(ctx, "live")
			require.NoError(t, err)
			require.False(t, revoked)
		}
		require.Equal(t, 2, durable.lookups)
	})

	t.Run("revoke populates the cache", func(t *testing.T) {
		require.NoError(t, cache.Revoke(ctx, "gone", exp))
		before := durable.lookups

		revoked, err := cache.IsRevoked(ctx, "gone")
		require.NoError(t, err)
		require.True(t, revoked)
		require.Equal(t, before, durable.lookups)
	})

	t.Run("double revoke is reported", func(t *testing.T) {
		require.ErrorIs(t, cache.Revoke(ctx, "gone", exp), apperrors.ErrAlreadyRevoked)
	})

	t.Run("revoked elsewhere is learned", func(t *testing.T) {
		require.NoError(t, durable.Revoke(ctx, "other-instance", exp))
		revoked, err := cache.IsRevoked(ctx, "other-instance")
		require.NoError(t, err)
		require.True(t, revoked)
		require.Equal(t, 2, cache.Len())
	})

	t.Run("cached hits survive a store outage", func(t *testing.T) {
		durable.failing = true
		defer func() { durable.failing = false }()

		revoked, err := cache.IsRevoked(ctx, "gone")
		require.NoError(t, err)
		require.True(t, revoked)

		_, err = cache.IsRevoked(ctx, "unknown")
		require.Error(t, err)
	})

	t.Run("prune clears the cache", func(t *testing.T) {
		n, err := cache.Prune(ctx, exp.Add(time.Second))
		require.NoError(t, err)
		require.EqualValues(t, 2, n)
		require.Zero(t, cache.Len())
	})
}
