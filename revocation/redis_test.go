package revocation_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/revocation"
	fakerevocationrepo "github.com/jrsteele09/go-gym-server/revocation/repofake"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*revocation.RedisCache, *miniredis.Miniredis, *countingRegistry) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := revocation.NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	durable := &countingRegistry{Registry: fakerevocationrepo.NewFakeRegistry()}
	cache, err := revocation.NewRedisCache(client, durable, revocation.WithBackfillTTL(time.Minute))
	require.NoError(t, err)
	return cache, mr, durable
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := revocation.NewRedisClient(context.Background(), "not a url")
	require.Error(t, err)
}

func TestNewRedisCacheRequiresDependencies(t *testing.T) {
	_, err := revocation.NewRedisCache(nil, fakerevocationrepo.NewFakeRegistry())
	require.Error(t, err)
	_, err = revocation.NewRedisCache(redis.NewClient(&redis.Options{}), nil)
	require.Error(t, err)
}

func TestRedisCacheRevoke(t *testing.T) {
	ctx := context.Background()
	cache, mr, durable := setupRedisCache(t)

	require.NoError(t, cache.Revoke(ctx, "tok", time.Now().Add(time.Hour)))
	require.ErrorIs(t, cache.Revoke(ctx, "tok", time.Now().Add(time.Hour)), apperrors.ErrAlreadyRevoked)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	require.NotContains(t, keys[0], "tok", "raw tokens must not be used as keys")
	require.Greater(t, mr.TTL(keys[0]), 59*time.Minute)

	revoked, err := cache.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	require.True(t, revoked)
	require.Zero(t, durable.lookups, "hit served from redis")
}

func TestRedisCacheExpiredTokenIsNotCached(t *testing.T) {
	ctx := context.Background()
	cache, mr, _ := setupRedisCache(t)

	require.NoError(t, cache.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	require.Empty(t, mr.Keys())

	revoked, err := cache.IsRevoked(ctx, "old")
	require.NoError(t, err)
	require.True(t, revoked, "durable registry still knows it")
}

func TestRedisCacheBackfillAndExpiry(t *testing.T) {
	ctx := context.Background()
	cache, mr, durable := setupRedisCache(t)

	require.NoError(t, durable.Revoke(ctx, "elsewhere", time.Now().Add(time.Hour)))

	revoked, err := cache.IsRevoked(ctx, "elsewhere")
	require.NoError(t, err)
	require.True(t, revoked)
	require.Equal(t, 1, durable.lookups)
	require.Len(t, mr.Keys(), 1)

	mr.FastForward(2 * time.Minute)
	require.Empty(t, mr.Keys())

	revoked, err = cache.IsRevoked(ctx, "elsewhere")
	require.NoError(t, err)
	require.True(t, revoked)
	require.Equal(t, 2, durable.lookups)
}

func TestRedisCacheFallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	cache, mr, durable := setupRedisCache(t)
	require.NoError(t, durable.Revoke(ctx, "tok", time.Now().Add(time.Hour)))

	mr.Close()

	revoked, err := cache.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = cache.IsRevoked(ctx, "fresh")
	require.NoError(t, err)
	require.False(t, revoked)
}
