package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultKeyPrefix   = "gym:revoked:"
	defaultBackfillTTL = 10 * time.Minute
)

// RedisCache is a read-through cache in front of a durable Registry, shared
// by every server instance. Keys are SHA-256 digests of the token and expire
// together with the token. Redis failures fall back to the durable registry.
type RedisCache struct {
	client      *redis.Client
	next        Registry
	prefix      string
	backfillTTL time.Duration
	nowFunc     func() time.Time
}

var _ Registry = (*RedisCache)(nil)

type RedisOption func(*RedisCache)

func WithKeyPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

// WithBackfillTTL bounds how long a hit read from the durable registry stays cached.
func WithBackfillTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		c.backfillTTL = ttl
	}
}

func WithRedisNowFunc(now func() time.Time) RedisOption {
	return func(c *RedisCache) {
		c.nowFunc = now
	}
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewRedisCache(client *redis.Client, next Registry, options ...RedisOption) (*RedisCache, error) {
	if client == nil {
		return nil, fmt.Errorf("[NewRedisCache] redis client is required")
	}
	if next == nil {
		return nil, fmt.Errorf("[NewRedisCache] durable registry is required")
	}
	c := &RedisCache{
		client:      client,
		next:        next,
		prefix:      defaultKeyPrefix,
		backfillTTL: defaultBackfillTTL,
		nowFunc:     time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

func (c *RedisCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return c.prefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	err := c.next.Revoke(ctx, token, expiresAt)
	if err != nil && !apperrors.Is(err, apperrors.ErrAlreadyRevoked) {
		return err
	}
	c.remember(ctx, token, expiresAt.Sub(c.nowFunc()))
	return err
}

func (c *RedisCache) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(token)).Result()
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("redis revocation lookup failed, using durable registry")
	case n > 0:
		return true, nil
	}

	revoked, err := c.next.IsRevoked(ctx, token)
	if err != nil {
		return false, err
	}
	if revoked {
		c.remember(ctx, token, c.backfillTTL)
	}
	return revoked, nil
}

func (c *RedisCache) Prune(ctx context.Context, before time.Time) (int64, error) {
	return c.next.Prune(ctx, before)
}

func (c *RedisCache) remember(ctx context.Context, token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, c.key(token), "1", ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("redis revocation write failed")
	}
}
