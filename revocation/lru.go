package revocation

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
)

// LRUCache keeps recently seen revoked tokens in process. Only positive
// answers are cached.
type LRUCache struct {
	next  Registry
	cache *lru.LRU[string, struct{}]
}

var _ Registry = (*LRUCache)(nil)

func NewLRUCache(next Registry, size int, ttl time.Duration) *LRUCache {
	if size <= 0 {
		size = 1024
	}
	return &LRUCache{
		next:  next,
		cache: lru.NewLRU[string, struct{}](size, nil, ttl),
	}
}

func (c *LRUCache) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	err := c.next.Revoke(ctx, token, expiresAt)
	if err == nil || apperrors.Is(err, apperrors.ErrAlreadyRevoked) {
		c.cache.Add(token, struct{}{})
	}
	return err
}

func (c *LRUCache) IsRevoked(ctx context.Context, token string) (bool, error) {
	if _, ok := c.cache.Get(token); ok {
		return true, nil
	}
	revoked, err := c.next.IsRevoked(ctx, token)
	if err != nil {
		return false, err
	}
	if revoked {
		c.cache.Add(token, struct{}{})
	}
	return revoked, nil
}

func (c *LRUCache) Prune(ctx context.Context, before time.Time) (int64, error) {
	n, err := c.next.Prune(ctx, before)
	if n > 0 {
		c.cache.Purge()
	}
	return n, err
}

func (c *LRUCache) Len() int {
	return c.cache.Len()
}
