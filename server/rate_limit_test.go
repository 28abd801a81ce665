package server_test

import (
	"testing"

	"github.com/jrsteele09/go-gym-server/server"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterPerKey(t *testing.T) {
	rl := server.NewRateLimiter(server.RateLimiterConfig{PerMinute: 6, Burst: 2})
	t.Cleanup(rl.Stop)

	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))

	require.True(t, rl.Allow("10.0.0.2"))
	require.Equal(t, 2, rl.Len())
	require.Equal(t, 10, rl.RetryAfter())
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := server.NewRateLimiter(server.RateLimiterConfig{})
	rl.Stop()
	rl.Stop()

	require.True(t, rl.Allow("k"))
	require.False(t, rl.Allow("k"))
	require.Equal(t, 60, rl.RetryAfter())
}
