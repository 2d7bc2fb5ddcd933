// Package testutils provides test helpers: a miniredis-backed client, the
// embedded game data and state fixtures.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bun-dungeon/internal/redis"
)

// CreateTestRedisClient creates a client against a fresh in-memory Redis. The
// server is returned so tests can inspect keys and fast forward TTLs. Both are
// closed when the test ends.
func CreateTestRedisClient(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	return CreateTestRedisClientWithData(t, nil)
}

// CreateTestRedisClientWithData is CreateTestRedisClient with a hook to seed
// the server before the client connects
func CreateTestRedisClientWithData(t *testing.T, setupFunc func(mr *miniredis.Miniredis)) (redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	if setupFunc != nil {
		setupFunc(mr)
	}

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, mr
}
