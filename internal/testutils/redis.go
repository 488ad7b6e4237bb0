// Package testutils holds shared test helpers.
package testutils

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/ddb-converter/internal/redis"
)

// NewTestRedis starts an in-memory Redis bound to the test lifetime and
// returns it with a client connected to it.
func NewTestRedis(t *testing.T) (*miniredis.Miniredis, redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(mr.Addr(), &redis.Options{MaxRetries: -1})
	require.NoError(t, err, "failed to create redis client")

	return mr, client
}

// SeedCharacter stores raw character JSON under the cache key layout used by
// the character cache repository.
func SeedCharacter(t *testing.T, mr *miniredis.Miniredis, characterID string, data []byte, fetchedAtMillis int64) {
	t.Helper()

	key := "ddb_character:" + characterID
	mr.HSet(key, "data", string(data))
	mr.HSet(key, "fetched_at", strconv.FormatInt(fetchedAtMillis, 10))
}
