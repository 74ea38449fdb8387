// Package testutil provides shared helpers for tests that need a live
// journal backed by an in-process Redis.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/oakmoor/destrier/internal/history"
)

// NewStore starts an in-process Redis and returns a journal store bound to
// it. Both are cleaned up when the test finishes.
func NewStore(t *testing.T, profile string, limit int) (*history.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start(), "failed to start miniredis")
	t.Cleanup(mr.Close)

	store, err := history.NewStore(&redis.Options{Addr: mr.Addr()}, profile, limit)
	require.NoError(t, err, "failed to create journal store")
	t.Cleanup(func() { store.Close() })

	return store, mr
}

// JournalConfigYML returns destrier.yml content with journaling enabled
// against the given Redis address.
func JournalConfigYML(redisAddr, profile string) string {
	return fmt.Sprintf(`version: "1.0"
history:
  enabled: true
  redis_url: "redis://%s/0"
  profile: "%s"
`, redisAddr, profile)
}

// WriteConfig writes a destrier.yml into dir and returns its path.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "destrier.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
