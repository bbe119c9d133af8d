package locker

import (
	"carelog-service/internal/app/services/shared/redis/redistest"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("Second TryLock fails while held", func(t *testing.T) {
		svc := NewLockService(redistest.NewMemoryRepository(), zap.NewNop())

		ok, token, err := svc.TryLock(ctx, "lock:a", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "first caller should acquire the lock")
		assert.NotEmpty(t, token)

		ok, _, err = svc.TryLock(ctx, "lock:a", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok, "second caller should not acquire a held lock")
	})

	t.Run("Unlock releases only the owner's lock", func(t *testing.T) {
		repo := redistest.NewMemoryRepository()
		svc := NewLockService(repo, zap.NewNop())

		_, token, err := svc.TryLock(ctx, "lock:b", time.Minute)
		require.NoError(t, err)

		require.NoError(t, svc.Unlock(ctx, "lock:b", "someone-else"))
		assert.Contains(t, repo.Keys(), "lock:b", "foreign token must not release the lock")

		require.NoError(t, svc.Unlock(ctx, "lock:b", token))
		assert.NotContains(t, repo.Keys(), "lock:b")

		ok, _, err := svc.TryLock(ctx, "lock:b", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "lock should be free after unlock")
	})

	t.Run("Refresh extends an owned lock", func(t *testing.T) {
		repo := redistest.NewMemoryRepository()
		now := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
		repo.SetClock(func() time.Time { return now })
		svc := NewLockService(repo, zap.NewNop())

		_, token, err := svc.TryLock(ctx, "lock:c", time.Minute)
		require.NoError(t, err)

		now = now.Add(50 * time.Second)
		require.NoError(t, svc.Refresh(ctx, "lock:c", token, time.Minute))

		now = now.Add(50 * time.Second)
		assert.Contains(t, repo.Keys(), "lock:c", "refreshed lock should still be live")
	})

	t.Run("Refresh fails after the lock expired", func(t *testing.T) {
		repo := redistest.NewMemoryRepository()
		now := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
		repo.SetClock(func() time.Time { return now })
		svc := NewLockService(repo, zap.NewNop())

		_, token, err := svc.TryLock(ctx, "lock:d", time.Minute)
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		assert.Error(t, svc.Refresh(ctx, "lock:d", token, time.Minute))
	})
}
