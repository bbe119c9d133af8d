package inflight

import (
	"carelog-service/internal/app/services/shared/locker"
	"carelog-service/internal/app/services/shared/redis/redistest"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisInFlightTracker(t *testing.T) {
	ctx := context.Background()
	repo := redistest.NewMemoryRepository()
	lockSvc := locker.NewLockService(repo, zap.NewNop())

	first := NewRedisInFlightTracker(lockSvc, time.Minute, zap.NewNop())
	second := NewRedisInFlightTracker(lockSvc, time.Minute, zap.NewNop())

	ok, err := first.TryAcquire(ctx, "res-1:2025-04-01-3:00AM")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.TryAcquire(ctx, "res-1:2025-04-01-3:00AM")
	require.NoError(t, err)
	assert.False(t, ok, "a key held by another replica must not be acquired")

	ok, err = second.TryAcquire(ctx, "res-1:2025-04-01-4:00AM")
	require.NoError(t, err)
	assert.True(t, ok, "different slots are independent")

	second.Release(ctx, "res-1:2025-04-01-3:00AM")
	assert.Contains(t, repo.Keys(), "sleeps:inflight:res-1:2025-04-01-3:00AM", "releasing a key you do not hold is a no-op")

	first.Release(ctx, "res-1:2025-04-01-3:00AM")
	ok, err = second.TryAcquire(ctx, "res-1:2025-04-01-3:00AM")
	require.NoError(t, err)
	assert.True(t, ok, "key should be free after the holder releases it")
}
