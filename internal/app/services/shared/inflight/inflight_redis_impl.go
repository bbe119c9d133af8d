package inflight

import (
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/pkg/constvars"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL bounds how long a crashed submission can keep a slot blocked.
const DefaultTTL = 10 * time.Minute

type redisInFlightTracker struct {
	locker contracts.LockerService
	ttl    time.Duration
	Log    *zap.Logger

	mu     sync.Mutex
	tokens map[string]string
}

// NewRedisInFlightTracker shares in-flight slot keys across service replicas.
func NewRedisInFlightTracker(locker contracts.LockerService, ttl time.Duration, logger *zap.Logger) contracts.InFlightTracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisInFlightTracker{
		locker: locker,
		ttl:    ttl,
		Log:    logger,
		tokens: make(map[string]string),
	}
}

func (t *redisInFlightTracker) TryAcquire(ctx context.Context, key string) (bool, error) {
	acquired, token, err := t.locker.TryLock(ctx, redisKey(key), t.ttl)
	if err != nil || !acquired {
		return false, err
	}

	t.mu.Lock()
	t.tokens[key] = token
	t.mu.Unlock()
	return true, nil
}

func (t *redisInFlightTracker) Release(ctx context.Context, key string) {
	t.mu.Lock()
	token, ok := t.tokens[key]
	delete(t.tokens, key)
	t.mu.Unlock()
	if !ok {
		return
	}

	if err := t.locker.Unlock(ctx, redisKey(key), token); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		t.Log.Warn("redisInFlightTracker.Release error calling locker.Unlock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotKeyKey, key),
			zap.Error(err),
		)
	}
}

func redisKey(key string) string {
	return fmt.Sprintf(constvars.RedisKeyInFlightFormat, key)
}
