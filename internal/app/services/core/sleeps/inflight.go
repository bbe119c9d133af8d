package sleeps

import (
	"context"
	"sync"

	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
)

type memoryInFlightTracker struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewMemoryInFlightTracker guards slot keys within a single process.
func NewMemoryInFlightTracker() contracts.InFlightTracker {
	return &memoryInFlightTracker{keys: map[string]struct{}{}}
}

func (t *memoryInFlightTracker) TryAcquire(ctx context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.keys[key]; busy {
		return false, nil
	}
	t.keys[key] = struct{}{}
	return true, nil
}

func (t *memoryInFlightTracker) Release(ctx context.Context, key string) {
	t.mu.Lock()
	delete(t.keys, key)
	t.mu.Unlock()
}

func inFlightKey(residentID, date, slot string) string {
	return residentID + ":" + models.SlotKey(date, slot)
}
