// Package redistest provides an in-process contracts.RedisRepository for tests.
package redistest

import (
	"carelog-service/internal/app/contracts"
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type item struct {
	value     string
	expiresAt time.Time
}

// MemoryRepository mirrors the JSON encoding of the redis-backed repository.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

var _ contracts.RedisRepository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]item), now: time.Now}
}

// SetClock replaces the clock used for expiry checks.
func (m *MemoryRepository) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MemoryRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = m.newItem(string(raw), exp)
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.live(key)
	if !ok {
		return "", nil
	}
	return it.value, nil
}

func (m *MemoryRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(key); ok {
		return false, nil
	}
	m.items[key] = m.newItem(string(raw), exp)
	return true, nil
}

func (m *MemoryRepository) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.live(key)
	if !ok {
		return false, nil
	}
	m.items[key] = m.newItem(it.value, exp)
	return true, nil
}

// Keys lists the live keys.
func (m *MemoryRepository) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		if _, ok := m.live(k); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

func (m *MemoryRepository) newItem(value string, exp time.Duration) item {
	it := item{value: value}
	if exp > 0 {
		it.expiresAt = m.now().Add(exp)
	}
	return it
}

func (m *MemoryRepository) live(key string) (item, bool) {
	it, ok := m.items[key]
	if !ok {
		return item{}, false
	}
	if !it.expiresAt.IsZero() && !m.now().Before(it.expiresAt) {
		delete(m.items, key)
		return item{}, false
	}
	return it, true
}
