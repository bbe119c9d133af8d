package selection

import (
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// DefaultTTL drops abandoned selections after a caregiver shift.
const DefaultTTL = 12 * time.Hour

type selectionStore struct {
	redisRepo contracts.RedisRepository
	ttl       time.Duration
}

func NewSelectionStore(redisRepo contracts.RedisRepository, ttl time.Duration) contracts.SelectionStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &selectionStore{redisRepo: redisRepo, ttl: ttl}
}

// Find returns nil when the user has no stored selection.
func (s *selectionStore) Find(ctx context.Context, userID string) (*models.SelectionState, error) {
	raw, err := s.redisRepo.Get(ctx, storeKey(userID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	state := new(models.SelectionState)
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return state, nil
}

func (s *selectionStore) Save(ctx context.Context, userID string, state *models.SelectionState) error {
	return s.redisRepo.Set(ctx, storeKey(userID), state, s.ttl)
}

func storeKey(userID string) string {
	return fmt.Sprintf(constvars.RedisKeySelectionFormat, userID)
}
