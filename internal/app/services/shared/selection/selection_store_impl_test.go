package selection

import (
	"carelog-service/internal/app/models"
	"carelog-service/internal/app/services/shared/redis/redistest"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSelectionStore(redistest.NewMemoryRepository(), 0)

	state, err := store.Find(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, state)

	saved := &models.SelectionState{
		ResidentID:  "r1",
		Mode:        models.SelectionModeBatch,
		ActiveDate:  "2025-04-01",
		Selected:    []models.MissingSlot{{Date: "2025-04-01", Slot: "1:00AM"}},
		BatchStatus: models.SleepStatusSleeping,
	}
	require.NoError(t, store.Save(ctx, "u-1", saved))

	state, err = store.Find(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, saved, state)
}
