package sleeps

import (
	"testing"
	"time"

	"carelog-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotLabels(slots []models.MissingSlot) []string {
	labels := make([]string, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, slot.Slot)
	}
	return labels
}

// newSyncedController selects resident r1 on date with entries applied,
// evaluated at noon on April 3.
func newSyncedController(t *testing.T, date string, entries []models.SleepEntry) *SlotSelectionController {
	t.Helper()
	now := localTime(2025, time.April, 3, 12, 0)
	controller := NewSlotSelectionController(nil)
	controller.SelectResident("r1", date)
	controller.Sync(entries, ComputeMissing([]string{"2025-04-01", "2025-04-02", "2025-04-03"}, entries, now))
	return controller
}

func TestSelectTimeRange(t *testing.T) {
	t.Run("Range across midnight wraps", func(t *testing.T) {
		controller := newSyncedController(t, "2025-04-01", nil)

		require.NoError(t, controller.SelectTimeRange("11:00PM", "5:00AM"))
		assert.Equal(t, models.SelectionModeBatch, controller.Mode(), "range selection enters batch mode")
		assert.Equal(t,
			[]string{"11:00PM", "12:00AM", "1:00AM", "2:00AM", "3:00AM", "4:00AM", "5:00AM"},
			slotLabels(controller.Selection()),
		)
	})

	t.Run("Same start and end selects one slot", func(t *testing.T) {
		controller := newSyncedController(t, "2025-04-01", nil)

		require.NoError(t, controller.SelectTimeRange("9:00AM", "9:00AM"))
		assert.Equal(t, []string{"9:00AM"}, slotLabels(controller.Selection()))
	})

	t.Run("Filled and future slots are left out", func(t *testing.T) {
		controller := newSyncedController(t, "2025-04-03", []models.SleepEntry{
			{DateTaken: "2025-04-03", MarkedFor: "10:00AM", MarkAs: "A"},
		})

		require.NoError(t, controller.SelectTimeRange("9:00AM", "2:00PM"))
		assert.Equal(t, []string{"9:00AM", "11:00AM"}, slotLabels(controller.Selection()))
	})

	t.Run("Invalid labels abort without mutation", func(t *testing.T) {
		controller := newSyncedController(t, "2025-04-01", nil)
		before := controller.State()

		assert.ErrorIs(t, controller.SelectTimeRange("11:30PM", "5:00AM"), ErrInvalidTimeRange)
		assert.ErrorIs(t, controller.SelectTimeRange("11:00PM", "bogus"), ErrInvalidTimeRange)
		assert.Equal(t, before, controller.State())
	})

	t.Run("Repeated ranges do not duplicate slots", func(t *testing.T) {
		controller := newSyncedController(t, "2025-04-01", nil)

		require.NoError(t, controller.SelectTimeRange("1:00AM", "3:00AM"))
		require.NoError(t, controller.SelectTimeRange("2:00AM", "4:00AM"))
		assert.Equal(t, []string{"1:00AM", "2:00AM", "3:00AM", "4:00AM"}, slotLabels(controller.Selection()))
	})

	t.Run("Requires a resident", func(t *testing.T) {
		controller := NewSlotSelectionController(nil)
		assert.ErrorIs(t, controller.SelectTimeRange("1:00AM", "2:00AM"), ErrNoResidentSelected)
	})
}

func TestClick(t *testing.T) {
	filled := []models.SleepEntry{{DateTaken: "2025-04-02", MarkedFor: "3:00AM", MarkAs: "S"}}

	t.Run("Single mode picks a missing slot", func(t *testing.T) {
		controller := newSyncedController(t, "2025-04-02", filled)

		require.NoError(t, controller.Click("2025-04-02", "4:00AM"))
		require.NotNil(t, controller.SingleCandidate())
		assert.Equal(t, "4:00AM", controller.SingleCandidate().Slot)
	})

	t.Run("Single mode refuses a filled slot", func(t *testing.T) {
		controller := newSyncedController(t, "2025-04-02", filled)

		assert.ErrorIs(t, controller.Click("2025-04-02", "3:00AM"), ErrSlotAlreadyFilled)
		assert.Nil(t, controller.SingleCandidate())
	})

	t.Run("Single mode refuses a future slot", func(t *testing.T) {
		controller := newSyncedController(t, "2025-04-03", nil)

		assert.ErrorIs(t, controller.Click("2025-04-03", "5:00PM"), ErrSlotNotEligible)
	})

	t.Run("Batch mode toggles and ignores filled slots", func(t *testing.T) {
		controller := newSyncedController(t, "2025-04-02", filled)
		require.NoError(t, controller.SetBatchMode(true))

		require.NoError(t, controller.Click("2025-04-02", "3:00AM"))
		assert.Empty(t, controller.Selection(), "filled slot is never selected")

		require.NoError(t, controller.Click("2025-04-02", "4:00AM"))
		require.NoError(t, controller.Click("2025-04-02", "5:00AM"))
		assert.Equal(t, []string{"4:00AM", "5:00AM"}, slotLabels(controller.Selection()))

		require.NoError(t, controller.Click("2025-04-02", "4:00AM"))
		assert.Equal(t, []string{"5:00AM"}, slotLabels(controller.Selection()))
	})
}

func TestSelectionModeTransitions(t *testing.T) {
	controller := newSyncedController(t, "2025-04-01", nil)
	require.NoError(t, controller.SelectTimeRange("1:00AM", "2:00AM"))
	require.NoError(t, controller.SetBatchStatus(models.SleepStatusSleeping))

	require.NoError(t, controller.SetBatchMode(false))
	assert.Equal(t, models.SelectionModeSingle, controller.Mode())
	assert.Empty(t, controller.Selection(), "leaving batch mode clears the set")
	assert.Empty(t, controller.State().BatchStatus)

	require.NoError(t, controller.SetBatchMode(true))
	require.NoError(t, controller.SelectTimeRange("1:00AM", "2:00AM"))
	require.NoError(t, controller.SetDate("2025-04-02"))
	assert.Empty(t, controller.Selection(), "changing date clears a batch selection")
	assert.Equal(t, "2025-04-02", controller.State().ActiveDate)

	assert.ErrorIs(t, controller.SetBatchStatus("X"), ErrInvalidStatus)

	controller.SelectResident("r2", "2025-04-01")
	state := controller.State()
	assert.Equal(t, "r2", state.ResidentID)
	assert.Equal(t, models.SelectionModeSingle, state.Mode)
	assert.NotNil(t, state.Selected)
	assert.Empty(t, state.Selected)
}

func TestSyncPrunesSlotsFilledElsewhere(t *testing.T) {
	now := localTime(2025, time.April, 3, 12, 0)
	dates := []string{"2025-04-01"}
	controller := NewSlotSelectionController(nil)
	controller.SelectResident("r1", "2025-04-01")
	controller.Sync(nil, ComputeMissing(dates, nil, now))
	require.NoError(t, controller.SelectTimeRange("1:00AM", "3:00AM"))

	entries := []models.SleepEntry{{DateTaken: "2025-04-01", MarkedFor: "2:00AM", MarkAs: "A"}}
	controller.Sync(entries, ComputeMissing(dates, entries, now))

	assert.Equal(t, []string{"1:00AM", "3:00AM"}, slotLabels(controller.Selection()))
}

func TestNewSlotSelectionControllerRestoresState(t *testing.T) {
	stored := &models.SelectionState{
		ResidentID: "r1",
		Mode:       models.SelectionModeBatch,
		ActiveDate: "2025-04-01",
		Selected:   []models.MissingSlot{{Date: "2025-04-01", Slot: "1:00AM"}},
	}
	controller := NewSlotSelectionController(stored)
	controller.ClearSelection()

	assert.Len(t, stored.Selected, 1, "the stored state is not aliased")
	assert.Equal(t, models.SelectionModeIdle, NewSlotSelectionController(&models.SelectionState{}).Mode())
}
