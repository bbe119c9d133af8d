package sleeps

import (
	"slices"

	"carelog-service/internal/app/models"
)

// SlotSelectionController tracks which missing slots a caregiver has chosen
// for one resident. Call Sync with the resident's current entries and missing
// slots before any click so eligibility reflects the latest records.
type SlotSelectionController struct {
	state   models.SelectionState
	missing map[string]models.MissingSlot
	filled  map[string]struct{}
}

func NewSlotSelectionController(state *models.SelectionState) *SlotSelectionController {
	c := &SlotSelectionController{
		state:   models.SelectionState{Mode: models.SelectionModeIdle},
		missing: map[string]models.MissingSlot{},
		filled:  map[string]struct{}{},
	}
	if state != nil {
		c.state = *state
		c.state.Selected = slices.Clone(state.Selected)
		if c.state.Mode == "" {
			c.state.Mode = models.SelectionModeIdle
		}
	}
	return c
}

// Sync replaces the eligibility data and drops chosen slots that are no
// longer missing.
func (c *SlotSelectionController) Sync(entries []models.SleepEntry, missing []models.MissingSlot) {
	c.filled = make(map[string]struct{}, len(entries))
	for key := range IndexEntries(entries) {
		c.filled[key] = struct{}{}
	}
	c.missing = make(map[string]models.MissingSlot, len(missing))
	for _, slot := range missing {
		c.missing[slot.Key()] = slot
	}

	c.state.Selected = slices.DeleteFunc(c.state.Selected, func(slot models.MissingSlot) bool {
		_, ok := c.missing[slot.Key()]
		return !ok
	})
	if c.state.Single != nil {
		if _, ok := c.missing[c.state.Single.Key()]; !ok {
			c.state.Single = nil
		}
	}
}

func (c *SlotSelectionController) State() models.SelectionState {
	state := c.state
	state.Selected = slices.Clone(c.state.Selected)
	if state.Selected == nil {
		state.Selected = []models.MissingSlot{}
	}
	if c.state.Single != nil {
		single := *c.state.Single
		state.Single = &single
	}
	return state
}

func (c *SlotSelectionController) Mode() models.SelectionMode {
	return c.state.Mode
}

func (c *SlotSelectionController) ResidentID() string {
	return c.state.ResidentID
}

// SelectResident starts a fresh single-slot session for residentID.
func (c *SlotSelectionController) SelectResident(residentID, date string) {
	c.state = models.SelectionState{
		ResidentID: residentID,
		Mode:       models.SelectionModeSingle,
		ActiveDate: date,
	}
}

func (c *SlotSelectionController) SetBatchMode(enabled bool) error {
	if c.state.ResidentID == "" {
		return ErrNoResidentSelected
	}
	if enabled {
		c.state.Mode = models.SelectionModeBatch
		return nil
	}
	c.state.Mode = models.SelectionModeSingle
	c.state.Selected = nil
	c.state.BatchStatus = ""
	return nil
}

// SetDate switches the active date. The single candidate is always dropped
// and a batch selection is cleared since it was keyed to the old date.
func (c *SlotSelectionController) SetDate(date string) error {
	if c.state.ResidentID == "" {
		return ErrNoResidentSelected
	}
	c.state.ActiveDate = date
	c.state.Single = nil
	if c.state.Mode == models.SelectionModeBatch {
		c.state.Selected = nil
	}
	return nil
}

// Click handles a tap on a slot. In single mode a filled or ineligible slot is
// rejected; in batch mode it is ignored and eligible slots toggle.
func (c *SlotSelectionController) Click(date, slot string) error {
	if c.state.ResidentID == "" {
		return ErrNoResidentSelected
	}

	key := models.SlotKey(date, slot)
	_, filled := c.filled[key]
	candidate, missing := c.missing[key]

	if c.state.Mode == models.SelectionModeBatch {
		if filled || !missing {
			return nil
		}
		if i := c.selectedIndex(key); i >= 0 {
			c.state.Selected = slices.Delete(c.state.Selected, i, i+1)
			return nil
		}
		c.state.Selected = append(c.state.Selected, candidate)
		return nil
	}

	if filled {
		return ErrSlotAlreadyFilled
	}
	if !missing {
		return ErrSlotNotEligible
	}
	c.state.Single = &candidate
	c.state.ActiveDate = date
	return nil
}

// SelectTimeRange adds every missing slot of the active date from startSlot
// through endSlot inclusive, wrapping past midnight when endSlot precedes
// startSlot. It switches to batch mode first.
func (c *SlotSelectionController) SelectTimeRange(startSlot, endSlot string) error {
	if c.state.ResidentID == "" {
		return ErrNoResidentSelected
	}
	start, okStart := SlotIndex(startSlot)
	end, okEnd := SlotIndex(endSlot)
	if !okStart || !okEnd {
		return ErrInvalidTimeRange
	}
	if c.state.ActiveDate == "" {
		return ErrNoDateSelected
	}

	c.state.Mode = models.SelectionModeBatch
	for i := start; ; i = (i + 1) % SlotsPerDay {
		key := models.SlotKey(c.state.ActiveDate, timeSlots[i])
		if candidate, ok := c.missing[key]; ok && c.selectedIndex(key) < 0 {
			c.state.Selected = append(c.state.Selected, candidate)
		}
		if i == end {
			break
		}
	}
	return nil
}

func (c *SlotSelectionController) SetBatchStatus(status string) error {
	if !models.IsValidSleepStatus(status) {
		return ErrInvalidStatus
	}
	c.state.BatchStatus = status
	return nil
}

// Selection returns the chosen slots in the order they were added.
func (c *SlotSelectionController) Selection() []models.MissingSlot {
	return slices.Clone(c.state.Selected)
}

func (c *SlotSelectionController) SingleCandidate() *models.MissingSlot {
	if c.state.Single == nil {
		return nil
	}
	single := *c.state.Single
	return &single
}

func (c *SlotSelectionController) ClearSelection() {
	c.state.Selected = nil
	c.state.Single = nil
	c.state.BatchStatus = ""
}

// Candidates lists the missing slots of the active date, or all missing slots
// when no date is active.
func (c *SlotSelectionController) Candidates(missing []models.MissingSlot) []models.MissingSlot {
	if c.state.ActiveDate == "" {
		return slices.Clone(missing)
	}
	return MissingForDate(missing, c.state.ActiveDate)
}

func (c *SlotSelectionController) selectedIndex(key string) int {
	return slices.IndexFunc(c.state.Selected, func(slot models.MissingSlot) bool {
		return slot.Key() == key
	})
}
