package models

type SelectionMode string

const (
	SelectionModeIdle   SelectionMode = "idle"
	SelectionModeSingle SelectionMode = "single"
	SelectionModeBatch  SelectionMode = "batch"
)

// SelectionState is the persisted form of a caregiver's slot selection.
type SelectionState struct {
	ResidentID  string        `json:"residentId,omitempty"`
	Mode        SelectionMode `json:"mode"`
	ActiveDate  string        `json:"activeDate,omitempty"`
	Single      *MissingSlot  `json:"single,omitempty"`
	Selected    []MissingSlot `json:"selected"`
	BatchStatus string        `json:"batchStatus,omitempty"`
}
