package requests

type SubmitSleepEntry struct {
	ResidentID       string `json:"-" validate:"required"`
	Status           string `json:"status" validate:"required,sleep_status"`
	Date             string `json:"date" validate:"required,calendar_date"`
	Slot             string `json:"slot" validate:"required,time_slot"`
	ReasonFilledLate string `json:"reasonFilledLate" validate:"max=500"`
}

type SleepSlot struct {
	Date string `json:"date" validate:"required,calendar_date"`
	Slot string `json:"slot" validate:"required,time_slot"`
}

// SubmitSleepBatch leaves status and slots unvalidated so the usecase can
// report which precondition is missing.
type SubmitSleepBatch struct {
	ResidentID       string      `json:"-"`
	Status           string      `json:"status"`
	ReasonFilledLate string      `json:"reasonFilledLate" validate:"max=500"`
	Slots            []SleepSlot `json:"slots" validate:"dive"`
}

type SelectResident struct {
	ResidentID string `json:"residentId" validate:"required"`
	Date       string `json:"date" validate:"omitempty,calendar_date"`
}

type SetSelectionDate struct {
	Date string `json:"date" validate:"required,calendar_date"`
}

type SetSelectionMode struct {
	Batch bool `json:"batch"`
}

// SetSelectionStatus is checked by the selection itself so an unknown code is
// reported with the selection error message.
type SetSelectionStatus struct {
	Status string `json:"status"`
}

type ToggleSlot struct {
	Date string `json:"date" validate:"required,calendar_date"`
	Slot string `json:"slot" validate:"required"`
}

type SelectTimeRange struct {
	StartSlot string `json:"startSlot"`
	EndSlot   string `json:"endSlot"`
}

type SubmitSelection struct {
	Status           string `json:"status"`
	ReasonFilledLate string `json:"reasonFilledLate" validate:"max=500"`
}

type ReportPeriod struct {
	ResidentID string `validate:"required"`
	Month      int    `validate:"gte=1,lte=12"`
	Year       int    `validate:"gte=2000,lte=9999"`
}

// CreateSleepEntry is the body posted to the remote API for one slot.
type CreateSleepEntry struct {
	Resident         string `json:"resident"`
	MarkAs           string `json:"markAs"`
	DateTaken        string `json:"dateTaken"`
	ReasonFilledLate string `json:"reasonFilledLate"`
	MarkedFor        string `json:"markedFor"`
}

// MissingSleepReminder is published for residents with unfilled past slots.
type MissingSleepReminder struct {
	ResidentID   string   `json:"residentId"`
	ResidentName string   `json:"residentName"`
	Date         string   `json:"date"`
	MissingSlots []string `json:"missingSlots"`
	GeneratedAt  string   `json:"generatedAt"`
}
