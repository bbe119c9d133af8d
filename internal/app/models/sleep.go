package models

import (
	"time"

	"carelog-service/internal/pkg/constvars"
)

// Sleep status codes recorded per hourly slot.
const (
	SleepStatusAwake         = constvars.SleepStatusAwake
	SleepStatusSleeping      = constvars.SleepStatusSleeping
	SleepStatusNotAtFacility = constvars.SleepStatusNotAtFacility
)

func IsValidSleepStatus(status string) bool {
	switch status {
	case SleepStatusAwake, SleepStatusSleeping, SleepStatusNotAtFacility:
		return true
	default:
		return false
	}
}

// SleepEntry is one recorded sleep status for a resident, a calendar date and an
// hourly slot. Entries are never edited once recorded.
type SleepEntry struct {
	ID               string `json:"id,omitempty"`
	ResidentID       string `json:"residentId"`
	DateTaken        string `json:"dateTaken"`
	MarkedFor        string `json:"markedFor"`
	MarkAs           string `json:"markAs"`
	ReasonFilledLate string `json:"reasonFilledLate,omitempty"`
}

// MissingSlot is a past (date, slot) pair without a recorded entry.
type MissingSlot struct {
	Date              string `json:"date"`
	Slot              string `json:"slot"`
	IsCurrentTimeSlot bool   `json:"isCurrentTimeSlot"`
}

func (m MissingSlot) Key() string {
	return SlotKey(m.Date, m.Slot)
}

// SlotKey identifies a (date, slot) pair for one resident.
func SlotKey(date, slot string) string {
	return date + "-" + slot
}

// IsValidTimeSlot accepts only canonical hourly labels such as "12:00AM".
func IsValidTimeSlot(label string) bool {
	parsed, err := time.Parse(constvars.TimeSlotLayout, label)
	if err != nil {
		return false
	}
	return parsed.Minute() == 0 && parsed.Format(constvars.TimeSlotLayout) == label
}

// NormalizeDate trims an ISO timestamp down to its calendar date.
func NormalizeDate(raw string) string {
	if len(raw) >= len(constvars.DateLayout) {
		return raw[:len(constvars.DateLayout)]
	}
	return raw
}
