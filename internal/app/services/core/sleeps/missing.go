package sleeps

import (
	"time"

	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
)

type MissingEntryDetector struct {
	calendar *Calendar
}

func NewMissingEntryDetector(calendar *Calendar) *MissingEntryDetector {
	return &MissingEntryDetector{calendar: calendar}
}

// ComputeMissing derives the missing slots for entries against the calendar's
// current date range and clock.
func (d *MissingEntryDetector) ComputeMissing(entries []models.SleepEntry) []models.MissingSlot {
	now := d.calendar.Now()
	return ComputeMissing(d.calendar.Dates(now), entries, now)
}

// IndexEntries keys entries by date and slot. The first entry recorded for a
// pair wins.
func IndexEntries(entries []models.SleepEntry) map[string]models.SleepEntry {
	index := make(map[string]models.SleepEntry, len(entries))
	for _, entry := range entries {
		key := models.SlotKey(models.NormalizeDate(entry.DateTaken), entry.MarkedFor)
		if _, exists := index[key]; !exists {
			index[key] = entry
		}
	}
	return index
}

// ComputeMissing emits every past (date, slot) pair of dates without a
// matching entry, in date then slot order.
func ComputeMissing(dates []string, entries []models.SleepEntry, now time.Time) []models.MissingSlot {
	filled := IndexEntries(entries)
	today := now.Format(constvars.DateLayout)
	current := CurrentSlot(now)

	var missing []models.MissingSlot
	for _, date := range dates {
		for _, slot := range timeSlots {
			if _, ok := filled[models.SlotKey(date, slot)]; ok {
				continue
			}
			if !IsPast(date, slot, now) {
				continue
			}
			missing = append(missing, models.MissingSlot{
				Date:              date,
				Slot:              slot,
				IsCurrentTimeSlot: date == today && slot == current,
			})
		}
	}
	return missing
}

func MissingForDate(missing []models.MissingSlot, date string) []models.MissingSlot {
	var filtered []models.MissingSlot
	for _, slot := range missing {
		if slot.Date == date {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}
