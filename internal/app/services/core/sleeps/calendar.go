package sleeps

import (
	"slices"
	"time"

	"carelog-service/internal/pkg/constvars"
)

const SlotsPerDay = 24

var (
	timeSlots     = buildTimeSlots()
	timeSlotIndex = buildTimeSlotIndex(timeSlots)
)

func buildTimeSlots() []string {
	midnight := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	slots := make([]string, 0, SlotsPerDay)
	for hour := 0; hour < SlotsPerDay; hour++ {
		slots = append(slots, midnight.Add(time.Duration(hour)*time.Hour).Format(constvars.TimeSlotLayout))
	}
	return slots
}

func buildTimeSlotIndex(slots []string) map[string]int {
	index := make(map[string]int, len(slots))
	for i, slot := range slots {
		index[slot] = i
	}
	return index
}

// AllTimeSlots returns the 24 hourly labels from 12:00AM to 11:00PM.
func AllTimeSlots() []string {
	return slices.Clone(timeSlots)
}

// SlotIndex returns the hour of day a slot label starts at.
func SlotIndex(slot string) (int, bool) {
	index, ok := timeSlotIndex[slot]
	return index, ok
}

func SlotForHour(hour int) string {
	return timeSlots[((hour%SlotsPerDay)+SlotsPerDay)%SlotsPerDay]
}

func CurrentSlot(now time.Time) string {
	return timeSlots[now.Hour()]
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DatesFromStart lists every date from start through today inclusive.
func DatesFromStart(start, today time.Time) []string {
	current := startOfDay(start)
	last := startOfDay(today)

	var dates []string
	for !current.After(last) {
		dates = append(dates, current.Format(constvars.DateLayout))
		current = current.AddDate(0, 0, 1)
	}
	return dates
}

// IsPast reports whether the slot on date has fully started before now.
// A slot of the current hour counts as past once at least a minute of it
// has elapsed.
func IsPast(date, slot string, now time.Time) bool {
	hour, ok := SlotIndex(slot)
	if !ok {
		return false
	}
	day, err := time.ParseInLocation(constvars.DateLayout, date, now.Location())
	if err != nil {
		return false
	}

	today := startOfDay(now)
	switch {
	case day.Before(today):
		return true
	case day.After(today):
		return false
	default:
		return now.Hour() > hour || (now.Hour() == hour && now.Minute() > 0)
	}
}

// TrackingStartDate is April 1 of the tracking year that contains today.
func TrackingStartDate(today time.Time) time.Time {
	year := today.Year()
	if today.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, today.Location())
}

func IsValidDate(date string) bool {
	parsed, err := time.Parse(constvars.DateLayout, date)
	return err == nil && parsed.Format(constvars.DateLayout) == date
}

// Calendar binds the date range to a clock and an optional configured start.
type Calendar struct {
	startOverride string
	now           func() time.Time
}

func NewCalendar(startOverride string, now func() time.Time) *Calendar {
	if now == nil {
		now = time.Now
	}
	return &Calendar{startOverride: startOverride, now: now}
}

func (c *Calendar) Now() time.Time {
	return c.now()
}

func (c *Calendar) StartDate(today time.Time) time.Time {
	if c.startOverride != "" {
		start, err := time.ParseInLocation(constvars.DateLayout, c.startOverride, today.Location())
		if err == nil {
			return start
		}
	}
	return TrackingStartDate(today)
}

func (c *Calendar) Dates(today time.Time) []string {
	return DatesFromStart(c.StartDate(today), today)
}
