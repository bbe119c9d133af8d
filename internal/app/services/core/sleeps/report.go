package sleeps

import (
	"errors"
	"time"

	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
)

var ErrInvalidReportPeriod = errors.New("report month must be 1-12 and year positive")

func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < 1 {
		return ErrInvalidReportPeriod
	}
	return nil
}

func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FilterByPeriod keeps the entries dated within month and year.
func FilterByPeriod(entries []models.SleepEntry, month, year int) []models.SleepEntry {
	var filtered []models.SleepEntry
	for _, entry := range entries {
		date, err := time.Parse(constvars.DateLayout, models.NormalizeDate(entry.DateTaken))
		if err != nil {
			continue
		}
		if int(date.Month()) == month && date.Year() == year {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// BuildGrid lays entries of one month out as [slot][day-1]. Every cell starts
// empty so a gap stays distinguishable from a recorded N/A.
func BuildGrid(filtered []models.SleepEntry, month, year int) models.ReportGrid {
	days := DaysInMonth(month, year)
	grid := models.ReportGrid{
		Month:       month,
		Year:        year,
		DaysInMonth: days,
		Slots:       AllTimeSlots(),
		Cells:       make([][]string, SlotsPerDay),
	}
	for i := range grid.Cells {
		grid.Cells[i] = make([]string, days)
	}

	for _, entry := range filtered {
		slot, ok := SlotIndex(entry.MarkedFor)
		if !ok {
			continue
		}
		date, err := time.Parse(constvars.DateLayout, models.NormalizeDate(entry.DateTaken))
		if err != nil || int(date.Month()) != month || date.Year() != year {
			continue
		}
		if grid.Cells[slot][date.Day()-1] == "" {
			grid.Cells[slot][date.Day()-1] = entry.MarkAs
		}
	}
	return grid
}

// Summarize counts each status and expresses it as a share of recorded cells.
func Summarize(grid models.ReportGrid) models.ReportSummary {
	var summary models.ReportSummary
	for _, row := range grid.Cells {
		for _, cell := range row {
			switch cell {
			case models.SleepStatusAwake:
				summary.Awake++
			case models.SleepStatusSleeping:
				summary.Sleeping++
			case models.SleepStatusNotAtFacility:
				summary.NotAtFacility++
			}
		}
	}

	summary.TotalRecorded = summary.Awake + summary.Sleeping + summary.NotAtFacility
	if summary.TotalRecorded == 0 {
		return summary
	}
	total := float64(summary.TotalRecorded)
	summary.AwakePercent = float64(summary.Awake) / total * 100
	summary.SleepingPercent = float64(summary.Sleeping) / total * 100
	summary.NotAtFacilityPercent = float64(summary.NotAtFacility) / total * 100
	return summary
}

// BuildReport runs the whole aggregation for one resident and period.
func BuildReport(residentID, residentName string, entries []models.SleepEntry, month, year int) (*models.SleepReport, error) {
	if err := ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	grid := BuildGrid(FilterByPeriod(entries, month, year), month, year)
	return &models.SleepReport{
		ResidentID:   residentID,
		ResidentName: residentName,
		Grid:         grid,
		Summary:      Summarize(grid),
	}, nil
}
