package sleeps

import (
	"fmt"
	"strings"
	"testing"

	"carelog-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGrid(t *testing.T) {
	entries := []models.SleepEntry{
		{DateTaken: "2025-04-01", MarkedFor: "12:00AM", MarkAs: "S"},
		{DateTaken: "2025-04-30T08:00:00Z", MarkedFor: "11:00PM", MarkAs: "A"},
		{DateTaken: "2025-04-15", MarkedFor: "3:00PM", MarkAs: "N/A"},
		{DateTaken: "2025-04-15", MarkedFor: "3:00PM", MarkAs: "S"},
		{DateTaken: "2025-05-01", MarkedFor: "1:00AM", MarkAs: "S"},
		{DateTaken: "2025-04-02", MarkedFor: "3:30PM", MarkAs: "S"},
	}

	grid := BuildGrid(FilterByPeriod(entries, 4, 2025), 4, 2025)

	require.Len(t, grid.Cells, 24)
	cells := 0
	nonEmpty := 0
	for _, row := range grid.Cells {
		require.Len(t, row, 30)
		for _, cell := range row {
			cells++
			if cell != "" {
				nonEmpty++
			}
		}
	}
	assert.Equal(t, 24*30, cells)
	assert.Equal(t, 3, nonEmpty, "only matching in-period entries fill cells")
	assert.Equal(t, "S", grid.Cells[0][0])
	assert.Equal(t, "A", grid.Cells[23][29])
	assert.Equal(t, "N/A", grid.Cells[15][14], "the first entry for a cell wins")
	assert.Equal(t, "", grid.Cells[1][0])
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2, 2024))
	assert.Equal(t, 28, DaysInMonth(2, 2025))
	assert.Equal(t, 31, DaysInMonth(12, 2025))
	assert.Equal(t, 30, DaysInMonth(4, 2025))
}

func TestSummarize(t *testing.T) {
	t.Run("Full grid sums to 100 percent", func(t *testing.T) {
		var entries []models.SleepEntry
		for day := 1; day <= 28; day++ {
			date := fmt.Sprintf("2025-02-%02d", day)
			for i, slot := range AllTimeSlots() {
				status := models.SleepStatusSleeping
				switch i % 4 {
				case 0:
					status = models.SleepStatusAwake
				case 1:
					status = models.SleepStatusNotAtFacility
				}
				entries = append(entries, models.SleepEntry{DateTaken: date, MarkedFor: slot, MarkAs: status})
			}
		}

		report, err := BuildReport("r1", "", entries, 2, 2025)
		require.NoError(t, err)

		summary := report.Summary
		assert.Equal(t, 24*28, summary.TotalRecorded)
		assert.InDelta(t, 100, summary.AwakePercent+summary.SleepingPercent+summary.NotAtFacilityPercent, 1e-9)
		assert.InDelta(t, 25, summary.AwakePercent, 1e-9)
		assert.InDelta(t, 50, summary.SleepingPercent, 1e-9)
	})

	t.Run("Percentages use recorded cells only", func(t *testing.T) {
		report, err := BuildReport("r1", "", []models.SleepEntry{
			{DateTaken: "2025-04-01", MarkedFor: "1:00AM", MarkAs: "A"},
			{DateTaken: "2025-04-01", MarkedFor: "2:00AM", MarkAs: "S"},
			{DateTaken: "2025-04-01", MarkedFor: "3:00AM", MarkAs: "S"},
			{DateTaken: "2025-04-01", MarkedFor: "4:00AM", MarkAs: "S"},
		}, 4, 2025)
		require.NoError(t, err)

		assert.Equal(t, 4, report.Summary.TotalRecorded)
		assert.InDelta(t, 25, report.Summary.AwakePercent, 1e-9)
		assert.InDelta(t, 75, report.Summary.SleepingPercent, 1e-9)
		assert.Zero(t, report.Summary.NotAtFacilityPercent)
	})

	t.Run("Empty month has zero percentages", func(t *testing.T) {
		report, err := BuildReport("r1", "", nil, 4, 2025)
		require.NoError(t, err)
		assert.Equal(t, models.ReportSummary{}, report.Summary)
	})
}

func TestBuildReportRejectsInvalidPeriod(t *testing.T) {
	for _, period := range [][2]int{{0, 2025}, {13, 2025}, {4, 0}} {
		_, err := BuildReport("r1", "", nil, period[0], period[1])
		assert.ErrorIs(t, err, ErrInvalidReportPeriod)
	}
}

func TestReportCSV(t *testing.T) {
	report, err := BuildReport("r1", "Jane  Doe", []models.SleepEntry{
		{DateTaken: "2025-04-01", MarkedFor: "12:00AM", MarkAs: "S"},
		{DateTaken: "2025-04-02", MarkedFor: "12:00AM", MarkAs: "A"},
		{DateTaken: "2025-04-02", MarkedFor: "1:00AM", MarkAs: "N/A"},
	}, 4, 2025)
	require.NoError(t, err)

	content, err := RenderReportCSV(report)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 1+24+1+5)
	assert.True(t, strings.HasPrefix(lines[0], "Time,1,2,3,"))
	assert.True(t, strings.HasSuffix(lines[0], ",30"))
	assert.True(t, strings.HasPrefix(lines[1], "12:00AM,S,A,,"))
	assert.True(t, strings.HasPrefix(lines[2], "1:00AM,,N/A,"))
	assert.Equal(t, "", lines[25])
	assert.Equal(t, "Awake (A),1,33.33%", lines[27])
	assert.Equal(t, "Total recorded,3,", lines[30])

	assert.Equal(t, "Jane_Doe_Sleep_Report_April_2025.csv", ReportFileName(report.ResidentName, 4, 2025))
	assert.Equal(t, "Resident_Sleep_Report_December_2024.csv", ReportFileName("  ", 12, 2024))
}
