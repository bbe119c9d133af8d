package sleeps

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
)

// ReportFileName names an export as <resident>_Sleep_Report_<Month>_<Year>.csv.
func ReportFileName(residentName string, month, year int) string {
	name := strings.Join(strings.Fields(residentName), "_")
	if name == "" {
		name = "Resident"
	}
	monthName := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format(constvars.MonthLayout)
	return fmt.Sprintf("%s_Sleep_Report_%s_%d.csv", name, monthName, year)
}

// WriteReportCSV writes the grid with one row per slot followed by the summary.
func WriteReportCSV(w io.Writer, report *models.SleepReport) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, report.Grid.DaysInMonth+1)
	header = append(header, "Time")
	for day := 1; day <= report.Grid.DaysInMonth; day++ {
		header = append(header, strconv.Itoa(day))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, slot := range report.Grid.Slots {
		row := make([]string, 0, len(report.Grid.Cells[i])+1)
		row = append(row, slot)
		row = append(row, report.Grid.Cells[i]...)
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	summary := report.Summary
	rows := [][]string{
		{},
		{"Status", "Count", "Percent"},
		{"Awake (A)", strconv.Itoa(summary.Awake), formatPercent(summary.AwakePercent)},
		{"Sleeping (S)", strconv.Itoa(summary.Sleeping), formatPercent(summary.SleepingPercent)},
		{"Not at facility (N/A)", strconv.Itoa(summary.NotAtFacility), formatPercent(summary.NotAtFacilityPercent)},
		{"Total recorded", strconv.Itoa(summary.TotalRecorded), ""},
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}

func RenderReportCSV(report *models.SleepReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteReportCSV(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64) + "%"
}
