package models

// ReportGrid holds one month of sleep statuses indexed by [slot][day-1].
type ReportGrid struct {
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	DaysInMonth int        `json:"daysInMonth"`
	Slots       []string   `json:"slots"`
	Cells       [][]string `json:"cells"`
}

type ReportSummary struct {
	Awake                int     `json:"awake"`
	Sleeping             int     `json:"sleeping"`
	NotAtFacility        int     `json:"notAtFacility"`
	TotalRecorded        int     `json:"totalRecorded"`
	AwakePercent         float64 `json:"awakePercent"`
	SleepingPercent      float64 `json:"sleepingPercent"`
	NotAtFacilityPercent float64 `json:"notAtFacilityPercent"`
}

type SleepReport struct {
	ResidentID   string        `json:"residentId"`
	ResidentName string        `json:"residentName,omitempty"`
	Grid         ReportGrid    `json:"grid"`
	Summary      ReportSummary `json:"summary"`
}
