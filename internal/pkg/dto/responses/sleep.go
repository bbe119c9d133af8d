package responses

import "carelog-service/internal/app/models"

type MissingSlots struct {
	ResidentID string               `json:"residentId"`
	Date       string               `json:"date,omitempty"`
	Total      int                  `json:"total"`
	Slots      []models.MissingSlot `json:"slots"`
}

type Selection struct {
	State      models.SelectionState `json:"state"`
	Candidates []models.MissingSlot  `json:"candidates"`
}

type ReportExport struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}

// SelectionSubmission carries either the single or the batch outcome,
// depending on the selection mode at submit time.
type SelectionSubmission struct {
	Mode      models.SelectionMode           `json:"mode"`
	Single    *models.SingleSubmissionResult `json:"single,omitempty"`
	Batch     *models.BatchSummary           `json:"batch,omitempty"`
	Selection Selection                      `json:"selection"`
}
