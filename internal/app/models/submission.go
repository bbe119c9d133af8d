package models

import "time"

type SubmissionOutcome string

const (
	SubmissionOutcomeSuccess SubmissionOutcome = "success"
	SubmissionOutcomePartial SubmissionOutcome = "partial"
	SubmissionOutcomeFailure SubmissionOutcome = "failure"
)

type SlotResultStatus string

const (
	SlotResultSucceeded SlotResultStatus = "succeeded"
	SlotResultFailed    SlotResultStatus = "failed"
	SlotResultSkipped   SlotResultStatus = "skipped"
)

type SlotResult struct {
	Date   string           `json:"date" bson:"date"`
	Slot   string           `json:"slot" bson:"slot"`
	Status SlotResultStatus `json:"status" bson:"status"`
	Error  string           `json:"error,omitempty" bson:"error,omitempty"`
}

// BatchSummary aggregates the outcome of one sequential batch submission.
type BatchSummary struct {
	Outcome   SubmissionOutcome `json:"outcome"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Skipped   int               `json:"skipped"`
	Message   string            `json:"message"`
	Results   []SlotResult      `json:"results"`
	Entries   []SleepEntry      `json:"entries,omitempty"`
}

type SingleSubmissionResult struct {
	Entry   *SleepEntry  `json:"entry,omitempty"`
	Entries []SleepEntry `json:"entries,omitempty"`
}

// SubmissionRecord is the journal document kept for every submission.
type SubmissionRecord struct {
	ID          string            `json:"id,omitempty" bson:"_id,omitempty"`
	ResidentID  string            `json:"residentId" bson:"resident_id"`
	UserID      string            `json:"userId" bson:"user_id"`
	Role        string            `json:"role" bson:"role"`
	Status      string            `json:"status" bson:"status"`
	Batch       bool              `json:"batch" bson:"batch"`
	Outcome     SubmissionOutcome `json:"outcome" bson:"outcome"`
	Succeeded   int               `json:"succeeded" bson:"succeeded"`
	Failed      int               `json:"failed" bson:"failed"`
	Skipped     int               `json:"skipped" bson:"skipped"`
	Results     []SlotResult      `json:"results" bson:"results"`
	SubmittedAt time.Time         `json:"submittedAt" bson:"submitted_at"`
}
