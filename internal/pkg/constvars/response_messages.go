package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Sleep-related messages
	GetSleepEntriesSuccessMessage      = "get sleep entries successfully"
	GetMissingSlotsSuccessMessage      = "get missing sleep slots successfully"
	CreateSleepEntrySuccessMessage     = "sleep entry recorded successfully"
	GetSleepReportSuccessMessage       = "get sleep report successfully"
	ExportSleepReportSuccessMessage    = "sleep report exported successfully"
	GetSubmissionHistorySuccessMessage = "get sleep submission history successfully"
	GetSelectionSuccessMessage         = "get slot selection successfully"
	UpdateSelectionSuccessMessage      = "slot selection updated successfully"
	GetNoticeSuccessMessage            = "get notice successfully"
)

// Batch submission summaries shown to the user.
const (
	BatchSubmitAllSucceededFormat  = "successfully recorded %d sleep entries"
	BatchSubmitPartialFormat       = "recorded %d sleep entries"
	BatchSubmitAllFailedFormat     = "failed to record %d sleep entries"
	BatchSubmitNoneRecorded        = "no sleep entries recorded"
	BatchSubmitFailedSuffixFormat  = ", %d failed"
	BatchSubmitSkippedSuffixFormat = ", %d skipped"
)
