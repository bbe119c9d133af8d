package contracts

import (
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/dto/requests"
	"carelog-service/internal/pkg/dto/responses"
	"context"
)

type SleepUsecase interface {
	FindEntries(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error)
	FindMissing(ctx context.Context, session models.AuthSession, residentID, date string) (*responses.MissingSlots, error)
	SubmitSingle(ctx context.Context, session models.AuthSession, request *requests.SubmitSleepEntry) (*models.SingleSubmissionResult, error)
	SubmitBatch(ctx context.Context, session models.AuthSession, request *requests.SubmitSleepBatch) (*models.BatchSummary, error)

	FindSelection(ctx context.Context, session models.AuthSession) (*responses.Selection, error)
	SelectResident(ctx context.Context, session models.AuthSession, request *requests.SelectResident) (*responses.Selection, error)
	SetSelectionDate(ctx context.Context, session models.AuthSession, request *requests.SetSelectionDate) (*responses.Selection, error)
	SetSelectionMode(ctx context.Context, session models.AuthSession, request *requests.SetSelectionMode) (*responses.Selection, error)
	SetSelectionStatus(ctx context.Context, session models.AuthSession, request *requests.SetSelectionStatus) (*responses.Selection, error)
	ToggleSlot(ctx context.Context, session models.AuthSession, request *requests.ToggleSlot) (*responses.Selection, error)
	SelectTimeRange(ctx context.Context, session models.AuthSession, request *requests.SelectTimeRange) (*responses.Selection, error)
	SubmitSelection(ctx context.Context, session models.AuthSession, request *requests.SubmitSelection) (*responses.SelectionSubmission, error)

	BuildReport(ctx context.Context, session models.AuthSession, request *requests.ReportPeriod) (*models.SleepReport, error)
	ExportReportCSV(ctx context.Context, session models.AuthSession, request *requests.ReportPeriod) (string, []byte, error)
	PublishReportExport(ctx context.Context, session models.AuthSession, request *requests.ReportPeriod) (*responses.ReportExport, error)
	FindSubmissionHistory(ctx context.Context, session models.AuthSession, residentID string, limit int64) ([]models.SubmissionRecord, error)

	FindNotice(ctx context.Context, session models.AuthSession) (*models.Notice, error)
}

// SleepEntryCache is the read-through cache of a resident's recorded entries.
type SleepEntryCache interface {
	FindEntries(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error)
	// Refresh drops the cached copy and refetches it from the records API.
	Refresh(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error)
}

type SelectionStore interface {
	Find(ctx context.Context, userID string) (*models.SelectionState, error)
	Save(ctx context.Context, userID string, state *models.SelectionState) error
}

type NoticeService interface {
	Push(ctx context.Context, userID string, kind models.NoticeKind, message string) error
	Current(ctx context.Context, userID string) (*models.Notice, error)
}

type SubmissionJournal interface {
	Record(ctx context.Context, record *models.SubmissionRecord) error
	FindByResident(ctx context.Context, residentID string, limit int64) ([]models.SubmissionRecord, error)
}

type ReminderPublisher interface {
	PublishMissingSleepReminder(ctx context.Context, reminder *requests.MissingSleepReminder) error
}
