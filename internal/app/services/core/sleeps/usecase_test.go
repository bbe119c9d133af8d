package sleeps

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"carelog-service/internal/app/config"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"
	"carelog-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type usecaseFixture struct {
	sleepClient    *mockSleepClient
	residentClient *mockResidentClient
	cache          *mockEntryCache
	journal        *mockJournal
	storage        *mockStorage
	notices        *memoryNotices
	selections     *memorySelections
	usecase        *sleepUsecase
}

func newUsecaseFixture(now time.Time) *usecaseFixture {
	f := &usecaseFixture{
		sleepClient:    new(mockSleepClient),
		residentClient: new(mockResidentClient),
		cache:          new(mockEntryCache),
		journal:        new(mockJournal),
		storage:        new(mockStorage),
		notices:        newMemoryNotices(),
		selections:     newMemorySelections(),
	}
	internalConfig := &config.InternalConfig{
		Minio: config.AppMinio{ReportBucketName: "reports", PresignedURLExpiryInHours: 24},
	}
	f.usecase = NewSleepUsecase(
		f.sleepClient,
		f.residentClient,
		f.cache,
		NewMemoryInFlightTracker(),
		f.selections,
		f.notices,
		f.journal,
		f.storage,
		NewCalendar("2025-04-01", fixedClock(now)),
		internalConfig,
		zap.NewNop(),
	).(*sleepUsecase)
	return f
}

func assertStatusCode(t *testing.T, err error, statusCode int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a custom error, got %v", err)
	assert.Equal(t, statusCode, customErr.StatusCode)
}

func TestSubmitSelectionBatchPartialFailure(t *testing.T) {
	ctx := context.Background()
	f := newUsecaseFixture(localTime(2025, time.April, 2, 12, 30))

	f.cache.On("FindEntries", mock.Anything, careGiver, "r1").Return([]models.SleepEntry{}, nil)
	f.cache.On("Refresh", mock.Anything, careGiver, "r1").Return([]models.SleepEntry{}, nil)
	f.sleepClient.On("CreateSleep", mock.Anything, careGiver, createFor("3:00AM")).Return(nil, errors.New("rejected"))
	f.sleepClient.On("CreateSleep", mock.Anything, careGiver, mock.Anything).Return(&models.SleepEntry{}, nil)
	f.journal.On("Record", mock.Anything, mock.MatchedBy(func(record *models.SubmissionRecord) bool {
		return record.Batch && record.Succeeded == 4 && record.Failed == 1 && record.Outcome == models.SubmissionOutcomePartial
	})).Return(nil).Once()

	_, err := f.usecase.SelectResident(ctx, careGiver, &requests.SelectResident{ResidentID: "r1", Date: "2025-04-01"})
	require.NoError(t, err)

	selection, err := f.usecase.SelectTimeRange(ctx, careGiver, &requests.SelectTimeRange{StartSlot: "1:00AM", EndSlot: "5:00AM"})
	require.NoError(t, err)
	require.Len(t, selection.State.Selected, 5)

	result, err := f.usecase.SubmitSelection(ctx, careGiver, &requests.SubmitSelection{Status: "S"})
	require.NoError(t, err)

	require.NotNil(t, result.Batch)
	assert.Equal(t, models.SelectionModeBatch, result.Mode)
	assert.Equal(t, 4, result.Batch.Succeeded)
	assert.Equal(t, 1, result.Batch.Failed)
	assert.Empty(t, result.Selection.State.Selected, "selection is cleared after the batch")
	f.cache.AssertNumberOfCalls(t, "Refresh", 1)
	f.sleepClient.AssertNumberOfCalls(t, "CreateSleep", 5)
	f.journal.AssertExpectations(t)

	stored, err := f.selections.Find(ctx, careGiver.UserID)
	require.NoError(t, err)
	assert.Empty(t, stored.Selected, "the persisted selection is cleared too")

	notice, err := f.notices.Current(ctx, careGiver.UserID)
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, models.NoticeKindError, notice.Kind)
	assert.Equal(t, "recorded 4 sleep entries, 1 failed", notice.Message)
}

func TestSubmitSelectionSingle(t *testing.T) {
	ctx := context.Background()
	f := newUsecaseFixture(localTime(2025, time.April, 2, 12, 30))

	created := &models.SleepEntry{ID: "e1", ResidentID: "r1", DateTaken: "2025-04-02", MarkedFor: "8:00AM", MarkAs: "A"}
	f.cache.On("FindEntries", mock.Anything, careGiver, "r1").Return([]models.SleepEntry{}, nil)
	f.cache.On("Refresh", mock.Anything, careGiver, "r1").Return([]models.SleepEntry{*created}, nil).Once()
	f.sleepClient.On("CreateSleep", mock.Anything, careGiver, createFor("8:00AM")).Return(created, nil).Once()
	f.journal.On("Record", mock.Anything, mock.Anything).Return(nil)

	_, err := f.usecase.SelectResident(ctx, careGiver, &requests.SelectResident{ResidentID: "r1"})
	require.NoError(t, err)
	_, err = f.usecase.ToggleSlot(ctx, careGiver, &requests.ToggleSlot{Date: "2025-04-02", Slot: "8:00AM"})
	require.NoError(t, err)

	result, err := f.usecase.SubmitSelection(ctx, careGiver, &requests.SubmitSelection{Status: "A"})
	require.NoError(t, err)

	require.NotNil(t, result.Single)
	assert.Equal(t, created, result.Single.Entry)
	assert.Nil(t, result.Selection.State.Single)
	for _, candidate := range result.Selection.Candidates {
		assert.NotEqual(t, "8:00AM", candidate.Slot, "the recorded slot is no longer a candidate")
	}

	notice, _ := f.notices.Current(ctx, careGiver.UserID)
	require.NotNil(t, notice)
	assert.Equal(t, models.NoticeKindSuccess, notice.Kind)
}

func TestSubmitSelectionUsesStoredBatchStatus(t *testing.T) {
	ctx := context.Background()
	f := newUsecaseFixture(localTime(2025, time.April, 2, 12, 30))

	f.cache.On("FindEntries", mock.Anything, careGiver, "r1").Return([]models.SleepEntry{}, nil)
	f.cache.On("Refresh", mock.Anything, careGiver, "r1").Return([]models.SleepEntry{}, nil)
	f.sleepClient.On("CreateSleep", mock.Anything, careGiver, mock.MatchedBy(func(request *requests.CreateSleepEntry) bool {
		return request.MarkAs == "N/A"
	})).Return(&models.SleepEntry{}, nil).Times(2)
	f.journal.On("Record", mock.Anything, mock.Anything).Return(nil)

	_, err := f.usecase.SelectResident(ctx, careGiver, &requests.SelectResident{ResidentID: "r1", Date: "2025-04-01"})
	require.NoError(t, err)
	_, err = f.usecase.SelectTimeRange(ctx, careGiver, &requests.SelectTimeRange{StartSlot: "1:00AM", EndSlot: "2:00AM"})
	require.NoError(t, err)

	_, err = f.usecase.SetSelectionStatus(ctx, careGiver, &requests.SetSelectionStatus{Status: "X"})
	assertStatusCode(t, err, http.StatusBadRequest)

	selection, err := f.usecase.SetSelectionStatus(ctx, careGiver, &requests.SetSelectionStatus{Status: "N/A"})
	require.NoError(t, err)
	assert.Equal(t, "N/A", selection.State.BatchStatus)

	result, err := f.usecase.SubmitSelection(ctx, careGiver, &requests.SubmitSelection{})
	require.NoError(t, err)
	require.NotNil(t, result.Batch)
	assert.Equal(t, 2, result.Batch.Succeeded)
	f.sleepClient.AssertExpectations(t)
}

func TestSubmitSelectionWithoutResident(t *testing.T) {
	f := newUsecaseFixture(localTime(2025, time.April, 2, 12, 30))

	_, err := f.usecase.SubmitSelection(context.Background(), careGiver, &requests.SubmitSelection{Status: "A"})

	assertStatusCode(t, err, http.StatusBadRequest)
	assert.Empty(t, f.sleepClient.Calls)
	notice, _ := f.notices.Current(context.Background(), careGiver.UserID)
	require.NotNil(t, notice)
	assert.Equal(t, constvars.ErrClientNoResidentSelected, notice.Message)
}

func TestUsecaseSubmitSingleDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newUsecaseFixture(localTime(2025, time.April, 2, 12, 30))
	f.cache.On("FindEntries", mock.Anything, careGiver, "r1").Return([]models.SleepEntry{
		{ResidentID: "r1", DateTaken: "2025-04-01", MarkedFor: "7:00AM", MarkAs: "S"},
	}, nil)

	_, err := f.usecase.SubmitSingle(ctx, careGiver, &requests.SubmitSleepEntry{
		ResidentID: "r1", Status: "A", Date: "2025-04-01", Slot: "7:00AM",
	})

	assertStatusCode(t, err, http.StatusConflict)
	assert.Empty(t, f.sleepClient.Calls, "no request is sent for a filled slot")
	f.journal.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)

	notice, _ := f.notices.Current(ctx, careGiver.UserID)
	require.NotNil(t, notice)
	assert.Equal(t, models.NoticeKindError, notice.Kind)
	assert.Equal(t, constvars.ErrClientSlotAlreadyFilled, notice.Message)
}

func TestUsecaseSubmitBatch(t *testing.T) {
	ctx := context.Background()
	f := newUsecaseFixture(localTime(2025, time.April, 2, 12, 30))
	f.cache.On("FindEntries", mock.Anything, careGiver, "r1").Return([]models.SleepEntry{}, nil)
	f.cache.On("Refresh", mock.Anything, careGiver, "r1").Return([]models.SleepEntry{}, nil)
	f.sleepClient.On("CreateSleep", mock.Anything, careGiver, mock.Anything).Return(&models.SleepEntry{}, nil)
	f.journal.On("Record", mock.Anything, mock.Anything).Return(nil)

	summary, err := f.usecase.SubmitBatch(ctx, careGiver, &requests.SubmitSleepBatch{
		ResidentID: "r1",
		Status:     "S",
		Slots:      []requests.SleepSlot{{Date: "2025-04-01", Slot: "1:00AM"}, {Date: "2025-04-01", Slot: "2:00AM"}},
	})

	require.NoError(t, err)
	assert.Equal(t, models.SubmissionOutcomeSuccess, summary.Outcome)
	notice, _ := f.notices.Current(ctx, careGiver.UserID)
	require.NotNil(t, notice)
	assert.Equal(t, models.NoticeKindSuccess, notice.Kind)
	assert.Equal(t, "successfully recorded 2 sleep entries", notice.Message)
}

func TestUsecaseRoleGating(t *testing.T) {
	ctx := context.Background()
	f := newUsecaseFixture(localTime(2025, time.April, 2, 12, 30))

	_, err := f.usecase.SubmitSingle(ctx, manager, &requests.SubmitSleepEntry{ResidentID: "r1", Status: "A", Date: "2025-04-01", Slot: "1:00AM"})
	assertStatusCode(t, err, http.StatusForbidden)

	_, err = f.usecase.SelectResident(ctx, manager, &requests.SelectResident{ResidentID: "r1"})
	assertStatusCode(t, err, http.StatusForbidden)

	_, err = f.usecase.BuildReport(ctx, careGiver, &requests.ReportPeriod{ResidentID: "r1", Month: 4, Year: 2025})
	assertStatusCode(t, err, http.StatusForbidden)

	_, err = f.usecase.FindSubmissionHistory(ctx, careGiver, "r1", 10)
	assertStatusCode(t, err, http.StatusForbidden)

	assert.Empty(t, f.cache.Calls)
	assert.Empty(t, f.sleepClient.Calls)
}

func TestUsecaseFindMissing(t *testing.T) {
	ctx := context.Background()
	f := newUsecaseFixture(localTime(2025, time.April, 2, 0, 30))
	f.cache.On("FindEntries", mock.Anything, manager, "r1").Return([]models.SleepEntry{
		{DateTaken: "2025-04-01", MarkedFor: "11:00PM", MarkAs: "S"},
	}, nil)

	all, err := f.usecase.FindMissing(ctx, manager, "r1", "")
	require.NoError(t, err)
	assert.Equal(t, 24, all.Total)

	today, err := f.usecase.FindMissing(ctx, manager, "r1", "2025-04-02")
	require.NoError(t, err)
	require.Equal(t, 1, today.Total)
	assert.Equal(t, "12:00AM", today.Slots[0].Slot)
	assert.True(t, today.Slots[0].IsCurrentTimeSlot)

	_, err = f.usecase.FindMissing(ctx, manager, "r1", "April 2")
	assertStatusCode(t, err, http.StatusBadRequest)
}

func TestUsecaseReports(t *testing.T) {
	ctx := context.Background()
	entries := []models.SleepEntry{
		{DateTaken: "2025-04-01", MarkedFor: "1:00AM", MarkAs: "S"},
		{DateTaken: "2025-04-02", MarkedFor: "1:00AM", MarkAs: "A"},
	}
	period := &requests.ReportPeriod{ResidentID: "r1", Month: 4, Year: 2025}

	t.Run("Report carries the resident name", func(t *testing.T) {
		f := newUsecaseFixture(localTime(2025, time.April, 20, 9, 0))
		f.cache.On("FindEntries", mock.Anything, manager, "r1").Return(entries, nil)
		f.residentClient.On("FindResidentByID", mock.Anything, manager, "r1").Return(&models.Resident{ID: "r1", FirstName: "Jane", LastName: "Doe"}, nil)

		report, err := f.usecase.BuildReport(ctx, manager, period)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", report.ResidentName)
		assert.Equal(t, 2, report.Summary.TotalRecorded)
		assert.InDelta(t, 50, report.Summary.SleepingPercent, 1e-9)
	})

	t.Run("Invalid period is a bad request", func(t *testing.T) {
		f := newUsecaseFixture(localTime(2025, time.April, 20, 9, 0))

		_, err := f.usecase.BuildReport(ctx, manager, &requests.ReportPeriod{ResidentID: "r1", Month: 13, Year: 2025})
		assertStatusCode(t, err, http.StatusBadRequest)
	})

	t.Run("CSV export falls back to the resident id", func(t *testing.T) {
		f := newUsecaseFixture(localTime(2025, time.April, 20, 9, 0))
		f.cache.On("FindEntries", mock.Anything, manager, "r1").Return(entries, nil)
		f.residentClient.On("FindResidentByID", mock.Anything, manager, "r1").Return(nil, errors.New("not found"))

		fileName, content, err := f.usecase.ExportReportCSV(ctx, manager, period)
		require.NoError(t, err)
		assert.Equal(t, "r1_Sleep_Report_April_2025.csv", fileName)
		assert.Contains(t, string(content), "1:00AM,S,A,")
	})

	t.Run("Published export returns a presigned URL", func(t *testing.T) {
		f := newUsecaseFixture(localTime(2025, time.April, 20, 9, 0))
		f.cache.On("FindEntries", mock.Anything, manager, "r1").Return(entries, nil)
		f.residentClient.On("FindResidentByID", mock.Anything, manager, "r1").Return(&models.Resident{ID: "r1", FirstName: "Jane"}, nil)
		f.storage.On("UploadBytes", mock.Anything, mock.Anything, "reports", mock.AnythingOfType("string"), constvars.MIMETextCSV).Return("object", nil)
		f.storage.On("GetObjectUrlWithExpiryTime", mock.Anything, "reports", mock.AnythingOfType("string"), 24*time.Hour).Return("https://minio.local/reports/object", nil)

		export, err := f.usecase.PublishReportExport(ctx, manager, period)
		require.NoError(t, err)
		assert.Equal(t, "Jane_Sleep_Report_April_2025.csv", export.FileName)
		assert.Equal(t, "https://minio.local/reports/object", export.URL)
		f.storage.AssertExpectations(t)
	})
}

func TestUsecaseFindSubmissionHistory(t *testing.T) {
	f := newUsecaseFixture(localTime(2025, time.April, 2, 12, 30))
	records := []models.SubmissionRecord{{ResidentID: "r1", Outcome: models.SubmissionOutcomeSuccess}}
	f.journal.On("FindByResident", mock.Anything, "r1", int64(50)).Return(records, nil).Once()

	got, err := f.usecase.FindSubmissionHistory(context.Background(), manager, "r1", 0)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	f.journal.AssertExpectations(t)
}
