package sleeps

import (
	"context"
	"errors"
	"time"

	"carelog-service/internal/app/config"
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"
	"carelog-service/internal/pkg/dto/responses"
	"carelog-service/internal/pkg/exceptions"
	"carelog-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const defaultHistoryLimit = 50

type sleepUsecase struct {
	EntryCache     contracts.SleepEntryCache
	ResidentClient contracts.ResidentApiClient
	SelectionStore contracts.SelectionStore
	NoticeService  contracts.NoticeService
	Journal        contracts.SubmissionJournal
	Storage        contracts.Storage
	Coordinator    *SubmissionCoordinator
	Calendar       *Calendar
	Detector       *MissingEntryDetector
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewSleepUsecase(
	sleepClient contracts.SleepApiClient,
	residentClient contracts.ResidentApiClient,
	entryCache contracts.SleepEntryCache,
	inflight contracts.InFlightTracker,
	selectionStore contracts.SelectionStore,
	noticeService contracts.NoticeService,
	journal contracts.SubmissionJournal,
	storage contracts.Storage,
	calendar *Calendar,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SleepUsecase {
	return &sleepUsecase{
		EntryCache:     entryCache,
		ResidentClient: residentClient,
		SelectionStore: selectionStore,
		NoticeService:  noticeService,
		Journal:        journal,
		Storage:        storage,
		Coordinator:    NewSubmissionCoordinator(sleepClient, entryCache, inflight, calendar.Now, logger),
		Calendar:       calendar,
		Detector:       NewMissingEntryDetector(calendar),
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

func requireRole(session models.AuthSession, roles ...string) error {
	if !session.HasAnyRole(roles...) {
		return exceptions.ErrRoleNotPermitted(nil, session.Role)
	}
	return nil
}

func (uc *sleepUsecase) FindEntries(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("sleepUsecase.FindEntries called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, residentID),
	)

	entries, err := uc.EntryCache.FindEntries(ctx, session, residentID)
	if err != nil {
		uc.Log.Error("sleepUsecase.FindEntries error calling EntryCache.FindEntries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("sleepUsecase.FindEntries succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("entry_count", len(entries)),
	)
	return entries, nil
}

func (uc *sleepUsecase) FindMissing(ctx context.Context, session models.AuthSession, residentID, date string) (*responses.MissingSlots, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("sleepUsecase.FindMissing called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, residentID),
		zap.String(constvars.LoggingDateKey, date),
	)

	if date != "" && !IsValidDate(date) {
		return nil, exceptions.ErrInvalidFormat(nil, "date")
	}

	entries, err := uc.EntryCache.FindEntries(ctx, session, residentID)
	if err != nil {
		uc.Log.Error("sleepUsecase.FindMissing error calling EntryCache.FindEntries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	missing := uc.Detector.ComputeMissing(entries)
	if date != "" {
		missing = MissingForDate(missing, date)
	}
	if missing == nil {
		missing = []models.MissingSlot{}
	}

	uc.Log.Info("sleepUsecase.FindMissing succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingMissingCountKey, len(missing)),
	)
	return &responses.MissingSlots{
		ResidentID: residentID,
		Date:       date,
		Total:      len(missing),
		Slots:      missing,
	}, nil
}

func (uc *sleepUsecase) SubmitSingle(ctx context.Context, session models.AuthSession, request *requests.SubmitSleepEntry) (*models.SingleSubmissionResult, error) {
	if err := requireRole(session, constvars.RoleCareGiver); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	result, err := uc.Coordinator.SubmitSingle(ctx, session, SingleSubmission{
		ResidentID:       request.ResidentID,
		Date:             request.Date,
		Slot:             request.Slot,
		Status:           request.Status,
		ReasonFilledLate: request.ReasonFilledLate,
	})
	return uc.finishSingle(ctx, session, request.ResidentID, request.Status, request.Date, request.Slot, result, err)
}

func (uc *sleepUsecase) finishSingle(ctx context.Context, session models.AuthSession, residentID, status, date, slot string, result *models.SingleSubmissionResult, err error) (*models.SingleSubmissionResult, error) {
	if err != nil {
		customErr := toCustomError(err)
		uc.notify(ctx, session, models.NoticeKindError, clientMessage(customErr))
		if !isPrecondition(err) {
			uc.record(ctx, session, residentID, status, false, models.SubmissionOutcomeFailure, []models.SlotResult{{
				Date: date, Slot: slot, Status: models.SlotResultFailed, Error: err.Error(),
			}})
		}
		return nil, customErr
	}

	uc.notify(ctx, session, models.NoticeKindSuccess, constvars.CreateSleepEntrySuccessMessage)
	uc.record(ctx, session, residentID, status, false, models.SubmissionOutcomeSuccess, []models.SlotResult{{
		Date: date, Slot: slot, Status: models.SlotResultSucceeded,
	}})
	return result, nil
}

func (uc *sleepUsecase) SubmitBatch(ctx context.Context, session models.AuthSession, request *requests.SubmitSleepBatch) (*models.BatchSummary, error) {
	if err := requireRole(session, constvars.RoleCareGiver); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	slots := make([]models.MissingSlot, 0, len(request.Slots))
	for _, slot := range request.Slots {
		slots = append(slots, models.MissingSlot{Date: slot.Date, Slot: slot.Slot})
	}

	summary, err := uc.Coordinator.SubmitBatch(ctx, session, BatchSubmission{
		ResidentID:       request.ResidentID,
		Status:           request.Status,
		ReasonFilledLate: request.ReasonFilledLate,
		Slots:            slots,
	})
	return uc.finishBatch(ctx, session, request.ResidentID, request.Status, summary, err)
}

func (uc *sleepUsecase) finishBatch(ctx context.Context, session models.AuthSession, residentID, status string, summary *models.BatchSummary, err error) (*models.BatchSummary, error) {
	if err != nil {
		customErr := toCustomError(err)
		uc.notify(ctx, session, models.NoticeKindError, clientMessage(customErr))
		return nil, customErr
	}

	kind := models.NoticeKindSuccess
	if summary.Outcome != models.SubmissionOutcomeSuccess {
		kind = models.NoticeKindError
	}
	uc.notify(ctx, session, kind, summary.Message)
	uc.record(ctx, session, residentID, status, true, summary.Outcome, summary.Results)
	return summary, nil
}

func (uc *sleepUsecase) FindSelection(ctx context.Context, session models.AuthSession) (*responses.Selection, error) {
	controller, missing, err := uc.loadSelection(ctx, session)
	if err != nil {
		return nil, err
	}
	return uc.selectionResponse(controller, missing), nil
}

func (uc *sleepUsecase) SelectResident(ctx context.Context, session models.AuthSession, request *requests.SelectResident) (*responses.Selection, error) {
	if err := requireRole(session, constvars.RoleCareGiver); err != nil {
		return nil, err
	}

	date := request.Date
	if date == "" {
		date = uc.Calendar.Now().Format(constvars.DateLayout)
	}

	controller := NewSlotSelectionController(nil)
	controller.SelectResident(request.ResidentID, date)
	missing, err := uc.syncSelection(ctx, session, controller)
	if err != nil {
		return nil, err
	}
	return uc.saveSelection(ctx, session, controller, missing)
}

func (uc *sleepUsecase) SetSelectionDate(ctx context.Context, session models.AuthSession, request *requests.SetSelectionDate) (*responses.Selection, error) {
	return uc.mutateSelection(ctx, session, func(controller *SlotSelectionController) error {
		return controller.SetDate(request.Date)
	})
}

func (uc *sleepUsecase) SetSelectionMode(ctx context.Context, session models.AuthSession, request *requests.SetSelectionMode) (*responses.Selection, error) {
	return uc.mutateSelection(ctx, session, func(controller *SlotSelectionController) error {
		return controller.SetBatchMode(request.Batch)
	})
}

func (uc *sleepUsecase) SetSelectionStatus(ctx context.Context, session models.AuthSession, request *requests.SetSelectionStatus) (*responses.Selection, error) {
	return uc.mutateSelection(ctx, session, func(controller *SlotSelectionController) error {
		return controller.SetBatchStatus(request.Status)
	})
}

func (uc *sleepUsecase) ToggleSlot(ctx context.Context, session models.AuthSession, request *requests.ToggleSlot) (*responses.Selection, error) {
	return uc.mutateSelection(ctx, session, func(controller *SlotSelectionController) error {
		return controller.Click(request.Date, request.Slot)
	})
}

func (uc *sleepUsecase) SelectTimeRange(ctx context.Context, session models.AuthSession, request *requests.SelectTimeRange) (*responses.Selection, error) {
	return uc.mutateSelection(ctx, session, func(controller *SlotSelectionController) error {
		return controller.SelectTimeRange(request.StartSlot, request.EndSlot)
	})
}

// SubmitSelection submits the stored selection: the single candidate in single
// mode, the whole set in batch mode. A finished batch always clears the set.
func (uc *sleepUsecase) SubmitSelection(ctx context.Context, session models.AuthSession, request *requests.SubmitSelection) (*responses.SelectionSubmission, error) {
	if err := requireRole(session, constvars.RoleCareGiver); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	controller, _, err := uc.loadSelection(ctx, session)
	if err != nil {
		return nil, err
	}
	residentID := controller.ResidentID()
	if residentID == "" || controller.Mode() == models.SelectionModeIdle {
		return nil, uc.rejectSelection(ctx, session, ErrNoResidentSelected)
	}

	submission := &responses.SelectionSubmission{Mode: controller.Mode()}
	var entries []models.SleepEntry

	switch controller.Mode() {
	case models.SelectionModeBatch:
		status := request.Status
		if status == "" {
			status = controller.State().BatchStatus
		}
		summary, err := uc.Coordinator.SubmitBatch(ctx, session, BatchSubmission{
			ResidentID:       residentID,
			Status:           status,
			ReasonFilledLate: request.ReasonFilledLate,
			Slots:            controller.Selection(),
		})
		summary, err = uc.finishBatch(ctx, session, residentID, status, summary, err)
		if err != nil {
			return nil, err
		}
		submission.Batch = summary
		entries = summary.Entries

	default:
		candidate := controller.SingleCandidate()
		if candidate == nil {
			return nil, uc.rejectSelection(ctx, session, ErrEmptySelection)
		}
		result, err := uc.Coordinator.SubmitSingle(ctx, session, SingleSubmission{
			ResidentID:       residentID,
			Date:             candidate.Date,
			Slot:             candidate.Slot,
			Status:           request.Status,
			ReasonFilledLate: request.ReasonFilledLate,
		})
		result, err = uc.finishSingle(ctx, session, residentID, request.Status, candidate.Date, candidate.Slot, result, err)
		if err != nil {
			return nil, err
		}
		submission.Single = result
		entries = result.Entries
	}

	controller.ClearSelection()
	if entries == nil {
		entries, err = uc.EntryCache.FindEntries(ctx, session, residentID)
		if err != nil {
			return nil, err
		}
	}
	missing := uc.Detector.ComputeMissing(entries)
	controller.Sync(entries, missing)

	selection, err := uc.saveSelection(ctx, session, controller, missing)
	if err != nil {
		return nil, err
	}
	submission.Selection = *selection
	return submission, nil
}

func (uc *sleepUsecase) BuildReport(ctx context.Context, session models.AuthSession, request *requests.ReportPeriod) (*models.SleepReport, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("sleepUsecase.BuildReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, request.ResidentID),
		zap.Int("month", request.Month),
		zap.Int("year", request.Year),
	)

	if err := requireRole(session, constvars.RoleManager, constvars.RoleSuperuser); err != nil {
		return nil, err
	}
	if err := ValidatePeriod(request.Month, request.Year); err != nil {
		return nil, exceptions.ErrInvalidReportPeriod(err, request.Month, request.Year)
	}

	entries, err := uc.EntryCache.FindEntries(ctx, session, request.ResidentID)
	if err != nil {
		uc.Log.Error("sleepUsecase.BuildReport error calling EntryCache.FindEntries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	report, err := BuildReport(request.ResidentID, uc.residentName(ctx, session, request.ResidentID), entries, request.Month, request.Year)
	if err != nil {
		return nil, exceptions.ErrInvalidReportPeriod(err, request.Month, request.Year)
	}

	uc.Log.Info("sleepUsecase.BuildReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("total_recorded", report.Summary.TotalRecorded),
	)
	return report, nil
}

func (uc *sleepUsecase) ExportReportCSV(ctx context.Context, session models.AuthSession, request *requests.ReportPeriod) (string, []byte, error) {
	report, err := uc.BuildReport(ctx, session, request)
	if err != nil {
		return "", nil, err
	}

	content, err := RenderReportCSV(report)
	if err != nil {
		return "", nil, exceptions.ErrWriteReportCSV(err)
	}

	name := report.ResidentName
	if name == "" {
		name = report.ResidentID
	}
	return ReportFileName(name, request.Month, request.Year), content, nil
}

func (uc *sleepUsecase) PublishReportExport(ctx context.Context, session models.AuthSession, request *requests.ReportPeriod) (*responses.ReportExport, error) {
	requestID := utils.GetRequestID(ctx)

	fileName, content, err := uc.ExportReportCSV(ctx, session, request)
	if err != nil {
		return nil, err
	}

	bucketName := uc.InternalConfig.Minio.ReportBucketName
	objectName := utils.GenerateObjectName("sleep-reports", request.ResidentID, fileName)
	_, err = uc.Storage.UploadBytes(ctx, content, bucketName, objectName, constvars.MIMETextCSV)
	if err != nil {
		uc.Log.Error("sleepUsecase.PublishReportExport error calling Storage.UploadBytes",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PresignedURLExpiryInHours) * time.Hour
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, expiry)
	if err != nil {
		uc.Log.Error("sleepUsecase.PublishReportExport error calling Storage.GetObjectUrlWithExpiryTime",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("sleepUsecase.PublishReportExport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, bucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return &responses.ReportExport{FileName: fileName, URL: url}, nil
}

func (uc *sleepUsecase) FindSubmissionHistory(ctx context.Context, session models.AuthSession, residentID string, limit int64) ([]models.SubmissionRecord, error) {
	if err := requireRole(session, constvars.RoleManager, constvars.RoleSuperuser); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return uc.Journal.FindByResident(ctx, residentID, limit)
}

func (uc *sleepUsecase) FindNotice(ctx context.Context, session models.AuthSession) (*models.Notice, error) {
	return uc.NoticeService.Current(ctx, session.UserID)
}

func (uc *sleepUsecase) residentName(ctx context.Context, session models.AuthSession, residentID string) string {
	resident, err := uc.ResidentClient.FindResidentByID(ctx, session, residentID)
	if err != nil || resident == nil {
		uc.Log.Warn("sleepUsecase.residentName falling back to resident id",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingResidentIDKey, residentID),
			zap.Error(err),
		)
		return ""
	}
	return resident.FullName()
}

func (uc *sleepUsecase) mutateSelection(ctx context.Context, session models.AuthSession, mutate func(*SlotSelectionController) error) (*responses.Selection, error) {
	if err := requireRole(session, constvars.RoleCareGiver); err != nil {
		return nil, err
	}

	controller, missing, err := uc.loadSelection(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := mutate(controller); err != nil {
		return nil, uc.rejectSelection(ctx, session, err)
	}
	return uc.saveSelection(ctx, session, controller, missing)
}

func (uc *sleepUsecase) loadSelection(ctx context.Context, session models.AuthSession) (*SlotSelectionController, []models.MissingSlot, error) {
	state, err := uc.SelectionStore.Find(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	controller := NewSlotSelectionController(state)
	missing, err := uc.syncSelection(ctx, session, controller)
	if err != nil {
		return nil, nil, err
	}
	return controller, missing, nil
}

func (uc *sleepUsecase) syncSelection(ctx context.Context, session models.AuthSession, controller *SlotSelectionController) ([]models.MissingSlot, error) {
	if controller.ResidentID() == "" {
		return nil, nil
	}
	entries, err := uc.EntryCache.FindEntries(ctx, session, controller.ResidentID())
	if err != nil {
		return nil, err
	}
	missing := uc.Detector.ComputeMissing(entries)
	controller.Sync(entries, missing)
	return missing, nil
}

func (uc *sleepUsecase) saveSelection(ctx context.Context, session models.AuthSession, controller *SlotSelectionController, missing []models.MissingSlot) (*responses.Selection, error) {
	state := controller.State()
	if err := uc.SelectionStore.Save(ctx, session.UserID, &state); err != nil {
		return nil, err
	}
	return uc.selectionResponse(controller, missing), nil
}

func (uc *sleepUsecase) selectionResponse(controller *SlotSelectionController, missing []models.MissingSlot) *responses.Selection {
	candidates := controller.Candidates(missing)
	if candidates == nil {
		candidates = []models.MissingSlot{}
	}
	return &responses.Selection{State: controller.State(), Candidates: candidates}
}

func (uc *sleepUsecase) rejectSelection(ctx context.Context, session models.AuthSession, err error) error {
	customErr := toCustomError(err)
	uc.notify(ctx, session, models.NoticeKindError, clientMessage(customErr))
	return customErr
}

func (uc *sleepUsecase) notify(ctx context.Context, session models.AuthSession, kind models.NoticeKind, message string) {
	if err := uc.NoticeService.Push(ctx, session.UserID, kind, message); err != nil {
		uc.Log.Warn("sleepUsecase.notify error calling NoticeService.Push",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingUserIDKey, session.UserID),
			zap.Error(err),
		)
	}
}

func (uc *sleepUsecase) record(ctx context.Context, session models.AuthSession, residentID, status string, batch bool, outcome models.SubmissionOutcome, results []models.SlotResult) {
	record := &models.SubmissionRecord{
		ResidentID:  residentID,
		UserID:      session.UserID,
		Role:        session.Role,
		Status:      status,
		Batch:       batch,
		Outcome:     outcome,
		Results:     results,
		SubmittedAt: uc.Calendar.Now().UTC(),
	}
	for _, result := range results {
		switch result.Status {
		case models.SlotResultSucceeded:
			record.Succeeded++
		case models.SlotResultFailed:
			record.Failed++
		case models.SlotResultSkipped:
			record.Skipped++
		}
	}

	if err := uc.Journal.Record(ctx, record); err != nil {
		uc.Log.Warn("sleepUsecase.record error calling Journal.Record",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingResidentIDKey, residentID),
			zap.Error(err),
		)
	}
}

func isPrecondition(err error) bool {
	for _, target := range []error{
		ErrNoResidentSelected, ErrNoStatusChosen, ErrInvalidStatus, ErrEmptySelection,
		ErrInvalidTimeRange, ErrNoDateSelected, ErrSlotAlreadyFilled, ErrSlotInFlight, ErrSlotNotEligible,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func clientMessage(err error) string {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.ClientMessage
	}
	return constvars.ErrClientGenericError
}
