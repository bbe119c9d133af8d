package sleeps

import (
	"context"
	"fmt"
	"time"

	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"

	"go.uber.org/zap"
)

type SingleSubmission struct {
	ResidentID       string
	Date             string
	Slot             string
	Status           string
	ReasonFilledLate string
}

type BatchSubmission struct {
	ResidentID       string
	Status           string
	ReasonFilledLate string
	Slots            []models.MissingSlot
}

// SubmissionCoordinator posts sleep entries to the records API. Batches are
// posted one slot at a time and the resident's entries are refetched once
// after every submission.
type SubmissionCoordinator struct {
	sleeps   contracts.SleepApiClient
	entries  contracts.SleepEntryCache
	inflight contracts.InFlightTracker
	now      func() time.Time
	Log      *zap.Logger
}

func NewSubmissionCoordinator(
	sleepClient contracts.SleepApiClient,
	entryCache contracts.SleepEntryCache,
	inflight contracts.InFlightTracker,
	now func() time.Time,
	logger *zap.Logger,
) *SubmissionCoordinator {
	if now == nil {
		now = time.Now
	}
	return &SubmissionCoordinator{
		sleeps:   sleepClient,
		entries:  entryCache,
		inflight: inflight,
		now:      now,
		Log:      logger,
	}
}

func checkStatus(status string) error {
	if status == "" {
		return ErrNoStatusChosen
	}
	if !models.IsValidSleepStatus(status) {
		return ErrInvalidStatus
	}
	return nil
}

func (c *SubmissionCoordinator) SubmitSingle(ctx context.Context, session models.AuthSession, submission SingleSubmission) (*models.SingleSubmissionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("SubmissionCoordinator.SubmitSingle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, submission.ResidentID),
		zap.String(constvars.LoggingDateKey, submission.Date),
		zap.String(constvars.LoggingSlotKey, submission.Slot),
	)

	if submission.ResidentID == "" {
		return nil, ErrNoResidentSelected
	}
	if err := checkStatus(submission.Status); err != nil {
		return nil, err
	}
	if _, ok := SlotIndex(submission.Slot); !ok || !IsValidDate(submission.Date) {
		return nil, ErrSlotNotEligible
	}

	// The slot stays locked from the filled check until the refetch has
	// returned, so a second submitter sees the new entry.
	key := inFlightKey(submission.ResidentID, submission.Date, submission.Slot)
	acquired, err := c.inflight.TryAcquire(ctx, key)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrSlotInFlight
	}
	defer c.inflight.Release(ctx, key)

	current, err := c.entries.FindEntries(ctx, session, submission.ResidentID)
	if err != nil {
		c.Log.Error("SubmissionCoordinator.SubmitSingle error fetching entries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if _, filled := IndexEntries(current)[models.SlotKey(submission.Date, submission.Slot)]; filled {
		return nil, ErrSlotAlreadyFilled
	}
	if !IsPast(submission.Date, submission.Slot, c.now()) {
		return nil, ErrSlotNotEligible
	}

	entry, err := c.sleeps.CreateSleep(ctx, session, &requests.CreateSleepEntry{
		Resident:         submission.ResidentID,
		MarkAs:           submission.Status,
		DateTaken:        submission.Date,
		ReasonFilledLate: submission.ReasonFilledLate,
		MarkedFor:        submission.Slot,
	})
	if err != nil {
		c.Log.Error("SubmissionCoordinator.SubmitSingle error creating sleep entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotKeyKey, key),
			zap.Error(err),
		)
		return nil, err
	}

	result := &models.SingleSubmissionResult{Entry: entry}
	result.Entries = c.refresh(ctx, session, submission.ResidentID, requestID)

	c.Log.Info("SubmissionCoordinator.SubmitSingle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotKeyKey, key),
	)
	return result, nil
}

// SubmitBatch posts every slot sequentially and keeps going after a failed
// slot. Slots that are already in flight elsewhere, filled meanwhile or not
// yet past are skipped without a request.
func (c *SubmissionCoordinator) SubmitBatch(ctx context.Context, session models.AuthSession, submission BatchSubmission) (*models.BatchSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("SubmissionCoordinator.SubmitBatch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, submission.ResidentID),
		zap.Int("slot_count", len(submission.Slots)),
	)

	if submission.ResidentID == "" {
		return nil, ErrNoResidentSelected
	}
	if err := checkStatus(submission.Status); err != nil {
		return nil, err
	}
	slots := dedupeSlots(submission.Slots)
	if len(slots) == 0 {
		return nil, ErrEmptySelection
	}

	results := make([]models.SlotResult, len(slots))
	acquired := make([]bool, len(slots))
	for i, slot := range slots {
		results[i] = models.SlotResult{Date: slot.Date, Slot: slot.Slot}
		key := inFlightKey(submission.ResidentID, slot.Date, slot.Slot)
		ok, err := c.inflight.TryAcquire(ctx, key)
		switch {
		case err != nil:
			results[i].Status = models.SlotResultSkipped
			results[i].Error = err.Error()
		case !ok:
			results[i].Status = models.SlotResultSkipped
			results[i].Error = ErrSlotInFlight.Error()
		default:
			acquired[i] = true
			defer c.inflight.Release(ctx, key)
		}
	}

	// Entries are read only after the slots are locked.
	current, err := c.entries.FindEntries(ctx, session, submission.ResidentID)
	if err != nil {
		c.Log.Error("SubmissionCoordinator.SubmitBatch error fetching entries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	filled := IndexEntries(current)

	summary := &models.BatchSummary{Total: len(slots)}
	now := c.now()
	for i, slot := range slots {
		if !acquired[i] {
			summary.Skipped++
			continue
		}
		key := inFlightKey(submission.ResidentID, slot.Date, slot.Slot)

		if _, ok := filled[slot.Key()]; ok {
			results[i].Status = models.SlotResultSkipped
			results[i].Error = ErrSlotAlreadyFilled.Error()
			summary.Skipped++
			continue
		}
		if !IsValidDate(slot.Date) || !IsPast(slot.Date, slot.Slot, now) {
			results[i].Status = models.SlotResultSkipped
			results[i].Error = ErrSlotNotEligible.Error()
			summary.Skipped++
			continue
		}

		entry, err := c.sleeps.CreateSleep(ctx, session, &requests.CreateSleepEntry{
			Resident:         submission.ResidentID,
			MarkAs:           submission.Status,
			DateTaken:        slot.Date,
			ReasonFilledLate: submission.ReasonFilledLate,
			MarkedFor:        slot.Slot,
		})
		if err != nil {
			c.Log.Warn("SubmissionCoordinator.SubmitBatch slot failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSlotKeyKey, key),
				zap.Error(err),
			)
			results[i].Status = models.SlotResultFailed
			results[i].Error = err.Error()
			summary.Failed++
			continue
		}

		results[i].Status = models.SlotResultSucceeded
		summary.Succeeded++
		if entry != nil {
			filled[slot.Key()] = *entry
		}
	}

	summary.Results = results
	summary.Outcome, summary.Message = summarizeBatch(summary)
	summary.Entries = c.refresh(ctx, session, submission.ResidentID, requestID)

	c.Log.Info("SubmissionCoordinator.SubmitBatch completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutcomeKey, string(summary.Outcome)),
		zap.Int(constvars.LoggingSuccessCountKey, summary.Succeeded),
		zap.Int(constvars.LoggingFailureCountKey, summary.Failed),
		zap.Int(constvars.LoggingSkippedCountKey, summary.Skipped),
	)
	return summary, nil
}

// refresh refetches the resident's entries. A failed refetch does not undo a
// recorded submission, so it is only logged.
func (c *SubmissionCoordinator) refresh(ctx context.Context, session models.AuthSession, residentID, requestID string) []models.SleepEntry {
	entries, err := c.entries.Refresh(ctx, session, residentID)
	if err != nil {
		c.Log.Warn("SubmissionCoordinator.refresh error refetching entries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResidentIDKey, residentID),
			zap.Error(err),
		)
		return nil
	}
	return entries
}

func summarizeBatch(summary *models.BatchSummary) (models.SubmissionOutcome, string) {
	var (
		outcome models.SubmissionOutcome
		message string
	)
	switch {
	case summary.Failed == 0 && summary.Skipped == 0:
		return models.SubmissionOutcomeSuccess, fmt.Sprintf(constvars.BatchSubmitAllSucceededFormat, summary.Succeeded)
	case summary.Succeeded > 0:
		outcome = models.SubmissionOutcomePartial
		message = fmt.Sprintf(constvars.BatchSubmitPartialFormat, summary.Succeeded)
		if summary.Failed > 0 {
			message += fmt.Sprintf(constvars.BatchSubmitFailedSuffixFormat, summary.Failed)
		}
	case summary.Failed > 0:
		outcome = models.SubmissionOutcomeFailure
		message = fmt.Sprintf(constvars.BatchSubmitAllFailedFormat, summary.Failed)
	default:
		outcome = models.SubmissionOutcomeFailure
		message = constvars.BatchSubmitNoneRecorded
	}
	if summary.Skipped > 0 {
		message += fmt.Sprintf(constvars.BatchSubmitSkippedSuffixFormat, summary.Skipped)
	}
	return outcome, message
}

func dedupeSlots(slots []models.MissingSlot) []models.MissingSlot {
	seen := make(map[string]struct{}, len(slots))
	unique := make([]models.MissingSlot, 0, len(slots))
	for _, slot := range slots {
		if _, ok := seen[slot.Key()]; ok {
			continue
		}
		seen[slot.Key()] = struct{}{}
		unique = append(unique, slot)
	}
	return unique
}
