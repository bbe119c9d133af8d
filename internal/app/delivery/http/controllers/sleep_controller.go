package controllers

import (
	"context"
	"net/http"
	"strconv"

	"carelog-service/internal/app/config"
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"
	"carelog-service/internal/pkg/exceptions"
	"carelog-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SleepController struct {
	Log            *zap.Logger
	SleepUsecase   contracts.SleepUsecase
	InternalConfig *config.InternalConfig
}

func NewSleepController(logger *zap.Logger, sleepUsecase contracts.SleepUsecase, internalConfig *config.InternalConfig) *SleepController {
	return &SleepController{
		Log:            logger,
		SleepUsecase:   sleepUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *SleepController) residentID(w http.ResponseWriter, r *http.Request, requestID string) (string, bool) {
	residentID := chi.URLParam(r, constvars.URLParamResidentID)
	if err := utils.ValidateUrlParamID(residentID); err != nil {
		ctrl.Log.Error("SleepController invalid resident ID in path",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamResidentID))
		return "", false
	}
	return residentID, true
}

func (ctrl *SleepController) FindEntries(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SleepController.FindEntries")
	if !ok {
		return
	}
	residentID, ok := ctrl.residentID(w, r, requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	entries, err := ctrl.SleepUsecase.FindEntries(ctx, session, residentID)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.FindEntries", err)
		return
	}

	ctrl.Log.Info("SleepController.FindEntries succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(entries)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSleepEntriesSuccessMessage, entries)
}

func (ctrl *SleepController) FindMissing(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SleepController.FindMissing")
	if !ok {
		return
	}
	residentID, ok := ctrl.residentID(w, r, requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	missing, err := ctrl.SleepUsecase.FindMissing(ctx, session, residentID, r.URL.Query().Get("date"))
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.FindMissing", err)
		return
	}

	ctrl.Log.Info("SleepController.FindMissing succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingMissingCountKey, missing.Total))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMissingSlotsSuccessMessage, missing)
}

func (ctrl *SleepController) SubmitSingle(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SleepController.SubmitSingle")
	if !ok {
		return
	}
	residentID, ok := ctrl.residentID(w, r, requestID)
	if !ok {
		return
	}

	request := &requests.SubmitSleepEntry{}
	request.ResidentID = residentID
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "SleepController.SubmitSingle", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	result, err := ctrl.SleepUsecase.SubmitSingle(ctx, session, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.SubmitSingle", err)
		return
	}

	ctrl.Log.Info("SleepController.SubmitSingle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, residentID),
		zap.String(constvars.LoggingSlotKey, request.Slot))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateSleepEntrySuccessMessage, result)
}

func (ctrl *SleepController) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SleepController.SubmitBatch")
	if !ok {
		return
	}
	residentID, ok := ctrl.residentID(w, r, requestID)
	if !ok {
		return
	}

	request := &requests.SubmitSleepBatch{}
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "SleepController.SubmitBatch", request) {
		return
	}
	request.ResidentID = residentID

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	summary, err := ctrl.SleepUsecase.SubmitBatch(ctx, session, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.SubmitBatch", err)
		return
	}

	ctrl.Log.Info("SleepController.SubmitBatch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutcomeKey, string(summary.Outcome)),
		zap.Int(constvars.LoggingSuccessCountKey, summary.Succeeded),
		zap.Int(constvars.LoggingFailureCountKey, summary.Failed))
	utils.BuildSuccessResponse(w, batchStatusCode(summary), summary.Message, summary)
}

func (ctrl *SleepController) FindSubmissionHistory(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SleepController.FindSubmissionHistory")
	if !ok {
		return
	}
	residentID, ok := ctrl.residentID(w, r, requestID)
	if !ok {
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidFormat(err, "limit"))
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	records, err := ctrl.SleepUsecase.FindSubmissionHistory(ctx, session, residentID, limit)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.FindSubmissionHistory", err)
		return
	}

	ctrl.Log.Info("SleepController.FindSubmissionHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(records)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSubmissionHistorySuccessMessage, records)
}

// batchStatusCode answers 207 when only part of a batch was recorded and 502
// when every attempted post failed.
func batchStatusCode(summary *models.BatchSummary) int {
	switch {
	case summary.Outcome == models.SubmissionOutcomePartial:
		return constvars.StatusMultiStatus
	case summary.Failed > 0 && summary.Succeeded == 0:
		return constvars.StatusBadGateway
	default:
		return constvars.StatusOK
	}
}
