package controllers

import (
	"context"
	"net/http"
	"time"

	"carelog-service/internal/app/config"
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"
	"carelog-service/internal/pkg/exceptions"
	"carelog-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReportController struct {
	Log            *zap.Logger
	SleepUsecase   contracts.SleepUsecase
	InternalConfig *config.InternalConfig
}

func NewReportController(logger *zap.Logger, sleepUsecase contracts.SleepUsecase, internalConfig *config.InternalConfig) *ReportController {
	return &ReportController{
		Log:            logger,
		SleepUsecase:   sleepUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *ReportController) reportPeriod(w http.ResponseWriter, r *http.Request, requestID string) (*requests.ReportPeriod, bool) {
	residentID := chi.URLParam(r, constvars.URLParamResidentID)
	if err := utils.ValidateUrlParamID(residentID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamResidentID))
		return nil, false
	}

	month, year, err := utils.ParseReportPeriod(r, time.Now())
	if err != nil {
		ctrl.Log.Error("ReportController invalid report period",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidFormat(err, "month or year"))
		return nil, false
	}

	return &requests.ReportPeriod{
		ResidentID: residentID,
		Month:      month,
		Year:       year,
	}, true
}

func (ctrl *ReportController) BuildReport(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "ReportController.BuildReport")
	if !ok {
		return
	}
	request, ok := ctrl.reportPeriod(w, r, requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	report, err := ctrl.SleepUsecase.BuildReport(ctx, session, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.BuildReport", err)
		return
	}

	ctrl.Log.Info("ReportController.BuildReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, request.ResidentID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSleepReportSuccessMessage, report)
}

func (ctrl *ReportController) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "ReportController.DownloadCSV")
	if !ok {
		return
	}
	request, ok := ctrl.reportPeriod(w, r, requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	fileName, content, err := ctrl.SleepUsecase.ExportReportCSV(ctx, session, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.ExportReportCSV", err)
		return
	}

	ctrl.Log.Info("ReportController.DownloadCSV succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, fileName),
		zap.Int(constvars.LoggingResponseLengthKey, len(content)))
	utils.BuildFileResponse(w, constvars.MIMETextCSVCharsetUTF8, fileName, content)
}

func (ctrl *ReportController) PublishExport(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "ReportController.PublishExport")
	if !ok {
		return
	}
	request, ok := ctrl.reportPeriod(w, r, requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	export, err := ctrl.SleepUsecase.PublishReportExport(ctx, session, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.PublishReportExport", err)
		return
	}

	ctrl.Log.Info("ReportController.PublishExport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, export.FileName))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ExportSleepReportSuccessMessage, export)
}
