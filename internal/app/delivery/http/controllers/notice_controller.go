package controllers

import (
	"context"
	"net/http"

	"carelog-service/internal/app/config"
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type NoticeController struct {
	Log            *zap.Logger
	SleepUsecase   contracts.SleepUsecase
	InternalConfig *config.InternalConfig
}

func NewNoticeController(logger *zap.Logger, sleepUsecase contracts.SleepUsecase, internalConfig *config.InternalConfig) *NoticeController {
	return &NoticeController{
		Log:            logger,
		SleepUsecase:   sleepUsecase,
		InternalConfig: internalConfig,
	}
}

// FindNotice answers with data null once the last notice has expired.
func (ctrl *NoticeController) FindNotice(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "NoticeController.FindNotice")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	notice, err := ctrl.SleepUsecase.FindNotice(ctx, session)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.FindNotice", err)
		return
	}

	ctrl.Log.Info("NoticeController.FindNotice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("has_notice", notice != nil))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetNoticeSuccessMessage, notice)
}
