package controllers

import (
	"context"
	"net/http"

	"carelog-service/internal/app/config"
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"
	"carelog-service/internal/pkg/dto/responses"
	"carelog-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// SelectionController serves the caregiver's slot picker. Every handler answers
// with the selection as it stands after the change.
type SelectionController struct {
	Log            *zap.Logger
	SleepUsecase   contracts.SleepUsecase
	InternalConfig *config.InternalConfig
}

func NewSelectionController(logger *zap.Logger, sleepUsecase contracts.SleepUsecase, internalConfig *config.InternalConfig) *SelectionController {
	return &SelectionController{
		Log:            logger,
		SleepUsecase:   sleepUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *SelectionController) FindSelection(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SelectionController.FindSelection")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	selection, err := ctrl.SleepUsecase.FindSelection(ctx, session)
	ctrl.respond(w, requestID, "FindSelection", constvars.GetSelectionSuccessMessage, selection, err)
}

func (ctrl *SelectionController) SelectResident(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SelectionController.SelectResident")
	if !ok {
		return
	}

	request := &requests.SelectResident{}
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "SelectionController.SelectResident", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	selection, err := ctrl.SleepUsecase.SelectResident(ctx, session, request)
	ctrl.respond(w, requestID, "SelectResident", constvars.UpdateSelectionSuccessMessage, selection, err)
}

func (ctrl *SelectionController) SetDate(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SelectionController.SetDate")
	if !ok {
		return
	}

	request := &requests.SetSelectionDate{}
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "SelectionController.SetDate", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	selection, err := ctrl.SleepUsecase.SetSelectionDate(ctx, session, request)
	ctrl.respond(w, requestID, "SetSelectionDate", constvars.UpdateSelectionSuccessMessage, selection, err)
}

func (ctrl *SelectionController) SetMode(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SelectionController.SetMode")
	if !ok {
		return
	}

	request := &requests.SetSelectionMode{}
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "SelectionController.SetMode", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	selection, err := ctrl.SleepUsecase.SetSelectionMode(ctx, session, request)
	ctrl.respond(w, requestID, "SetSelectionMode", constvars.UpdateSelectionSuccessMessage, selection, err)
}

func (ctrl *SelectionController) SetStatus(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SelectionController.SetStatus")
	if !ok {
		return
	}

	request := &requests.SetSelectionStatus{}
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "SelectionController.SetStatus", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	selection, err := ctrl.SleepUsecase.SetSelectionStatus(ctx, session, request)
	ctrl.respond(w, requestID, "SetSelectionStatus", constvars.UpdateSelectionSuccessMessage, selection, err)
}

func (ctrl *SelectionController) ToggleSlot(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SelectionController.ToggleSlot")
	if !ok {
		return
	}

	request := &requests.ToggleSlot{}
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "SelectionController.ToggleSlot", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	selection, err := ctrl.SleepUsecase.ToggleSlot(ctx, session, request)
	ctrl.respond(w, requestID, "ToggleSlot", constvars.UpdateSelectionSuccessMessage, selection, err)
}

func (ctrl *SelectionController) SelectTimeRange(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SelectionController.SelectTimeRange")
	if !ok {
		return
	}

	request := &requests.SelectTimeRange{}
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "SelectionController.SelectTimeRange", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	selection, err := ctrl.SleepUsecase.SelectTimeRange(ctx, session, request)
	ctrl.respond(w, requestID, "SelectTimeRange", constvars.UpdateSelectionSuccessMessage, selection, err)
}

func (ctrl *SelectionController) SubmitSelection(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "SelectionController.SubmitSelection")
	if !ok {
		return
	}

	request := &requests.SubmitSelection{}
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "SelectionController.SubmitSelection", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutSeconds))
	defer cancel()

	submission, err := ctrl.SleepUsecase.SubmitSelection(ctx, session, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase.SubmitSelection", err)
		return
	}

	code := constvars.StatusCreated
	message := constvars.CreateSleepEntrySuccessMessage
	if submission.Batch != nil {
		code = batchStatusCode(submission.Batch)
		message = submission.Batch.Message
	}

	ctrl.Log.Info("SelectionController.SubmitSelection succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("mode", string(submission.Mode)))
	utils.BuildSuccessResponse(w, code, message, submission)
}

func (ctrl *SelectionController) respond(w http.ResponseWriter, requestID, operation, message string, selection *responses.Selection, err error) {
	if err != nil {
		respondUsecaseError(ctrl.Log, w, requestID, "Error in SleepUsecase."+operation, err)
		return
	}

	ctrl.Log.Info("SelectionController."+operation+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("mode", string(selection.State.Mode)),
		zap.Int("selected_count", len(selection.State.Selected)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, selection)
}
