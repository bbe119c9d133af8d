package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/exceptions"
	"carelog-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

// requestScope pulls the request ID and caller session that the middlewares put
// in the request context. It writes the error response itself when either is
// missing.
func requestScope(log *zap.Logger, w http.ResponseWriter, r *http.Request, caller string) (string, models.AuthSession, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		log.Error(caller + " requestID not found in context")
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", models.AuthSession{}, false
	}

	session, ok := r.Context().Value(constvars.CONTEXT_AUTH_SESSION_KEY).(models.AuthSession)
	if !ok {
		log.Error(caller+" auth session not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingAuthSession(nil))
		return "", models.AuthSession{}, false
	}

	log.Info(caller+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingRoleKey, session.Role))
	return requestID, session, true
}

// decodeAndValidate reads a JSON body into request and runs struct validation.
// An empty body leaves request at its zero value.
func decodeAndValidate(log *zap.Logger, w http.ResponseWriter, r *http.Request, requestID, caller string, request interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil && !errors.Is(err, io.EOF) {
		log.Error(caller+" error decoding request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(log, w, exceptions.ErrCannotParseJSON(err))
		return false
	}

	if err := utils.ValidateStruct(request); err != nil {
		log.Error(caller+" error validating request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(log, w, exceptions.ErrInputValidation(err))
		return false
	}
	return true
}

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(seconds) * time.Second
}

func respondUsecaseError(log *zap.Logger, w http.ResponseWriter, requestID, caller string, err error) {
	log.Error(caller,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err))

	if err == context.DeadlineExceeded {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
