package middlewares

import (
	"context"
	"net/http"
	"strings"

	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/exceptions"
	"carelog-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate resolves the caller into a models.AuthSession. A valid service
// API key wins over a bearer token and yields the superuser role, calling the
// records API with the service token.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		if apiKey := r.Header.Get(constvars.HeaderXAPIKey); apiKey != "" {
			if !utils.CheckAPIKeyHash(apiKey, m.InternalConfig.App.SuperuserAPIKeyHash) {
				utils.LogSecurityEvent(m.Log, "invalid_api_key", requestID, "medium",
					zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr))
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
				return
			}

			session := models.AuthSession{
				Token:  m.InternalConfig.RemoteAPI.ServiceToken,
				Role:   constvars.RoleSuperuser,
				UserID: constvars.APIKeySuperuserID,
			}
			m.Log.Info("API key authentication successful",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingUserIDKey, session.UserID))
			next.ServeHTTP(w, r.WithContext(withAuthSession(r.Context(), session)))
			return
		}

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix))
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		claims, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate rejected bearer token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err))
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		session := models.AuthSession{
			Token:  token,
			Role:   claims.Role,
			UserID: claims.UserID,
		}
		next.ServeHTTP(w, r.WithContext(withAuthSession(r.Context(), session)))
	})
}

// RequireRoles rejects sessions whose role is not listed. It must run after
// Authenticate.
func (m *Middlewares) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := r.Context().Value(constvars.CONTEXT_AUTH_SESSION_KEY).(models.AuthSession)
			if !ok {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrMissingAuthSession(nil))
				return
			}

			if !session.HasAnyRole(roles...) {
				utils.LogSecurityEvent(m.Log, "role_not_permitted", utils.GetRequestID(r.Context()), "low",
					zap.String(constvars.LoggingUserIDKey, session.UserID),
					zap.String(constvars.LoggingRoleKey, session.Role),
					zap.String(constvars.LoggingEndpointKey, r.URL.Path))
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotPermitted(nil, session.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withAuthSession(ctx context.Context, session models.AuthSession) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_AUTH_SESSION_KEY, session)
}
