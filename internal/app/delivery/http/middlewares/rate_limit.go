package middlewares

import (
	"net/http"
	"time"

	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"

	"github.com/go-chi/httprate"
)

// RateLimit limits requests per IP. Requests authenticated with the service
// API key are not limited. It must run after Authenticate.
func (m *Middlewares) RateLimit(next http.Handler) http.Handler {
	limited := httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, ok := r.Context().Value(constvars.CONTEXT_AUTH_SESSION_KEY).(models.AuthSession); ok &&
			session.UserID == constvars.APIKeySuperuserID {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}
