package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/course-api/internal/auth"
	"github.com/crucial707/course-api/internal/metrics"
	"github.com/crucial707/course-api/internal/models"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type key string

const (
	UserIDKey      key = "user_id"
	CurrentUserKey key = "current_user"
)

// CourseIDParam is the chi URL parameter holding a course id on course-scoped routes.
const CourseIDParam = "id"

// BasicAuth authenticates the request with HTTP Basic credentials (email:password).
// On routes that carry a course id it also requires the user to own that course.
// Failures are answered here: 401 for bad credentials, 403 for a non-owner.
func BasicAuth(a *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, err := a.Decide(r.Context(), credentials(r), courseID(r))
			if err != nil {
				metrics.RecordAuthDecision("error")
				slog.Error("auth lookup failed",
					"request_id", chimw.GetReqID(r.Context()),
					"path", r.URL.Path,
					"error", err)
				writeMessage(w, http.StatusInternalServerError, err.Error())
				return
			}
			metrics.RecordAuthDecision(decision.Outcome.String())

			switch decision.Outcome {
			case auth.Authenticated:
				ctx := context.WithValue(r.Context(), UserIDKey, decision.User.ID)
				ctx = context.WithValue(ctx, CurrentUserKey, decision.User.Public())
				next.ServeHTTP(w, r.WithContext(ctx))
			case auth.Forbidden:
				writeMessage(w, http.StatusForbidden, decision.Reason)
			default:
				w.Header().Set("WWW-Authenticate", `Basic realm="course-api", charset="UTF-8"`)
				writeMessage(w, http.StatusUnauthorized, decision.Reason)
			}
		})
	}
}

func credentials(r *http.Request) *auth.Credentials {
	email, password, ok := r.BasicAuth()
	if !ok {
		return nil
	}
	return &auth.Credentials{Email: email, Password: password}
}

// courseID returns nil when the route has no id or the id is not a number;
// such a course cannot exist, so only the user is checked.
func courseID(r *http.Request) *int {
	raw := chi.URLParam(r, CourseIDParam)
	if raw == "" {
		return nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &id
}

// GetUserID returns the authenticated user's id, if any.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

// GetCurrentUser returns the public projection attached by BasicAuth.
func GetCurrentUser(ctx context.Context) (models.CurrentUser, bool) {
	u, ok := ctx.Value(CurrentUserKey).(models.CurrentUser)
	return u, ok
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
