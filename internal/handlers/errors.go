package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/crucial707/course-api/internal/repo"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/lib/pq"
)

// HandlerFunc is a route handler that reports failures instead of writing them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrNotFound makes Wrap answer with the generic 404.
var ErrNotFound = repo.ErrNotFound

// ValidationError carries one message per failed field. It is answered with
// 400 and the messages as a JSON array.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Messages)
}

// HTTPError is answered with Status and {"message": Message, "error": {}}.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

func badRequest(format string, args ...any) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// PostgreSQL error classes that are the client's fault.
const (
	pqNotNullViolation    = "23502"
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
	pqStringTooLong       = "22001"
)

var columnAttributes = map[string]string{
	"first_name":       "firstName",
	"last_name":        "lastName",
	"email_address":    "emailAddress",
	"password":         "password",
	"user_id":          "userId",
	"title":            "title",
	"description":      "description",
	"estimated_time":   "estimatedTime",
	"materials_needed": "materialsNeeded",
}

var tableModels = map[string]string{
	"users":   "User",
	"courses": "Course",
}

var constraintMessages = map[string]string{
	"users_email_address_key": "emailAddress must be unique",
	"courses_user_id_fkey":    "userId must reference an existing user",
}

// constraintError maps a PostgreSQL constraint or data error to a ValidationError.
func constraintError(err error) (*ValidationError, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil, false
	}
	if msg, ok := constraintMessages[pqErr.Constraint]; ok {
		return &ValidationError{Messages: []string{msg}}, true
	}

	attr := columnAttributes[pqErr.Column]
	if attr == "" {
		attr = pqErr.Column
	}
	switch pqErr.Code {
	case pqNotNullViolation:
		return &ValidationError{Messages: []string{fmt.Sprintf("%s.%s cannot be null", tableModels[pqErr.Table], attr)}}, true
	case pqUniqueViolation:
		return &ValidationError{Messages: []string{"unique constraint violated: " + pqErr.Detail}}, true
	case pqForeignKeyViolation, pqCheckViolation, pqStringTooLong:
		return &ValidationError{Messages: []string{pqErr.Message}}, true
	}
	return nil, false
}

// ErrorHandler translates handler errors into responses.
type ErrorHandler struct {
	// LogErrors logs every 5xx with the request id.
	LogErrors bool
	Logger    *slog.Logger
}

// Wrap runs h with the zero ErrorHandler (no error logging).
func Wrap(h HandlerFunc) http.HandlerFunc {
	return ErrorHandler{}.Wrap(h)
}

func (e ErrorHandler) Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var validation *ValidationError
		if errors.As(err, &validation) {
			writeJSON(w, http.StatusBadRequest, validation.Messages)
			return
		}
		if v, ok := constraintError(err); ok {
			writeJSON(w, http.StatusBadRequest, v.Messages)
			return
		}
		if errors.Is(err, ErrNotFound) {
			NotFound(w, r)
			return
		}

		status := http.StatusInternalServerError
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Status
		}
		if status >= 500 && e.LogErrors {
			e.logger().Error("global error handler",
				"request_id", chimw.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
		}
		writeError(w, status, err.Error())
	}
}

func (e ErrorHandler) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// NotFound is the generic 404 for unmatched routes and missing resources.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Route Not Found"})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"message": message,
		"error":   map[string]any{},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
