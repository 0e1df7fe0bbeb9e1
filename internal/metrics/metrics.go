package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthDecisions counts Basic-auth decisions by result (authenticated, auth_failed, forbidden, error).
	AuthDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_decisions_total",
			Help: "Total number of Basic-auth decisions by result",
		},
		[]string{"result"},
	)

	// CourseMutations counts successful course writes by operation (create, update, delete).
	CourseMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_mutations_total",
			Help: "Total number of course writes by operation",
		},
		[]string{"operation"},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

// NormalizePath replaces numeric path segments with {id}, e.g. /api/courses/12 -> /api/courses/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

func RecordAuthDecision(result string) {
	AuthDecisions.WithLabelValues(result).Inc()
}

func RecordCourseMutation(operation string) {
	CourseMutations.WithLabelValues(operation).Inc()
}
