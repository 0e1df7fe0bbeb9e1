package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/api/courses/12":  "/api/courses/{id}",
		"/api/courses/12/": "/api/courses/{id}/",
		"/api/courses":     "/api/courses",
		"/api/users":       "/api/users",
		"/api/courses/abc": "/api/courses/abc",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordAuthDecision(t *testing.T) {
	before := testutil.ToFloat64(AuthDecisions.WithLabelValues("forbidden"))
	RecordAuthDecision("forbidden")
	if got := testutil.ToFloat64(AuthDecisions.WithLabelValues("forbidden")); got != before+1 {
		t.Errorf("auth_decisions_total{result=forbidden}: got %v, want %v", got, before+1)
	}
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/courses/{id}", "200"))
	RecordRequest("GET", "/api/courses/7", 200, 0.01)
	if got := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/courses/{id}", "200")); got != before+1 {
		t.Errorf("http_requests_total: got %v, want %v", got, before+1)
	}
}
