package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New(nil)
	m.IncrementFieldValidation("email", ResultInvalid)
	m.IncrementFieldValidation("email", ResultInvalid)
	m.IncrementAdvanceAttempt(OutcomeRejected)
	m.IncrementSessionStarted()

	if got := testutil.ToFloat64(m.FieldValidations.WithLabelValues("email", ResultInvalid)); got != 2 {
		t.Fatalf("expected 2 email validations, got %v", got)
	}
	if got := testutil.ToFloat64(m.AdvanceAttempts.WithLabelValues(OutcomeRejected)); got != 1 {
		t.Fatalf("expected 1 rejected advance, got %v", got)
	}
	if got := testutil.ToFloat64(m.SessionsStarted); got != 1 {
		t.Fatalf("expected 1 session, got %v", got)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New(nil)
	m.IncrementSessionStarted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "stationreg_sessions_started_total 1") {
		t.Fatalf("expected session counter in exposition:\n%s", rec.Body.String())
	}
}
