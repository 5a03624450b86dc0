// Package metrics exposes the intake service's Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for field validations.
const (
	ResultValid    = "valid"
	ResultRequired = "required"
	ResultInvalid  = "invalid_format"
)

// Outcome labels for advance attempts.
const (
	OutcomeAdvanced = "advanced"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics tracks blur validations, advance attempts and new sessions.
type Metrics struct {
	FieldValidations *prometheus.CounterVec
	AdvanceAttempts  *prometheus.CounterVec
	SessionsStarted  prometheus.Counter

	registry *prometheus.Registry
}

// New registers all counters on reg. A nil reg gets a fresh registry so
// several services can coexist in one process.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		FieldValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stationreg_field_validations_total",
			Help: "Field validations run on blur, by field and result",
		}, []string{"field", "result"}),
		AdvanceAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stationreg_advance_attempts_total",
			Help: "Next Step submissions, by outcome",
		}, []string{"outcome"}),
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "stationreg_sessions_started_total",
			Help: "Registration sessions created",
		}),
		registry: reg,
	}
}

// IncrementFieldValidation records one blur validation.
func (m *Metrics) IncrementFieldValidation(field, result string) {
	m.FieldValidations.WithLabelValues(field, result).Inc()
}

// IncrementAdvanceAttempt records one advance gate evaluation.
func (m *Metrics) IncrementAdvanceAttempt(outcome string) {
	m.AdvanceAttempts.WithLabelValues(outcome).Inc()
}

// IncrementSessionStarted records a new session.
func (m *Metrics) IncrementSessionStarted() {
	m.SessionsStarted.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
