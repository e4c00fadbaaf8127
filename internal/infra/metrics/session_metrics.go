// Package metrics exposes prometheus instrumentation for session operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"warden/internal/errors"
)

// Operation labels.
const (
	OpRegister = "register"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpRefresh  = "refresh"
	OpGuard    = "guard"
)

// OutcomeSuccess labels a successful operation; failures are labelled with the error kind.
const OutcomeSuccess = "success"

// SessionMetrics records session operation outcomes on a dedicated registry.
type SessionMetrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	events     *prometheus.CounterVec
	hashTime   prometheus.Histogram
}

// NewSessionMetrics creates the collectors and registers them with a fresh registry.
func NewSessionMetrics() (*SessionMetrics, error) {
	registry := prometheus.NewRegistry()

	m := &SessionMetrics{
		registry: registry,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warden",
			Name:      "session_operations_total",
			Help:      "Session operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warden",
			Name:      "session_events_received_total",
			Help:      "Session events received by the audit worker, by type.",
		}, []string{"type"}),
		hashTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "warden",
			Name:      "password_hash_seconds",
			Help:      "Time spent hashing or comparing passwords.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
	}

	for _, c := range []prometheus.Collector{
		m.operations,
		m.events,
		m.hashTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "register collector")
		}
	}

	return m, nil
}

// ObserveOperation counts one operation with its outcome.
func (m *SessionMetrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveEvent counts a session event received by the audit worker.
func (m *SessionMetrics) ObserveEvent(eventType string) {
	if m == nil {
		return
	}

	m.events.WithLabelValues(eventType).Inc()
}

// ObserveHash records how long a password hash or comparison took.
func (m *SessionMetrics) ObserveHash(elapsed time.Duration) {
	if m == nil {
		return
	}

	m.hashTime.Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *SessionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *SessionMetrics) Registry() *prometheus.Registry {
	return m.registry
}
