package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMetrics_ObserveOperation(t *testing.T) {
	m, err := NewSessionMetrics()
	require.NoError(t, err)

	m.ObserveOperation(OpLogin, OutcomeSuccess)
	m.ObserveOperation(OpLogin, OutcomeSuccess)
	m.ObserveOperation(OpRefresh, "Unauthorized")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues(OpLogin, OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpRefresh, "Unauthorized")))
}

func TestSessionMetrics_ObserveEvent(t *testing.T) {
	m, err := NewSessionMetrics()
	require.NoError(t, err)

	m.ObserveEvent("session.refresh_reuse_detected")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("session.refresh_reuse_detected")))
}

func TestSessionMetrics_Handler(t *testing.T) {
	m, err := NewSessionMetrics()
	require.NoError(t, err)

	m.ObserveOperation(OpRegister, OutcomeSuccess)
	m.ObserveHash(10 * time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `warden_session_operations_total{operation="register",outcome="success"} 1`)
	assert.Contains(t, body, "warden_password_hash_seconds_count 1")
}

func TestSessionMetrics_NilIsNoop(t *testing.T) {
	var m *SessionMetrics

	assert.NotPanics(t, func() {
		m.ObserveOperation(OpLogout, OutcomeSuccess)
		m.ObserveHash(time.Millisecond)
		m.ObserveEvent("session.started")
	})
}
