package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveSeverity("warning")
	m.ObserveSeverity("warning")
	m.ObserveStockAlert("Low")
	m.ObserveHTTP("/medicines", http.MethodGet, 200, 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.statuses.WithLabelValues("warning")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.stockAlerts.WithLabelValues("Low")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequests.WithLabelValues("/medicines", "GET", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveSeverity("ok")
	m.ObserveStockAlert("Empty")
	m.ObserveHTTP("", http.MethodGet, 500, 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveSeverity("expired")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `medicine_cabinet_expiration_statuses_total{severity="expired"} 1`)
}
