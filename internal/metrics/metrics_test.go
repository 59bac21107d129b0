package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.RuleFired("cold_drink_stock")
	m.RuleFired("cold_drink_stock")
	m.EvaluationRan()
	m.AnalysisRan()
	m.CacheLookup("hit")
	m.ObserveRequest("GET", "/api/v1/dashboard", 200, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ruleTriggers.WithLabelValues("cold_drink_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/dashboard", "200")))
}

func TestSetStatusCounts(t *testing.T) {
	m := New()
	m.SetStatusCounts([]domain.StatusCount{
		{Status: domain.StatusCritical, Count: 2},
		{Status: domain.StatusLow, Count: 1},
		{Status: domain.StatusGood, Count: 4},
	})
	assert.Equal(t, 2.0, testutil.ToFloat64(m.stockStatus.WithLabelValues("critical")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.stockStatus.WithLabelValues("good")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RuleFired("x")
		m.EvaluationRan()
		m.CacheLookup("miss")
		m.SetStatusCounts(nil)
		m.ObserveRequest("GET", "/", 200, time.Second)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RuleFired("hot_beverage_prep")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `kopik_recommendation_rule_triggers_total{rule="hot_beverage_prep"} 1`)
}
