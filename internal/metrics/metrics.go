// Package metrics exposes the service's Prometheus collectors on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service reports
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	ruleTriggers *prometheus.CounterVec
	evaluations  prometheus.Counter
	analyses     prometheus.Counter
	stockStatus  *prometheus.GaugeVec
	cacheLookups *prometheus.CounterVec
}

// New creates and registers the collectors, plus the Go runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kopik_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kopik_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ruleTriggers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kopik_recommendation_rule_triggers_total",
				Help: "Recommendation rules that fired, by rule",
			},
			[]string{"rule"},
		),
		evaluations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "kopik_recommendation_evaluations_total",
				Help: "Rule engine evaluations",
			},
		),
		analyses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "kopik_intelligence_analyses_total",
				Help: "Stored intelligence analysis runs",
			},
		),
		stockStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kopik_inventory_items",
				Help: "Inventory items by stock status at last classification",
			},
			[]string{"status"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kopik_dashboard_cache_lookups_total",
				Help: "Dashboard cache lookups by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		m.requests,
		m.latency,
		m.ruleTriggers,
		m.evaluations,
		m.analyses,
		m.stockStatus,
		m.cacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RuleFired counts one firing of a recommendation rule.
func (m *Metrics) RuleFired(rule string) {
	if m == nil {
		return
	}
	m.ruleTriggers.WithLabelValues(rule).Inc()
}

// EvaluationRan counts one rule engine evaluation.
func (m *Metrics) EvaluationRan() {
	if m == nil {
		return
	}
	m.evaluations.Inc()
}

// AnalysisRan counts one stored intelligence analysis.
func (m *Metrics) AnalysisRan() {
	if m == nil {
		return
	}
	m.analyses.Inc()
}

// SetStatusCounts publishes the latest per-status item counts.
func (m *Metrics) SetStatusCounts(counts []domain.StatusCount) {
	if m == nil {
		return
	}
	for _, c := range counts {
		m.stockStatus.WithLabelValues(string(c.Status)).Set(float64(c.Count))
	}
}

// CacheLookup counts a dashboard cache lookup; result is hit, miss or error.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
