// Package metrics exposes Prometheus instrumentation for the service.
//
// All metrics live on a private registry so tests and multiple instances do
// not collide on the global one. Every method is safe on a nil *Metrics,
// which records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker/v2"
)

const namespace = "social_content"

// Generation outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeFailed   = "failed"
)

// Metrics holds every collector the service reports.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	validations        *prometheus.CounterVec
	validationScore    *prometheus.HistogramVec
	generations        *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	producerAttempts   *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
	producerUp         prometheus.Gauge
	circuitState       *prometheus.GaugeVec
}

// New creates and registers all collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Validations performed, by platform and verdict",
		}, []string{"platform", "valid"}),
		validationScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_score",
			Help:      "Distribution of quality scores",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}, []string{"platform"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generation requests by platform and outcome",
		}, []string{"platform", "outcome"}),
		generationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent producing and validating content",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"platform"}),
		producerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "producer_attempts_total",
			Help:      "Calls to the content producer by result",
		}, []string{"platform", "result"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Validation cache lookups by result",
		}, []string{"result"}),
		producerUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "producer_up",
			Help:      "Whether the last producer health check passed",
		}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Current state of circuit breaker (0=closed, 1=half-open, 2=open)",
		}, []string{"name"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.validations,
		m.validationScore,
		m.generations,
		m.generationDuration,
		m.producerAttempts,
		m.cacheLookups,
		m.producerUp,
		m.circuitState,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one handled request. route is the matched route
// pattern, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveValidation records a validation verdict and its score.
func (m *Metrics) ObserveValidation(platform string, valid bool, score float64) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(platform, strconv.FormatBool(valid)).Inc()
	m.validationScore.WithLabelValues(platform).Observe(score)
}

// ObserveGeneration records the outcome of one generation request.
func (m *Metrics) ObserveGeneration(platform, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(platform, outcome).Inc()
	m.generationDuration.WithLabelValues(platform).Observe(d.Seconds())
}

// ObserveProducerAttempt records one producer call.
func (m *Metrics) ObserveProducerAttempt(platform string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.producerAttempts.WithLabelValues(platform, result).Inc()
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// SetProducerUp records the latest producer health.
func (m *Metrics) SetProducerUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.producerUp.Set(1)
		return
	}
	m.producerUp.Set(0)
}

// RecordCircuitState is suitable as a circuit breaker state-change hook.
func (m *Metrics) RecordCircuitState(name string, _ gobreaker.State, to gobreaker.State) {
	if m == nil {
		return
	}
	m.circuitState.WithLabelValues(name).Set(float64(to))
}
