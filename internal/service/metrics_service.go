package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP traffic, pipeline runs,
// caches and catalog queries.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	pipelineDuration prometheus.Histogram
	pipelineRuns     *prometheus.CounterVec
	sectionErrors    *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	cacheLatency     *prometheus.HistogramVec
	dbQueryDuration  *prometheus.HistogramVec
}

// NewMetricsService registers core Prometheus collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	pipelineDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "study_plan_pipeline_duration_seconds",
		Help:    "Duration of study plan evaluations",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	})

	pipelineRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "study_plan_pipeline_runs_total",
		Help: "Study plan evaluations by outcome",
	}, []string{"outcome"})

	sectionErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "study_plan_section_errors_total",
		Help: "Report sections that could not be computed",
	}, []string{"section"})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by cache and result",
	}, []string{"cache", "result"})

	cacheLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"cache", "op"})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, pipelineDuration, pipelineRuns, sectionErrors, cacheLookups, cacheLatency, dbQueryDuration, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		pipelineDuration: pipelineDuration,
		pipelineRuns:     pipelineRuns,
		sectionErrors:    sectionErrors,
		cacheLookups:     cacheLookups,
		cacheLatency:     cacheLatency,
		dbQueryDuration:  dbQueryDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObservePipeline records one evaluation. outcome is "ok", "partial", "cached" or "error".
func (m *MetricsService) ObservePipeline(outcome string, duration time.Duration, failedSections []string) {
	if m == nil {
		return
	}
	m.pipelineRuns.WithLabelValues(outcome).Inc()
	if outcome == "ok" || outcome == "partial" {
		m.pipelineDuration.Observe(duration.Seconds())
	}
	for _, section := range failedSections {
		m.sectionErrors.WithLabelValues(section).Inc()
	}
}

// RecordCacheOperation records a cache lookup.
func (m *MetricsService) RecordCacheOperation(cache string, hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
	m.cacheLatency.WithLabelValues(cache, "get").Observe(duration.Seconds())
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(cache string, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.WithLabelValues(cache, "set").Observe(duration.Seconds())
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}
