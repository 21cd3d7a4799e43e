// Package metrics provides Prometheus metrics for the stride telemetry service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Ingest metrics
	recordsIngested     prometheus.Counter
	stepsIngested       prometheus.Counter
	submissionsRejected prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Store metrics
	storeLatency *prometheus.HistogramVec
	storeErrors  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global manager instance backed by a dedicated registry so the default
// Go collectors stay out of the scrape output.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager, applying any options over defaults.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stride",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: m.customLabels,
		}
	}

	m.recordsIngested = prometheus.NewCounter(prometheus.CounterOpts(
		factory("records_ingested_total", "Step records written to the store.")))
	m.stepsIngested = prometheus.NewCounter(prometheus.CounterOpts(
		factory("steps_ingested_total", "Sum of step counts accepted for ingest.")))
	m.submissionsRejected = prometheus.NewCounter(prometheus.CounterOpts(
		factory("submissions_rejected_total", "Submissions rejected before reaching the store.")))

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts(
		factory("http_requests_total", "HTTP requests by endpoint, method and status.")),
		[]string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_ms",
		Help:        "HTTP request latency in milliseconds.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status"})
	m.httpErrors = prometheus.NewCounterVec(prometheus.CounterOpts(
		factory("http_errors_total", "HTTP error responses by endpoint and class.")),
		[]string{"endpoint", "method", "kind"})

	m.storeLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_op_duration_ms",
		Help:        "Document store operation latency in milliseconds.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"op"})
	m.storeErrors = prometheus.NewCounterVec(prometheus.CounterOpts(
		factory("store_errors_total", "Document store failures by operation.")),
		[]string{"op"})

	m.systemMemoryUsage = prometheus.NewGauge(prometheus.GaugeOpts(
		factory("system_memory_bytes", "Current heap allocation in bytes.")))
	m.systemGoroutineCount = prometheus.NewGauge(prometheus.GaugeOpts(
		factory("system_goroutines", "Current number of goroutines.")))

	if !m.enabled {
		return
	}
	m.registry.MustRegister(
		m.recordsIngested,
		m.stepsIngested,
		m.submissionsRejected,
		m.httpRequests,
		m.httpRequestDuration,
		m.httpErrors,
		m.storeLatency,
		m.storeErrors,
		m.systemMemoryUsage,
		m.systemGoroutineCount,
	)
}

// Package-level recording helpers against the global manager.

// RecordIngest counts one stored record carrying the given step count.
func RecordIngest(steps int) {
	globalManager.recordsIngested.Inc()
	globalManager.stepsIngested.Add(float64(steps))
}

// RecordSubmissionRejected counts a submission refused before any write.
func RecordSubmissionRejected() {
	globalManager.submissionsRejected.Inc()
}

// RecordHTTPRequest counts a completed HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordHTTPError counts an error response of the given kind.
func RecordHTTPError(endpoint, method, kind string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, kind).Inc()
}

// RecordStoreLatency observes one store operation's latency in milliseconds.
func RecordStoreLatency(op string, durationMs float64) {
	globalManager.storeLatency.WithLabelValues(op).Observe(durationMs)
}

// RecordStoreError counts a failed store operation.
func RecordStoreError(op string) {
	globalManager.storeErrors.WithLabelValues(op).Inc()
}

// UpdateSystemMemoryUsage sets the current heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry exposes the registry used by the global manager for scraping.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
