// Package metrics provides Prometheus metrics for the matchbot pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Latency buckets in milliseconds for provider calls; SportsDB answers in
// tens to hundreds of milliseconds and the client times out at 25s.
var defaultLatencyBuckets = []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000}

// Manager manages all Prometheus metrics for the matchbot service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline
	eventsFetched   *prometheus.CounterVec
	eventsDropped   *prometheus.CounterVec
	eventsDuplicate prometheus.Counter
	recordsByBucket *prometheus.CounterVec

	// Provider
	providerRequests *prometheus.CounterVec
	providerFaults   *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec

	// Run outcome
	accuracy            prometheus.Gauge
	evaluated           prometheus.Gauge
	fallbackActivations prometheus.Counter
	runs                *prometheus.CounterVec
	runDuration         prometheus.Histogram
	lastRunUnix         prometheus.Gauge
	notifications       *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchbot",
		subsystem:        "pipeline",
		histogramBuckets: defaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.eventsFetched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_fetched_total",
		Help:      "Raw provider events received, by league",
	}, []string{"league"})

	m.eventsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_dropped_total",
		Help:      "Events discarded before reaching a bucket, by reason",
	}, []string{"reason"})

	m.eventsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_duplicate_total",
		Help:      "Events skipped because their id was already seen in the league scan",
	})

	m.recordsByBucket = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_total",
		Help:      "Classified records emitted, by bucket",
	}, []string{"bucket"})

	m.providerRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "Provider calls by endpoint and outcome (data, empty, fault)",
	}, []string{"endpoint", "outcome"})

	m.providerFaults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "provider",
		Name:      "faults_total",
		Help:      "Provider calls that degraded to an empty result",
	}, []string{"endpoint"})

	m.providerLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "provider",
		Name:      "request_duration_milliseconds",
		Help:      "Provider call latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})

	m.accuracy = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "run",
		Name:      "accuracy_percent",
		Help:      "Pick accuracy over evaluated results in the last run",
	})

	m.evaluated = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "run",
		Name:      "evaluated_results",
		Help:      "Results evaluated in the last run",
	})

	m.fallbackActivations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "run",
		Name:      "fallback_activations_total",
		Help:      "Runs whose primary window was empty and fell back to the rolling window",
	})

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "run",
		Name:      "total",
		Help:      "Runs by status (ok, skipped, failed)",
	}, []string{"status"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "run",
		Name:      "duration_seconds",
		Help:      "Wall time of a run",
		Buckets:   []float64{1, 2, 5, 10, 30, 60, 120, 300},
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "run",
		Name:      "last_timestamp_seconds",
		Help:      "Unix time the last run finished",
	})

	m.notifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "messages_total",
		Help:      "Notification messages by status (sent, failed)",
	}, []string{"status"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordEventsFetched adds n raw events received for league.
func RecordEventsFetched(league string, n int) {
	globalManager.eventsFetched.WithLabelValues(league).Add(float64(n))
}

// RecordEventDropped counts one discarded event.
func RecordEventDropped(reason string) {
	globalManager.eventsDropped.WithLabelValues(reason).Inc()
}

// RecordEventDuplicate counts one duplicate event.
func RecordEventDuplicate() {
	globalManager.eventsDuplicate.Inc()
}

// RecordClassified counts one record emitted into bucket.
func RecordClassified(bucket string) {
	globalManager.recordsByBucket.WithLabelValues(bucket).Inc()
}

// RecordProviderRequest records one provider call.
func RecordProviderRequest(endpoint, outcome string, latencyMs float64) {
	globalManager.providerRequests.WithLabelValues(endpoint, outcome).Inc()
	globalManager.providerLatency.WithLabelValues(endpoint).Observe(latencyMs)
}

// RecordProviderFault counts a provider call that degraded to empty.
func RecordProviderFault(endpoint string) {
	globalManager.providerFaults.WithLabelValues(endpoint).Inc()
}

// UpdateAccuracy publishes the last run's evaluation tally.
func UpdateAccuracy(correct, total int) {
	globalManager.evaluated.Set(float64(total))
	if total == 0 {
		globalManager.accuracy.Set(0)
		return
	}
	globalManager.accuracy.Set(float64(correct) / float64(total) * 100)
}

// RecordFallback counts one fallback activation.
func RecordFallback() {
	globalManager.fallbackActivations.Inc()
}

// RecordRun records a finished run.
func RecordRun(status string, took time.Duration) {
	globalManager.runs.WithLabelValues(status).Inc()
	globalManager.runDuration.Observe(took.Seconds())
	globalManager.lastRunUnix.Set(float64(time.Now().Unix()))
}

// RecordNotification counts one delivered or failed message.
func RecordNotification(status string) {
	globalManager.notifications.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records an HTTP request with the given parameters.
func RecordHTTPRequest(endpoint, method string, statusCode int, durationMs float64) {
	code := strconv.Itoa(statusCode)
	globalManager.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
