// Package metrics provides Prometheus metrics for the touchline service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Load cycle
	loadCycles      *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	snapshotLastUnx prometheus.Gauge

	// Sources
	sourceFetches       *prometheus.CounterVec
	sourceFetchDuration *prometheus.HistogramVec
	sourceRows          *prometheus.GaugeVec

	// Reconciliation
	rostersTotal prometheus.Gauge
	playersTotal prometheus.Gauge
	foldEntries  *prometheus.CounterVec

	// Reload queue
	reloadRequests  *prometheus.CounterVec
	reloadQueueSize prometheus.Gauge

	// Queries
	predictions *prometheus.CounterVec
	lineups     prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// System
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
	systemGCPause    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "touchline",
		subsystem:        "club",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts(m.opts(name, help)), labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts(m.opts(name, help)))
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(m.histogramOpts(name, help, m.histogramBuckets), labels)
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.loadCycles = m.counterVec("load_cycles_total", "Load cycles by outcome", "outcome")
	m.loadDuration = auto.NewHistogram(m.histogramOpts("load_duration_milliseconds",
		"Duration of a full fetch, parse and reconcile cycle", m.histogramBuckets))
	m.snapshotLastUnx = m.gauge("snapshot_last_unix", "Unix time of the last published snapshot")

	m.sourceFetches = m.counterVec("source_fetches_total", "Source fetches by source and outcome", "source", "outcome")
	m.sourceFetchDuration = m.histogramVec("source_fetch_duration_milliseconds", "Fetch and parse duration per source", "source")
	m.sourceRows = auto.NewGaugeVec(prometheus.GaugeOpts(m.opts("source_rows", "Rows parsed from each source in the last cycle")), []string{"source"})

	m.rostersTotal = m.gauge("rosters_total", "Reconciled rosters in the current snapshot")
	m.playersTotal = m.gauge("roster_players_total", "Player entries across all rosters in the current snapshot")
	m.foldEntries = m.counterVec("fold_entries_total", "Fold outcomes by step and kind", "step", "kind")

	m.reloadRequests = m.counterVec("reload_requests_total", "Reload requests by outcome", "outcome")
	m.reloadQueueSize = m.gauge("reload_queue_size", "Reload requests waiting for the worker")

	m.predictions = m.counterVec("predictions_total", "Outcome estimates by deciding source", "source")
	m.lineups = auto.NewCounter(prometheus.CounterOpts(m.opts("lineups_total", "Lineups laid out")))

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")

	m.systemMemory = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutines = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPause = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds",
		"Average GC pause in milliseconds", []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50}))
}

// RecordLoadCycle counts a finished load cycle; outcome is "ok" or "failed".
func RecordLoadCycle(outcome string) {
	globalManager.loadCycles.WithLabelValues(outcome).Inc()
}

// RecordLoadDuration records a load cycle duration in milliseconds.
func RecordLoadDuration(ms float64) {
	globalManager.loadDuration.Observe(ms)
}

// UpdateSnapshotLastUnix sets the publication time of the current snapshot.
func UpdateSnapshotLastUnix(ts float64) {
	globalManager.snapshotLastUnx.Set(ts)
}

// RecordSourceFetch counts one source fetch and its duration.
func RecordSourceFetch(source, outcome string, ms float64) {
	globalManager.sourceFetches.WithLabelValues(source, outcome).Inc()
	globalManager.sourceFetchDuration.WithLabelValues(source).Observe(ms)
}

// UpdateSourceRows sets the row count parsed from source.
func UpdateSourceRows(source string, rows int) {
	globalManager.sourceRows.WithLabelValues(source).Set(float64(rows))
}

// UpdateRostersTotal sets the number of rosters in the snapshot.
func UpdateRostersTotal(n int) {
	globalManager.rostersTotal.Set(float64(n))
}

// UpdatePlayersTotal sets the number of player entries in the snapshot.
func UpdatePlayersTotal(n int) {
	globalManager.playersTotal.Set(float64(n))
}

// RecordFold adds n fold outcomes of kind for step.
func RecordFold(step, kind string, n int) {
	if n <= 0 {
		return
	}
	globalManager.foldEntries.WithLabelValues(step, kind).Add(float64(n))
}

// RecordPrediction counts an estimate by the source that decided it.
func RecordPrediction(source string) {
	globalManager.predictions.WithLabelValues(source).Inc()
}

// RecordLineup counts a rendered lineup.
func RecordLineup() {
	globalManager.lineups.Inc()
}

// RecordReloadRequest counts a reload request; outcome is "accepted",
// "rejected" or "coalesced".
func RecordReloadRequest(outcome string) {
	globalManager.reloadRequests.WithLabelValues(outcome).Inc()
}

// UpdateReloadQueueSize sets the number of pending reload requests.
func UpdateReloadQueueSize(n int) {
	globalManager.reloadQueueSize.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemory.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutines.Set(float64(n))
}

// RecordSystemGCPauseTime observes an average GC pause.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPause.Observe(ms)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
