// Package metrics provides Prometheus metrics for the replay pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Ingestion metrics
	filesLoaded     prometheus.Counter
	playsIngested   prometheus.Counter
	apiPlaysFetched prometheus.Counter

	// Pipeline metrics
	duplicatesRemoved prometheus.Counter
	enrichFailures    prometheus.Counter
	runsTotal         prometheus.Counter
	eventTableSize    prometheus.Gauge

	// Timing metrics
	loadDuration     prometheus.Histogram
	analysisDuration prometheus.Histogram

	// Export metrics
	exportsTotal *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "replay",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.filesLoaded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_loaded_total",
		Help:      "Number of history files loaded.",
	})
	m.playsIngested = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plays_ingested_total",
		Help:      "Raw plays ingested across all batches.",
	})
	m.apiPlaysFetched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "api_plays_fetched_total",
		Help:      "Plays fetched from the Spotify gap-fill API.",
	})
	m.duplicatesRemoved = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_removed_total",
		Help:      "Duplicate plays removed by identity key.",
	})
	m.enrichFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "enrich_failures_total",
		Help:      "Enrichment passes rejected for unparsable timestamps.",
	})
	m.runsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Completed analysis runs.",
	})
	m.eventTableSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_table_size",
		Help:      "Enriched events in the most recent run.",
	})
	m.loadDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_duration_seconds",
		Help:      "Time spent loading history files.",
		Buckets:   m.histogramBuckets,
	})
	m.analysisDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent computing all aggregation views.",
		Buckets:   m.histogramBuckets,
	})
	m.exportsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Exports written, labeled by format.",
	}, []string{"format"})
}

// Global helpers delegating to the singleton manager.

// RecordFileLoaded increments the loaded-file counter.
func RecordFileLoaded() {
	if globalManager.enabled {
		globalManager.filesLoaded.Inc()
	}
}

// RecordPlaysIngested adds n to the ingested-play counter.
func RecordPlaysIngested(n int) {
	if globalManager.enabled {
		globalManager.playsIngested.Add(float64(n))
	}
}

// RecordAPIPlaysFetched adds n to the API-fetched counter.
func RecordAPIPlaysFetched(n int) {
	if globalManager.enabled {
		globalManager.apiPlaysFetched.Add(float64(n))
	}
}

// RecordDuplicatesRemoved adds n to the duplicate counter.
func RecordDuplicatesRemoved(n int) {
	if globalManager.enabled {
		globalManager.duplicatesRemoved.Add(float64(n))
	}
}

// RecordEnrichFailure increments the rejected-enrichment counter.
func RecordEnrichFailure() {
	if globalManager.enabled {
		globalManager.enrichFailures.Inc()
	}
}

// RecordRun increments the completed-run counter.
func RecordRun() {
	if globalManager.enabled {
		globalManager.runsTotal.Inc()
	}
}

// UpdateEventTableSize sets the last-run event table gauge.
func UpdateEventTableSize(n int) {
	if globalManager.enabled {
		globalManager.eventTableSize.Set(float64(n))
	}
}

// RecordLoadDuration observes a file-loading duration in seconds.
func RecordLoadDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.loadDuration.Observe(seconds)
	}
}

// RecordAnalysisDuration observes an analysis duration in seconds.
func RecordAnalysisDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.analysisDuration.Observe(seconds)
	}
}

// RecordExport increments the export counter for a format ("json", "csv").
func RecordExport(format string) {
	if globalManager.enabled {
		globalManager.exportsTotal.WithLabelValues(format).Inc()
	}
}

// GetRegistry returns the custom registry for serving /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
