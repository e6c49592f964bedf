// Package metrics provides Prometheus metrics for assessment activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the assessment metrics. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace string
	subsystem string
	enabled   bool
	registry  *prometheus.Registry

	assessmentsSaved   prometheus.Counter
	assessmentsDeleted prometheus.Counter
	assessmentsLoaded  prometheus.Counter
	itemsAdded         prometheus.Counter
	itemsRemoved       prometheus.Counter
	bulkLines          *prometheus.CounterVec
	storageFailures    *prometheus.CounterVec
	catalogSize        prometheus.Gauge
	exports            prometheus.Counter
}

// NewManager creates a metrics manager on its own registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "assessio",
		subsystem: "core",
		enabled:   true,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.assessmentsSaved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessments_saved_total",
		Help:      "Total number of assessments saved",
	})
	m.assessmentsDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessments_deleted_total",
		Help:      "Total number of saved assessments deleted",
	})
	m.assessmentsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessments_loaded_total",
		Help:      "Total number of saved assessments reloaded into the form",
	})
	m.itemsAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_items_added_total",
		Help:      "Total number of catalog items added",
	})
	m.itemsRemoved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_items_removed_total",
		Help:      "Total number of catalog items removed",
	})
	m.bulkLines = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bulk_lines_total",
		Help:      "Bulk import lines by outcome (added, skipped, error)",
	}, []string{"outcome"})
	m.storageFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_failures_total",
		Help:      "Storage write failures by kind",
	}, []string{"kind"})
	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_items",
		Help:      "Current number of items in the catalog",
	})
	m.exports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Total number of CSV exports built",
	})
}

func (m *Manager) on() bool { return m != nil && m.enabled }

// AssessmentSaved records a saved assessment.
func (m *Manager) AssessmentSaved() {
	if m.on() {
		m.assessmentsSaved.Inc()
	}
}

// AssessmentDeleted records a deleted assessment.
func (m *Manager) AssessmentDeleted() {
	if m.on() {
		m.assessmentsDeleted.Inc()
	}
}

// AssessmentLoaded records a reloaded assessment.
func (m *Manager) AssessmentLoaded() {
	if m.on() {
		m.assessmentsLoaded.Inc()
	}
}

// ItemsAdded records n new catalog items.
func (m *Manager) ItemsAdded(n int) {
	if m.on() && n > 0 {
		m.itemsAdded.Add(float64(n))
	}
}

// ItemRemoved records a removed catalog item.
func (m *Manager) ItemRemoved() {
	if m.on() {
		m.itemsRemoved.Inc()
	}
}

// BulkLines records the outcome counts of one bulk import.
func (m *Manager) BulkLines(added, skipped, errored int) {
	if !m.on() {
		return
	}
	m.bulkLines.WithLabelValues("added").Add(float64(added))
	m.bulkLines.WithLabelValues("skipped").Add(float64(skipped))
	m.bulkLines.WithLabelValues("error").Add(float64(errored))
}

// StorageFailure records a failed write of the given kind.
func (m *Manager) StorageFailure(kind string) {
	if m.on() {
		m.storageFailures.WithLabelValues(kind).Inc()
	}
}

// CatalogSize sets the current catalog size.
func (m *Manager) CatalogSize(n int) {
	if m.on() {
		m.catalogSize.Set(float64(n))
	}
}

// ExportBuilt records a CSV export.
func (m *Manager) ExportBuilt() {
	if m.on() {
		m.exports.Inc()
	}
}

// Registry exposes the registry for tests and custom handlers.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
