package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "callclean"

// Metrics counts what one run did. Each run owns its registry, so counters
// start at zero and nothing leaks into the global default registry.
type Metrics struct {
	Registry *prometheus.Registry

	RowsLoaded   prometheus.Counter
	RowsEmitted  prometheus.Counter
	CellsChanged *prometheus.CounterVec
	StepDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Rows read from the input file.",
		}),
		RowsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_emitted_total",
			Help:      "Rows left after every cleaning step.",
		}),
		CellsChanged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_changed_total",
			Help:      "Cells (or rows, for structural steps) changed per step.",
		}, []string{"step"}),
		StepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time of each cleaning step.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"step"}),
	}
	m.Registry.MustRegister(m.RowsLoaded, m.RowsEmitted, m.CellsChanged, m.StepDuration)
	return m
}

// ObserveStep records one finished step.
func (m *Metrics) ObserveStep(step string, changed int, took time.Duration) {
	m.CellsChanged.WithLabelValues(step).Add(float64(changed))
	m.StepDuration.WithLabelValues(step).Observe(took.Seconds())
}

// WriteTextfile writes the registry in the text format read by the
// node_exporter textfile collector. The write is atomic.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
