package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CaptureMetrics holds all Prometheus metrics for the traffic capture
// pipeline and the developer console.
type CaptureMetrics struct {
	RecordsTotal      *prometheus.CounterVec
	AppendErrorsTotal prometheus.Counter
	ExportsTotal      prometheus.Counter
	SynthesisTotal    prometheus.Counter
}

// NewCaptureMetrics initializes and registers the Prometheus metrics.
func NewCaptureMetrics() *CaptureMetrics {
	return &CaptureMetrics{
		RecordsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logistics_admin",
			Subsystem: "capture",
			Name:      "records_total",
			Help:      "Total number of captured HTTP exchanges by direction and outcome.",
		}, []string{"direction", "outcome"}), // outcome: ok, error
		AppendErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "logistics_admin",
			Subsystem: "capture",
			Name:      "append_errors_total",
			Help:      "Total number of record store append failures.",
		}),
		ExportsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "logistics_admin",
			Subsystem: "console",
			Name:      "exports_total",
			Help:      "Total number of log export artifacts produced.",
		}),
		SynthesisTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "logistics_admin",
			Subsystem: "console",
			Name:      "synthesis_total",
			Help:      "Total number of API document synthesis runs.",
		}),
	}
}

// RecordCaptured increments the capture counter; safe on a nil receiver so
// tests can omit metrics wiring.
func (m *CaptureMetrics) RecordCaptured(direction, outcome string) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(direction, outcome).Inc()
}

// RecordAppendError increments the append failure counter.
func (m *CaptureMetrics) RecordAppendError() {
	if m == nil {
		return
	}
	m.AppendErrorsTotal.Inc()
}

// RecordExport counts one produced export artifact.
func (m *CaptureMetrics) RecordExport() {
	if m == nil {
		return
	}
	m.ExportsTotal.Inc()
}

// RecordSynthesis counts one API document synthesis run.
func (m *CaptureMetrics) RecordSynthesis() {
	if m == nil {
		return
	}
	m.SynthesisTotal.Inc()
}
