package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts key manager activity. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	keysGenerated prometheus.Counter
	keysImported  *prometheus.CounterVec
	keysExported  *prometheus.CounterVec
	failures      *prometheus.CounterVec
}

// NewMetrics registers the counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		keysGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "keys_generated_total",
			Help: "Key pairs generated",
		}),
		keysImported: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "keys_imported_total",
			Help: "Keys imported, by kind",
		}, []string{"kind"}),
		keysExported: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "keys_exported_total",
			Help: "Keys exported, by format",
		}, []string{"format"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "key_operation_failures_total",
			Help: "Failed key operations, by operation",
		}, []string{"op"}),
	}
}

func (m *Metrics) IncrementKeysGenerated() {
	if m == nil {
		return
	}
	m.keysGenerated.Inc()
}

func (m *Metrics) IncrementKeysImported(kind string) {
	if m == nil {
		return
	}
	m.keysImported.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementKeysExported(format string) {
	if m == nil {
		return
	}
	m.keysExported.WithLabelValues(format).Inc()
}

func (m *Metrics) IncrementFailure(op string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(op).Inc()
}
