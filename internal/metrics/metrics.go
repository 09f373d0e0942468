package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
)

const resultOK = "ok"

// Metrics holds the lifecycle collectors. It satisfies cylinder.Recorder.
type Metrics struct {
	operations  *prometheus.CounterVec
	transitions *prometheus.CounterVec
	violations  prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cylinder_operations_total",
			Help: "Cylinder operations by outcome.",
		}, []string{"operation", "result"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cylinder_transitions_total",
			Help: "Cylinders affected by committed operations.",
		}, []string{"operation"}),
		violations: f.NewGauge(prometheus.GaugeOpts{
			Name: "cylinder_invariant_violations",
			Help: "Violations found by the last audit run.",
		}),
	}
}

// ObserveOperation counts one operation. The result label is the error kind,
// or ok when the operation committed.
func (m *Metrics) ObserveOperation(operation string, cylinders int, err error) {
	result := resultOK
	if err != nil {
		result = string(apperror.KindOf(err))
	}

	m.operations.WithLabelValues(operation, result).Inc()

	if err == nil && cylinders > 0 {
		m.transitions.WithLabelValues(operation).Add(float64(cylinders))
	}
}

func (m *Metrics) SetInvariantViolations(n int) {
	m.violations.Set(float64(n))
}
