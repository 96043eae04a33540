package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ Callback = (*callbackMetrics)(nil)

type callbackMetrics struct {
	classifiedCounter *prometheus.CounterVec
	malformedCounter  prometheus.Counter
}

func newCallbackMetrics(registry *promRegistry) *callbackMetrics {
	classified := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callback_classified_total",
			Help: "Total gateway callbacks classified by outcome",
		},
		[]string{"status"},
	)

	malformed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "callback_malformed_total",
			Help: "Total gateway callbacks that failed schema validation",
		},
	)

	registry.registry.MustRegister(classified, malformed)

	return &callbackMetrics{
		classifiedCounter: classified,
		malformedCounter:  malformed,
	}
}

func (m *callbackMetrics) Classified(status string) {
	m.classifiedCounter.WithLabelValues(status).Add(1)
}

func (m *callbackMetrics) Malformed() {
	m.malformedCounter.Add(1)
}
