package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Gateway = (*gatewayMetrics)(nil)

type gatewayMetrics struct {
	signDuration *prometheus.HistogramVec
	signFailures *prometheus.CounterVec
}

func newGatewayMetrics(registry *promRegistry) *gatewayMetrics {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_sign_call_duration_seconds",
			Help:    "Duration of outbound calls to the gateway signing endpoint",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"strategy"},
	)

	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_sign_call_failures_total",
			Help: "Total failed outbound gateway signing calls by reason",
		},
		[]string{"strategy", "reason"},
	)

	registry.registry.MustRegister(duration, failures)

	return &gatewayMetrics{
		signDuration: duration,
		signFailures: failures,
	}
}

func (m *gatewayMetrics) ObserveSignCall(strategy string, duration time.Duration) {
	m.signDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

func (m *gatewayMetrics) SignCallFailed(strategy string, reason string) {
	m.signFailures.WithLabelValues(strategy, reason).Add(1)
}
