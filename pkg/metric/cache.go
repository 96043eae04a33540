package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ Cache = (*cacheMetrics)(nil)

type cacheMetrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
}

func newCacheMetrics(registry *promRegistry) *cacheMetrics {
	hits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits by cache name",
		},
		[]string{"cache"},
	)

	misses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses by cache name",
		},
		[]string{"cache"},
	)

	evictions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total cache evictions by cache name",
		},
		[]string{"cache"},
	)

	registry.registry.MustRegister(hits, misses, evictions)

	return &cacheMetrics{
		hits:      hits,
		misses:    misses,
		evictions: evictions,
	}
}

func (m *cacheMetrics) Hit(cache string) {
	m.hits.WithLabelValues(cache).Add(1)
}

func (m *cacheMetrics) Miss(cache string) {
	m.misses.WithLabelValues(cache).Add(1)
}

func (m *cacheMetrics) Eviction(cache string) {
	m.evictions.WithLabelValues(cache).Add(1)
}
