package travel

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	oracleFailures prometheus.Counter
	oracleLatency  prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Counter, prometheus.Counter, prometheus.Counter, prometheus.Histogram) {
	hits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "travel_cache_hits_total",
		Help: "Number of travel time lookups served from the cache",
	})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "travel_cache_misses_total",
		Help: "Number of travel time lookups that required an oracle call",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "travel_oracle_failures_total",
		Help: "Number of failed travel time oracle calls",
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "travel_oracle_latency_seconds",
		Help:    "Latency of travel time oracle calls",
		Buckets: prometheus.DefBuckets,
	})
	return hits, misses, failures, latency
}

func init() {
	cacheHits, cacheMisses, oracleFailures, oracleLatency = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers travel metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(cacheHits, cacheMisses, oracleFailures, oracleLatency)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	cacheHits, cacheMisses, oracleFailures, oracleLatency = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
