package assign

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	appointmentsAssigned   *prometheus.CounterVec
	appointmentsUnassigned prometheus.Counter
	conflictsResolved      prometheus.Counter
	windowDuration         prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Counter, prometheus.Counter, prometheus.Histogram) {
	assigned := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointments_assigned_total",
			Help: "Number of appointments assigned to a representative",
		},
		[]string{"pass"},
	)
	unassigned := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "appointments_unassigned_total",
			Help: "Number of appointments left without a representative",
		},
	)
	conflicts := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assignment_conflicts_total",
			Help: "Number of double-booked representatives resolved",
		},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "window_processing_seconds",
			Help:    "Time spent matching one window",
			Buckets: prometheus.DefBuckets,
		},
	)
	return assigned, unassigned, conflicts, duration
}

func init() {
	appointmentsAssigned, appointmentsUnassigned, conflictsResolved, windowDuration = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers assignment metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(appointmentsAssigned, appointmentsUnassigned, conflictsResolved, windowDuration)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	appointmentsAssigned, appointmentsUnassigned, conflictsResolved, windowDuration = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
