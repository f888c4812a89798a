package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "fieldassign/core/metrics"
)

// PromSink records assignment events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	unassigned  *prometheus.CounterVec
	driveTime   *prometheus.HistogramVec
}

// NewPromSink registers assignment metrics on the default Prometheus
// registerer. The Prometheus server should be started separately.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_events_total",
		Help: "Total number of finalized assignment events",
	}, []string{"representative", "capability", "drive_time_known"})
	unassigned := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "unassigned_events_total",
		Help: "Total number of appointments left unassigned",
	}, []string{"reason"})
	driveTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_drive_time_minutes",
		Help:    "Drive time of finalized assignments in minutes",
		Buckets: []float64{5, 10, 20, 30, 45, 60, 90, 120},
	}, []string{"capability"})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(unassigned); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			unassigned = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(driveTime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			driveTime = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{assignments: assignments, unassigned: unassigned, driveTime: driveTime}, nil
}

// RecordAssignments increments the counter for each assignment.
func (s *PromSink) RecordAssignments(recs []coremetrics.AssignmentRecord) error {
	for _, r := range recs {
		s.assignments.WithLabelValues(r.Representative, r.Capability, strconv.FormatBool(r.DriveTimeKnown)).Inc()
		if r.DriveTimeKnown {
			s.driveTime.WithLabelValues(r.Capability).Observe(r.DriveTimeMin)
		}
	}
	return nil
}

// RecordUnassigned increments the unassigned counter per reason.
func (s *PromSink) RecordUnassigned(recs []coremetrics.UnassignedRecord) error {
	for _, r := range recs {
		s.unassigned.WithLabelValues(r.Reason).Inc()
	}
	return nil
}
