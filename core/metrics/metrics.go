package metrics

import "time"

// AssignmentRecord represents a finalized per-appointment assignment to be
// recorded by observability sinks.
type AssignmentRecord struct {
	RunID          string
	WindowOrdinal  int
	CustomerID     string
	Representative string
	Location       string
	Capability     string
	DriveTimeMin   float64
	DriveTimeKnown bool
	ScheduledAt    time.Time
	Time           time.Time
}

// Sink records assignment results for observability purposes.
type Sink interface {
	RecordAssignments(records []AssignmentRecord) error
}

// UnassignedRecord captures an appointment that ended a window without a
// representative.
type UnassignedRecord struct {
	RunID         string
	WindowOrdinal int
	CustomerID    string
	Location      string
	Capability    string
	Reason        string
	Time          time.Time
}

// UnassignedRecorder is implemented by sinks able to record unassigned
// appointments.
type UnassignedRecorder interface {
	RecordUnassigned(records []UnassignedRecord) error
}

// WindowRecord summarizes a processed window.
type WindowRecord struct {
	RunID      string
	Ordinal    int
	Start      time.Time
	End        time.Time
	Assigned   int
	Unassigned int
	Duration   time.Duration
}

// WindowRecorder is implemented by sinks able to record window summaries.
type WindowRecorder interface {
	RecordWindow(rec WindowRecord) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordAssignments([]AssignmentRecord) error { return nil }
func (NopSink) RecordUnassigned([]UnassignedRecord) error  { return nil }
func (NopSink) RecordWindow(WindowRecord) error            { return nil }
