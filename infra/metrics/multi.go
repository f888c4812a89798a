package metrics

import coremetrics "fieldassign/core/metrics"

// MultiSink fans assignment records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignments forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordAssignments(recs []coremetrics.AssignmentRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssignments(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordUnassigned forwards unassigned records.
func (m *MultiSink) RecordUnassigned(recs []coremetrics.UnassignedRecord) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.UnassignedRecorder); ok {
			if err := rec.RecordUnassigned(recs); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordWindow forwards window summaries.
func (m *MultiSink) RecordWindow(rec coremetrics.WindowRecord) error {
	for _, s := range m.Sinks {
		if wr, ok := s.(coremetrics.WindowRecorder); ok {
			if err := wr.RecordWindow(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
