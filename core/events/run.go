package events

import "time"

// RunStartedEvent is published when an assignment run begins.
type RunStartedEvent struct {
	RunID        string
	Windows      int
	Appointments int
	Reps         int
	Time         time.Time
}
