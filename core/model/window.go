package model

import (
	"fmt"
	"time"
)

// Window is a bounded time interval over which appointments are grouped and
// matched as one batch. AllowEdit marks windows after which the roster editor
// is consulted before the next window runs.
type Window struct {
	Start     time.Time
	End       time.Time
	AllowEdit bool
}

// Contains reports whether the timestamp falls within the window. Both bounds
// are inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ValidateWindows rejects empty, unordered or overlapping window lists. The
// orchestrator assumes disjoint, chronologically ordered windows; violating
// that would silently duplicate or drop appointments, so it is refused up
// front as a configuration error.
func ValidateWindows(windows []Window) error {
	if len(windows) == 0 {
		return fmt.Errorf("at least one window is required")
	}
	for i, w := range windows {
		if w.End.Before(w.Start) {
			return fmt.Errorf("window %d: end %s before start %s", i+1, w.End, w.Start)
		}
		if i > 0 && !windows[i-1].End.Before(w.Start) {
			return fmt.Errorf("window %d overlaps window %d", i+1, i)
		}
	}
	return nil
}

// Partition returns the appointments whose scheduled time falls within the
// window, preserving input order.
func Partition(appointments []Appointment, w Window) []Appointment {
	var subset []Appointment
	for _, a := range appointments {
		if w.Contains(a.ScheduledAt) {
			subset = append(subset, a)
		}
	}
	return subset
}

// DeriveWindows splits the appointment span into the default three windows:
// the first two hours, then up to five hours, then the remainder. The first
// two windows allow roster edits before the next one runs.
func DeriveWindows(appointments []Appointment) []Window {
	if len(appointments) == 0 {
		return nil
	}
	earliest := appointments[0].ScheduledAt
	latest := appointments[0].ScheduledAt
	for _, a := range appointments[1:] {
		if a.ScheduledAt.Before(earliest) {
			earliest = a.ScheduledAt
		}
		if a.ScheduledAt.After(latest) {
			latest = a.ScheduledAt
		}
	}
	thirdStart := earliest.Add(5*time.Hour + time.Minute)
	thirdEnd := latest
	if thirdEnd.Before(thirdStart) {
		thirdEnd = thirdStart
	}
	return []Window{
		{Start: earliest, End: earliest.Add(2 * time.Hour), AllowEdit: true},
		{Start: earliest.Add(2*time.Hour + time.Minute), End: earliest.Add(5 * time.Hour), AllowEdit: true},
		{Start: thirdStart, End: thirdEnd},
	}
}
