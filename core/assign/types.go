package assign

import (
	"context"

	"fieldassign/core/model"
)

// Unassigned captures an appointment that could not be matched, with the
// reason. Unassigned appointments are diagnostics, not errors: the run
// continues.
type Unassigned struct {
	Appointment model.Appointment
	Reason      string
}

// Conflict describes a double-booked representative resolved to their
// cheapest candidate.
type Conflict struct {
	Representative string
	Kept           model.Assignment
	Displaced      []model.Appointment
}

// WindowResult holds the finalized assignments of one window, tagged with its
// ordinal in the run.
type WindowResult struct {
	Ordinal     int
	Window      model.Window
	Assignments []model.Assignment
	Unassigned  []Unassigned
	Conflicts   []Conflict
}

// RunResult accumulates all window results of a run plus the final roster
// state.
type RunResult struct {
	RunID   string
	Windows []WindowResult
	Roster  model.Roster
}

// Assigned returns the total number of assignments across all windows.
func (r RunResult) Assigned() int {
	n := 0
	for _, w := range r.Windows {
		n += len(w.Assignments)
	}
	return n
}

// RosterEditor is consulted after every mutation-eligible window. It receives
// the window just processed and the current roster, and returns the roster to
// use for subsequent windows. The engine validates the returned roster but
// otherwise treats the edit as opaque.
type RosterEditor interface {
	Edit(ctx context.Context, ordinal int, w model.Window, roster model.Roster) (model.Roster, error)
}

// EditorFunc adapts a function to the RosterEditor interface.
type EditorFunc func(ctx context.Context, ordinal int, w model.Window, roster model.Roster) (model.Roster, error)

func (f EditorFunc) Edit(ctx context.Context, ordinal int, w model.Window, roster model.Roster) (model.Roster, error) {
	return f(ctx, ordinal, w, roster)
}
