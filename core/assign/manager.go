package assign

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fieldassign/core/events"
	"fieldassign/core/logger"
	coremetrics "fieldassign/core/metrics"
	"fieldassign/core/model"
	"fieldassign/core/travel"
	"fieldassign/internal/eventbus"
)

// Manager orchestrates an assignment run across an ordered list of windows.
// Windows are processed strictly in sequence: each window's matching observes
// the roster state left by the previous window's location update and any
// roster edit in between. The travel cache is owned by the manager's caller
// and shared by the matcher and the resolver's second pass.
type Manager struct {
	matcher  *GreedyMatcher
	resolver *Resolver
	editor   RosterEditor
	sink     coremetrics.Sink
	bus      eventbus.EventBus
	log      logger.Logger
}

// NewManager creates a manager. The editor, sink and bus may be nil; a nil
// editor skips roster edits, a nil sink records nothing.
func NewManager(cache *travel.Cache, editor RosterEditor, sink coremetrics.Sink, bus eventbus.EventBus, log logger.Logger) (*Manager, error) {
	if cache == nil {
		return nil, fmt.Errorf("assign: nil travel cache provided to NewManager")
	}
	if log == nil {
		return nil, fmt.Errorf("assign: nil logger provided to NewManager")
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	matcher := NewGreedyMatcher(cache, log)
	return &Manager{
		matcher:  matcher,
		resolver: NewResolver(matcher, log),
		editor:   editor,
		sink:     sink,
		bus:      bus,
		log:      log,
	}, nil
}

// Run processes every window in order and returns the accumulated results
// plus the final roster. Appointment-level failures are carried in the result
// as unassigned diagnostics; only structural problems (no appointments,
// malformed windows or roster) abort the run.
func (m *Manager) Run(ctx context.Context, appointments []model.Appointment, roster model.Roster, windows []model.Window) (RunResult, error) {
	if len(appointments) == 0 {
		return RunResult{}, fmt.Errorf("assign: no appointments to process")
	}
	if err := model.ValidateWindows(windows); err != nil {
		return RunResult{}, fmt.Errorf("assign: invalid windows: %w", err)
	}
	if err := roster.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("assign: invalid roster: %w", err)
	}

	result := RunResult{RunID: uuid.NewString()}
	m.publish(events.RunStartedEvent{
		RunID:        result.RunID,
		Windows:      len(windows),
		Appointments: len(appointments),
		Reps:         len(roster),
		Time:         time.Now(),
	})
	m.log.Infof("run %s: %d appointments, %d representatives, %d windows",
		result.RunID, len(appointments), len(roster), len(windows))

	for i, w := range windows {
		ordinal := i + 1
		start := time.Now()

		subset := model.Partition(appointments, w)
		m.log.Infof("window %d (%s - %s): %d appointments",
			ordinal, w.Start.Format("15:04"), w.End.Format("15:04"), len(subset))

		candidates, unassigned := m.matcher.Match(ctx, subset, roster)
		final, displaced, conflicts := m.resolver.Resolve(ctx, candidates, roster)
		unassigned = append(unassigned, displaced...)

		UpdateRoster(final, roster)

		wr := WindowResult{
			Ordinal:     ordinal,
			Window:      w,
			Assignments: final,
			Unassigned:  unassigned,
			Conflicts:   conflicts,
		}
		result.Windows = append(result.Windows, wr)
		m.recordWindow(result.RunID, wr, time.Since(start))

		for _, c := range conflicts {
			m.publish(events.ConflictEvent{
				RunID:          result.RunID,
				Ordinal:        ordinal,
				Representative: c.Representative,
				KeptCustomer:   c.Kept.Appointment.CustomerID,
				Displaced:      customerIDs(c.Displaced),
			})
		}
		for _, u := range unassigned {
			m.publish(events.UnassignedEvent{
				RunID:      result.RunID,
				Ordinal:    ordinal,
				CustomerID: u.Appointment.CustomerID,
				Location:   u.Appointment.Location,
				Reason:     u.Reason,
			})
		}
		m.publish(events.WindowEvent{
			RunID:      result.RunID,
			Ordinal:    ordinal,
			Window:     w,
			Assigned:   len(final),
			Unassigned: len(unassigned),
		})

		if w.AllowEdit && m.editor != nil {
			before := len(roster)
			edited, err := m.editor.Edit(ctx, ordinal, w, roster)
			if err != nil {
				return result, fmt.Errorf("assign: roster edit after window %d: %w", ordinal, err)
			}
			if err := edited.Validate(); err != nil {
				return result, fmt.Errorf("assign: roster edit after window %d returned malformed roster: %w", ordinal, err)
			}
			roster = edited
			m.publish(events.RosterEditEvent{
				RunID:   result.RunID,
				Ordinal: ordinal,
				Before:  before,
				After:   len(roster),
			})
		}
	}

	result.Roster = roster
	return result, nil
}

// recordWindow feeds package metrics and the configured sink. Sink failures
// are logged, never fatal.
func (m *Manager) recordWindow(runID string, wr WindowResult, elapsed time.Duration) {
	windowDuration.Observe(elapsed.Seconds())
	appointmentsUnassigned.Add(float64(len(wr.Unassigned)))

	displaced := make(map[string]struct{})
	for _, c := range wr.Conflicts {
		for _, a := range c.Displaced {
			displaced[a.CustomerID] = struct{}{}
		}
	}

	now := time.Now()
	recs := make([]coremetrics.AssignmentRecord, 0, len(wr.Assignments))
	for _, asn := range wr.Assignments {
		pass := "initial"
		if _, ok := displaced[asn.Appointment.CustomerID]; ok {
			pass = "reassigned"
		}
		appointmentsAssigned.WithLabelValues(pass).Inc()
		recs = append(recs, coremetrics.AssignmentRecord{
			RunID:          runID,
			WindowOrdinal:  wr.Ordinal,
			CustomerID:     asn.Appointment.CustomerID,
			Representative: asn.Representative,
			Location:       asn.Appointment.Location,
			Capability:     asn.Appointment.Capability,
			DriveTimeMin:   asn.DriveTimeMin,
			DriveTimeKnown: asn.KnownDriveTime(),
			ScheduledAt:    asn.Appointment.ScheduledAt,
			Time:           now,
		})
	}
	if err := m.sink.RecordAssignments(recs); err != nil {
		m.log.Errorf("metrics error: %v", err)
	}
	if ur, ok := m.sink.(coremetrics.UnassignedRecorder); ok {
		urecs := make([]coremetrics.UnassignedRecord, 0, len(wr.Unassigned))
		for _, u := range wr.Unassigned {
			urecs = append(urecs, coremetrics.UnassignedRecord{
				RunID:         runID,
				WindowOrdinal: wr.Ordinal,
				CustomerID:    u.Appointment.CustomerID,
				Location:      u.Appointment.Location,
				Capability:    u.Appointment.Capability,
				Reason:        u.Reason,
				Time:          now,
			})
		}
		if err := ur.RecordUnassigned(urecs); err != nil {
			m.log.Errorf("metrics error: %v", err)
		}
	}
	if wrec, ok := m.sink.(coremetrics.WindowRecorder); ok {
		if err := wrec.RecordWindow(coremetrics.WindowRecord{
			RunID:      runID,
			Ordinal:    wr.Ordinal,
			Start:      wr.Window.Start,
			End:        wr.Window.End,
			Assigned:   len(wr.Assignments),
			Unassigned: len(wr.Unassigned),
			Duration:   elapsed,
		}); err != nil {
			m.log.Errorf("metrics error: %v", err)
		}
	}
}

func (m *Manager) publish(e eventbus.Event) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func customerIDs(appts []model.Appointment) []string {
	ids := make([]string, len(appts))
	for i, a := range appts {
		ids[i] = a.CustomerID
	}
	return ids
}
