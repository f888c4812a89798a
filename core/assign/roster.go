package assign

import (
	"fieldassign/core/model"
)

// UpdateRoster moves each assigned representative to the location of their
// temporally last appointment in the window. Representatives without an
// assignment keep their location. This is the only mutation the engine
// performs on the roster, and it runs before the next window is matched.
func UpdateRoster(final []model.Assignment, roster model.Roster) {
	last := make(map[string]model.Appointment)
	for _, asn := range final {
		prev, ok := last[asn.Representative]
		// On equal timestamps the later assignment in list order wins.
		if !ok || !asn.Appointment.ScheduledAt.Before(prev.ScheduledAt) {
			last[asn.Representative] = asn.Appointment
		}
	}
	for _, rep := range roster {
		if appt, ok := last[rep.Name]; ok {
			rep.Location = appt.Location
		}
	}
}
