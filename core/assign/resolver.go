package assign

import (
	"context"
	"sort"

	"fieldassign/core/logger"
	"fieldassign/core/model"
)

// Resolver removes double-bookings from a candidate assignment list. Each
// representative keeps their cheapest candidate; displaced appointments get a
// second matching pass restricted to representatives still idle in the
// window. The output is an injective appointment-to-representative mapping.
type Resolver struct {
	matcher *GreedyMatcher
	log     logger.Logger
}

// NewResolver creates a resolver that reuses the matcher for its second pass.
func NewResolver(matcher *GreedyMatcher, log logger.Logger) *Resolver {
	return &Resolver{matcher: matcher, log: log}
}

// Resolve finalizes a window's assignments.
func (r *Resolver) Resolve(ctx context.Context, candidates []model.Assignment, roster model.Roster) ([]model.Assignment, []Unassigned, []Conflict) {
	byRep := make(map[string][]model.Assignment)
	var repOrder []string
	for _, c := range candidates {
		if _, seen := byRep[c.Representative]; !seen {
			repOrder = append(repOrder, c.Representative)
		}
		byRep[c.Representative] = append(byRep[c.Representative], c)
	}

	kept := make(map[string]model.Assignment, len(byRep))
	var displaced []model.Appointment
	var conflicts []Conflict
	for _, rep := range repOrder {
		list := byRep[rep]
		if len(list) == 1 {
			kept[rep] = list[0]
			continue
		}
		// Cheapest wins; the stable sort keeps the first-encountered
		// candidate ahead on equal cost.
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DriveTimeMin < list[j].DriveTimeMin
		})
		kept[rep] = list[0]
		conflict := Conflict{Representative: rep, Kept: list[0]}
		for _, extra := range list[1:] {
			displaced = append(displaced, extra.Appointment)
			conflict.Displaced = append(conflict.Displaced, extra.Appointment)
		}
		conflicts = append(conflicts, conflict)
		conflictsResolved.Inc()
		r.log.Infof("representative %s double-booked with %d appointments, kept %s",
			rep, len(list), list[0].Appointment.CustomerID)
	}

	// Final list preserves candidate order for the kept assignments.
	var final []model.Assignment
	busy := make(map[string]struct{}, len(kept))
	for _, c := range candidates {
		if k, ok := kept[c.Representative]; ok && k.Appointment.CustomerID == c.Appointment.CustomerID {
			final = append(final, c)
			busy[c.Representative] = struct{}{}
			delete(kept, c.Representative)
		}
	}

	// Second pass over displaced appointments, idle representatives only.
	// A representative picked up here becomes busy for the remaining ones.
	var unassigned []Unassigned
	if len(displaced) > 0 {
		r.matcher.warmCache(ctx, displaced, roster, busy)
	}
	for _, appt := range displaced {
		asn, reason := r.matcher.matchOne(ctx, appt, roster, busy)
		if asn == nil {
			if reason == "no eligible representative" {
				reason = "no idle eligible representative"
			}
			r.log.Warnf("could not reassign appointment %s (%s): %s", appt.CustomerID, appt.Location, reason)
			unassigned = append(unassigned, Unassigned{Appointment: appt, Reason: reason})
			continue
		}
		busy[asn.Representative] = struct{}{}
		final = append(final, *asn)
	}
	return final, unassigned, conflicts
}
