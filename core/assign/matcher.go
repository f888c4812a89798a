package assign

import (
	"context"
	"sync"

	"fieldassign/core/logger"
	"fieldassign/core/model"
	"fieldassign/core/travel"
)

// GreedyMatcher assigns each appointment to the eligible representative with
// the cheapest travel time. Cost ties keep the first representative in roster
// order; this tie-break is a stated contract, not an accident of iteration.
// The matcher may produce several candidates for the same representative;
// the Resolver untangles those.
type GreedyMatcher struct {
	cache *travel.Cache
	log   logger.Logger
}

// NewGreedyMatcher creates a matcher backed by the given travel cache.
func NewGreedyMatcher(cache *travel.Cache, log logger.Logger) *GreedyMatcher {
	return &GreedyMatcher{cache: cache, log: log}
}

// Match computes candidate assignments for the window's appointments against
// the current roster. Appointments with no eligible representative resolving
// to a known cost are returned as unassigned diagnostics.
func (m *GreedyMatcher) Match(ctx context.Context, appointments []model.Appointment, roster model.Roster) ([]model.Assignment, []Unassigned) {
	m.warmCache(ctx, appointments, roster, nil)

	var candidates []model.Assignment
	var unassigned []Unassigned
	for _, appt := range appointments {
		asn, reason := m.matchOne(ctx, appt, roster, nil)
		if asn == nil {
			m.log.Warnf("no representative for appointment %s (%s): %s", appt.CustomerID, appt.Location, reason)
			unassigned = append(unassigned, Unassigned{Appointment: appt, Reason: reason})
			continue
		}
		candidates = append(candidates, *asn)
	}
	return candidates, unassigned
}

// matchOne selects the cheapest eligible representative for one appointment.
// Representatives whose names appear in busy are skipped; the conflict
// resolver uses this to restrict its second pass to idle representatives.
func (m *GreedyMatcher) matchOne(ctx context.Context, appt model.Appointment, roster model.Roster, busy map[string]struct{}) (*model.Assignment, string) {
	var best *model.Representative
	bestCost := 0.0
	eligible := false

	for _, rep := range roster {
		if _, taken := busy[rep.Name]; taken {
			continue
		}
		if !rep.HasCapability(appt.Capability) {
			continue
		}
		eligible = true
		cost, ok := m.cache.DriveTime(ctx, appt.Location, rep.Location)
		if !ok {
			continue
		}
		if best == nil || cost < bestCost {
			best = rep
			bestCost = cost
		}
	}

	if best == nil {
		if !eligible {
			return nil, "no eligible representative"
		}
		return nil, "travel time unknown for every eligible representative"
	}
	return &model.Assignment{
		Appointment:    appt,
		Representative: best.Name,
		DriveTimeMin:   bestCost,
	}, ""
}

// warmCache resolves every eligible appointment/representative pair
// concurrently before the sequential selection loop runs. The cache collapses
// duplicate in-flight pairs, so this is the only place the engine fans out;
// selection afterwards is deterministic and served entirely from the cache.
func (m *GreedyMatcher) warmCache(ctx context.Context, appointments []model.Appointment, roster model.Roster, busy map[string]struct{}) {
	type pair struct{ from, to string }
	seen := make(map[pair]struct{})
	var wg sync.WaitGroup
	for _, appt := range appointments {
		for _, rep := range roster {
			if _, taken := busy[rep.Name]; taken {
				continue
			}
			if !rep.HasCapability(appt.Capability) {
				continue
			}
			p := pair{from: appt.Location, to: rep.Location}
			if p.from > p.to {
				p.from, p.to = p.to, p.from
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			wg.Add(1)
			go func(from, to string) {
				defer wg.Done()
				m.cache.DriveTime(ctx, from, to)
			}(p.from, p.to)
		}
	}
	wg.Wait()
}
