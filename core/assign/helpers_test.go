package assign

import (
	"context"
	"fmt"
	"time"

	"fieldassign/core/model"
	"fieldassign/core/travel"
	"fieldassign/infra/logger"
)

// staticOracle serves travel times from a fixed table keyed by unordered
// location pairs. Missing pairs fail like a provider outage.
type staticOracle struct {
	minutes map[[2]string]float64
	calls   int
}

func newStaticOracle(minutes map[[2]string]float64) *staticOracle {
	norm := make(map[[2]string]float64, len(minutes))
	for k, v := range minutes {
		if k[1] < k[0] {
			k[0], k[1] = k[1], k[0]
		}
		norm[k] = v
	}
	return &staticOracle{minutes: norm}
}

func (o *staticOracle) TravelTime(ctx context.Context, origin, dest string) (time.Duration, error) {
	o.calls++
	if dest < origin {
		origin, dest = dest, origin
	}
	m, ok := o.minutes[[2]string{origin, dest}]
	if !ok {
		return 0, fmt.Errorf("no route between %s and %s", origin, dest)
	}
	return time.Duration(m * float64(time.Minute)), nil
}

func newTestCache(minutes map[[2]string]float64) *travel.Cache {
	return travel.NewCache(newStaticOracle(minutes), logger.NopLogger{})
}

func appt(id, zip, capability string, at time.Time) model.Appointment {
	return model.Appointment{
		CustomerID:  id,
		ScheduledAt: at,
		Location:    zip,
		Capability:  capability,
	}
}

func rep(name, zip string, capabilities ...string) *model.Representative {
	return &model.Representative{Name: name, Location: zip, Capabilities: capabilities}
}
