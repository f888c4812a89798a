package travel

import (
	"context"
	"time"
)

// Oracle computes the travel time between two location identifiers. It is the
// boundary to the external distance provider: implementations may call out
// over the network and are expected to fail, not guess. The engine never
// interprets provider-specific errors beyond the ok/not-ok boundary.
type Oracle interface {
	TravelTime(ctx context.Context, origin, dest string) (time.Duration, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, origin, dest string) (time.Duration, error)

func (f OracleFunc) TravelTime(ctx context.Context, origin, dest string) (time.Duration, error) {
	return f(ctx, origin, dest)
}
