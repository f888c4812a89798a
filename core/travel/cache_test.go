package travel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fieldassign/infra/logger"
)

type countingOracle struct {
	calls atomic.Int64
	fail  bool
}

func (o *countingOracle) TravelTime(ctx context.Context, origin, dest string) (time.Duration, error) {
	o.calls.Add(1)
	if o.fail {
		return 0, fmt.Errorf("provider unavailable")
	}
	return 20 * time.Minute, nil
}

func TestCache_SymmetryAndIdempotence(t *testing.T) {
	oracle := &countingOracle{}
	c := NewCache(oracle, logger.NopLogger{})
	ctx := context.Background()

	ab, ok := c.DriveTime(ctx, "98001", "98002")
	if !ok {
		t.Fatalf("expected known drive time")
	}
	ba, ok := c.DriveTime(ctx, "98002", "98001")
	if !ok {
		t.Fatalf("expected known drive time")
	}
	if ab != ba {
		t.Errorf("cost(a,b)=%v != cost(b,a)=%v", ab, ba)
	}
	if ab != 20 {
		t.Errorf("expected 20 minutes, got %v", ab)
	}
	if got := oracle.calls.Load(); got != 1 {
		t.Errorf("expected a single oracle call, got %d", got)
	}
}

func TestCache_FailureNotCached(t *testing.T) {
	oracle := &countingOracle{fail: true}
	c := NewCache(oracle, logger.NopLogger{})
	ctx := context.Background()

	if _, ok := c.DriveTime(ctx, "98001", "98002"); ok {
		t.Fatalf("expected unknown drive time on oracle failure")
	}
	if c.Size() != 0 {
		t.Fatalf("failed lookup must not be cached")
	}

	// Retried once the provider recovers.
	oracle.fail = false
	if _, ok := c.DriveTime(ctx, "98001", "98002"); !ok {
		t.Fatalf("expected retry to succeed")
	}
	if got := oracle.calls.Load(); got != 2 {
		t.Errorf("expected 2 oracle calls, got %d", got)
	}
}

type slowOracle struct {
	calls atomic.Int64
}

func (o *slowOracle) TravelTime(ctx context.Context, origin, dest string) (time.Duration, error) {
	o.calls.Add(1)
	time.Sleep(10 * time.Millisecond)
	return 5 * time.Minute, nil
}

func TestCache_ConcurrentLookupsCollapse(t *testing.T) {
	oracle := &slowOracle{}
	c := NewCache(oracle, logger.NopLogger{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Alternate argument order to exercise pair normalization.
			if i%2 == 0 {
				c.DriveTime(ctx, "98001", "98002")
			} else {
				c.DriveTime(ctx, "98002", "98001")
			}
		}(i)
	}
	wg.Wait()
	if got := oracle.calls.Load(); got != 1 {
		t.Errorf("expected one oracle call for concurrent lookups, got %d", got)
	}
	if c.Size() != 1 {
		t.Errorf("expected one cached pair, got %d", c.Size())
	}
}
