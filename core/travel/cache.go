package travel

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"fieldassign/core/logger"
)

// pairKey identifies an unordered location pair. Normalizing the order makes
// DriveTime(a,b) and DriveTime(b,a) hit the same entry.
type pairKey struct {
	lo, hi string
}

func keyFor(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Cache memoizes pairwise travel times in minutes for the duration of a run.
// Successful lookups are cached forever; failed lookups are not cached and
// will be retried on next use. Concurrent requests for the same pair are
// collapsed into a single oracle call.
type Cache struct {
	oracle Oracle
	log    logger.Logger

	group singleflight.Group
	mu    sync.RWMutex
	times map[pairKey]float64
}

// NewCache creates a cache backed by the given oracle.
func NewCache(oracle Oracle, log logger.Logger) *Cache {
	return &Cache{
		oracle: oracle,
		log:    log,
		times:  make(map[pairKey]float64),
	}
}

// DriveTime returns the travel time in minutes between the two locations.
// The boolean is false when the oracle could not resolve the pair; callers
// treat such candidates as ineligible for the current match.
func (c *Cache) DriveTime(ctx context.Context, a, b string) (float64, bool) {
	key := keyFor(a, b)

	c.mu.RLock()
	minutes, ok := c.times[key]
	c.mu.RUnlock()
	if ok {
		cacheHits.Inc()
		return minutes, true
	}
	cacheMisses.Inc()

	v, err, _ := c.group.Do(key.lo+"|"+key.hi, func() (any, error) {
		// A waiter released after the first flight may race a fresh miss;
		// re-check before going to the oracle.
		c.mu.RLock()
		m, ok := c.times[key]
		c.mu.RUnlock()
		if ok {
			return m, nil
		}
		start := time.Now()
		d, err := c.oracle.TravelTime(ctx, a, b)
		oracleLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			return 0.0, err
		}
		m = d.Minutes()
		c.mu.Lock()
		c.times[key] = m
		c.mu.Unlock()
		return m, nil
	})
	if err != nil {
		oracleFailures.Inc()
		c.log.Warnf("travel time lookup failed for %s -> %s: %v", a, b, err)
		return 0, false
	}
	return v.(float64), true
}

// Size returns the number of cached pairs.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.times)
}
