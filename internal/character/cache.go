package character

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"hpportal/internal/platform/hpapi"
	"hpportal/internal/platform/logger"
	"hpportal/internal/platform/metrics"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched collection is served before the next
// lookup triggers a refresh.
const DefaultTTL = 15 * time.Minute

const refreshKey = "characters"

// snapshot is never modified after it is stored.
type snapshot struct {
	characters []Character
	fetchedAt  time.Time
}

func (s *snapshot) freshAt(now time.Time, ttl time.Duration) bool {
	return s != nil && now.Sub(s.fetchedAt) < ttl
}

// Cache holds the most recent full character collection and refreshes it
// lazily from a Fetcher once it is older than the TTL. Concurrent lookups on
// a stale cache share a single upstream fetch.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	clock   clockwork.Clock
	logger  logger.Logger
	metrics *metrics.Metrics

	current atomic.Pointer[snapshot]
	flight  singleflight.Group
}

type CacheOption func(*Cache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(clock clockwork.Clock) CacheOption {
	return func(c *Cache) {
		c.clock = clock
	}
}

func WithLogger(l logger.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = l.With(logger.String("component", "character_cache"))
	}
}

func WithMetrics(m *metrics.Metrics) CacheOption {
	return func(c *Cache) {
		c.metrics = m
	}
}

func NewCache(fetcher Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		fetcher: fetcher,
		ttl:     DefaultTTL,
		clock:   clockwork.NewRealClock(),
		logger:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached collection while it is fresh, otherwise it refreshes
// first. The returned slice is shared and must not be modified.
//
// A failed refresh returns an error matching ErrRemoteFetch and leaves the
// previous collection in place; stale data is not served in its stead.
func (c *Cache) Get(ctx context.Context) ([]Character, error) {
	if s := c.current.Load(); s.freshAt(c.clock.Now(), c.ttl) {
		c.metrics.CacheHit()
		return s.characters, nil
	}
	c.metrics.CacheMiss()

	v, err, shared := c.flight.Do(refreshKey, func() (any, error) {
		// another caller may have refreshed while we queued for the flight
		if s := c.current.Load(); s.freshAt(c.clock.Now(), c.ttl) {
			return s.characters, nil
		}
		// the fetch is shared, so one caller going away must not cancel it
		return c.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("joined in-flight character refresh")
	}
	return v.([]Character), nil
}

func (c *Cache) refresh(ctx context.Context) ([]Character, error) {
	started := c.clock.Now()
	raw, err := c.fetcher.FetchAll(ctx)
	elapsed := c.clock.Since(started)
	if err != nil {
		if !errors.Is(err, ErrRemoteFetch) {
			err = &hpapi.RemoteFetchError{Err: err}
		}
		c.metrics.RefreshDone(elapsed, 0, err)
		c.logger.Error("character refresh failed",
			logger.Error(err),
			logger.Duration("elapsed", elapsed),
			logger.Bool("stale_data_kept", c.current.Load() != nil),
		)
		return nil, fmt.Errorf("refresh characters: %w", err)
	}

	s := &snapshot{characters: fromRemote(raw), fetchedAt: started}
	c.current.Store(s)

	c.metrics.RefreshDone(elapsed, len(s.characters), nil)
	c.logger.Info("character cache refreshed",
		logger.Int("characters", len(s.characters)),
		logger.Duration("elapsed", elapsed),
	)
	return s.characters, nil
}

// Status reports the cache state without touching the network.
func (c *Cache) Status() CacheStatus {
	now := c.clock.Now()
	st := CacheStatus{TTL: c.ttl}
	s := c.current.Load()
	if s == nil {
		return st
	}
	st.Populated = true
	st.Size = len(s.characters)
	st.FetchedAt = s.fetchedAt
	st.Age = now.Sub(s.fetchedAt)
	st.Fresh = s.freshAt(now, c.ttl)
	return st
}
