package cache

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/symptom-triage-server/internal/domain"
)

// TieredCache checks the in-memory tier before the remote tier. Remote calls go
// through a circuit breaker so a failing Redis does not slow every request.
type TieredCache struct {
	memory  *MemoryCache
	remote  domain.ResultCache
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

// BreakerSettings configures the remote tier circuit breaker
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// NewTieredCache creates a tiered cache. remote may be nil for memory-only operation.
func NewTieredCache(memory *MemoryCache, remote domain.ResultCache, settings BreakerSettings, logger *logrus.Logger) *TieredCache {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 5
	}
	if settings.OpenTimeout == 0 {
		settings.OpenTimeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "result-cache-remote",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Cache circuit breaker state changed")
		},
	})

	return &TieredCache{
		memory:  memory,
		remote:  remote,
		breaker: breaker,
		logger:  logger,
	}
}

// Get looks in memory, then the remote tier. Remote hits are copied into memory.
func (c *TieredCache) Get(ctx context.Context, key string) (*domain.TriageResult, error) {
	if c.memory != nil {
		if result, err := c.memory.Get(ctx, key); err == nil {
			return result, nil
		}
	}

	if c.remote == nil {
		return nil, domain.ErrCacheMiss
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		result, err := c.remote.Get(ctx, key)
		if errors.Is(err, domain.ErrCacheMiss) {
			// a miss is not a remote failure
			return nil, nil
		}
		return result, err
	})
	if err != nil {
		return nil, err
	}

	result, _ := out.(*domain.TriageResult)
	if result == nil {
		return nil, domain.ErrCacheMiss
	}

	if c.memory != nil {
		_ = c.memory.Set(ctx, key, result, 0)
	}
	return result, nil
}

// Set writes to both tiers. A remote failure is returned after the memory write.
func (c *TieredCache) Set(ctx context.Context, key string, result *domain.TriageResult, ttl time.Duration) error {
	if c.memory != nil {
		_ = c.memory.Set(ctx, key, result, ttl)
	}

	if c.remote == nil {
		return nil
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.remote.Set(ctx, key, result, ttl)
	})
	return err
}

// BreakerState reports the remote tier breaker state
func (c *TieredCache) BreakerState() gobreaker.State {
	return c.breaker.State()
}
