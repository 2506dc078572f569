package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Checker is a health check function that returns an error if unhealthy
type Checker func() error

// Pinger is anything that can report connectivity within a deadline
type Pinger interface {
	Ping(ctx context.Context) error
}

// DefaultTimeout bounds every individual check
const DefaultTimeout = 2 * time.Second

// PingChecker wraps a Pinger with a deadline
func PingChecker(name string, p Pinger, timeout time.Duration) Checker {
	return func() error {
		if p == nil {
			return fmt.Errorf("%s client is nil", name)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s ping failed: %w", name, err)
		}
		return nil
	}
}

// PostgresChecker pings the pool and fails when it holds no connections
func PostgresChecker(pool *pgxpool.Pool) Checker {
	ping := PingChecker("postgres", pool, DefaultTimeout)
	return func() error {
		if pool == nil {
			return fmt.Errorf("postgres pool is nil")
		}
		if err := ping(); err != nil {
			return err
		}
		if pool.Stat().TotalConns() == 0 {
			return fmt.Errorf("no open database connections")
		}
		return nil
	}
}

// RedisChecker pings Redis
func RedisChecker(client Pinger) Checker {
	return PingChecker("redis", client, DefaultTimeout)
}

// NATSChecker reports the event bus connection state
func NATSChecker(bus interface{ Ping() error }) Checker {
	return func() error {
		if bus == nil {
			return fmt.Errorf("nats bus is nil")
		}
		return bus.Ping()
	}
}

// CachedChecker caches the result of a health check for a given duration
type CachedChecker struct {
	checker    Checker
	cacheTTL   time.Duration
	mu         sync.Mutex
	lastCheck  time.Time
	lastResult error
}

// NewCachedChecker creates a new cached health checker
func NewCachedChecker(checker Checker, cacheTTL time.Duration) *CachedChecker {
	return &CachedChecker{
		checker:  checker,
		cacheTTL: cacheTTL,
	}
}

// Check runs the health check, using cached result if still valid
func (c *CachedChecker) Check() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if !c.lastCheck.IsZero() && now.Sub(c.lastCheck) < c.cacheTTL {
		return c.lastResult
	}

	c.lastResult = c.checker()
	c.lastCheck = now
	return c.lastResult
}
