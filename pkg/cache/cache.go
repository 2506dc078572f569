package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/richxcame/booking-platform/pkg/logger"
	redisclient "github.com/richxcame/booking-platform/pkg/redis"
	"go.uber.org/zap"
)

// ErrMiss is returned by Get when the key is not cached
var ErrMiss = errors.New("cache miss")

// Store is the part of the Redis client the cache needs
type Store interface {
	GetString(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var _ Store = (redisclient.ClientInterface)(nil)

// Manager handles caching operations with JSON serialization
type Manager struct {
	redis Store
}

// NewManager creates a new cache manager
func NewManager(redis Store) *Manager {
	return &Manager{redis: redis}
}

// Get retrieves a cached value and unmarshals it into result
func (m *Manager) Get(ctx context.Context, key string, result interface{}) error {
	data, err := m.redis.GetString(ctx, key)
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return ErrMiss
		}
		return err
	}

	return json.Unmarshal([]byte(data), result)
}

// Set marshals and caches a value with expiration
func (m *Manager) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return m.redis.SetWithExpiration(ctx, key, string(data), ttl)
}

// GetOrLoad fills result from the cache, or from load on a miss. Cache
// failures are logged and never fail the call.
func (m *Manager) GetOrLoad(ctx context.Context, key string, ttl time.Duration, result interface{}, load func(ctx context.Context) (interface{}, error)) error {
	err := m.Get(ctx, key, result)
	if err == nil {
		cacheLookupsTotal.WithLabelValues("hit").Inc()
		return nil
	}
	if !errors.Is(err, ErrMiss) {
		logger.WarnContext(ctx, "cache read failed", zap.String("key", key), zap.Error(err))
	}
	cacheLookupsTotal.WithLabelValues("miss").Inc()

	data, err := load(ctx)
	if err != nil {
		return err
	}

	if err := m.Set(ctx, key, data, ttl); err != nil {
		logger.WarnContext(ctx, "cache write failed", zap.String("key", key), zap.Error(err))
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, result)
}

// Delete removes keys from the cache
func (m *Manager) Delete(ctx context.Context, keys ...string) error {
	return m.redis.Delete(ctx, keys...)
}

// CacheKeys defines cache key patterns
type CacheKeys struct{}

var Keys = CacheKeys{}

// FinancialReport returns the cache key for a report window
func (k CacheKeys) FinancialReport(start, end time.Time) string {
	return fmt.Sprintf("financial_report:%d:%d", start.UTC().Unix(), end.UTC().Unix())
}

// TTL defines common cache TTL durations
type CacheTTL struct{}

var TTL = CacheTTL{}

// Report bounds how long a closed-window report may lag a fee being paid.
func (t CacheTTL) Report() time.Duration { return time.Minute }
