package redis

import (
	"context"
	"time"
)

// ClientInterface defines the Redis operations the services depend on
type ClientInterface interface {
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	SetIfAbsent(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)
