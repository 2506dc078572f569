package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:       attempts,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        2 * time.Millisecond,
		BackoffMultiplier: 2,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	result, err := RetryWithName(context.Background(), fastConfig(3), func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection reset")
		}
		return "ok", nil
	}, "test.retry")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	permanent := errors.New("constraint violation")
	cfg := fastConfig(5)
	cfg.RetryableChecker = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	_, err := RetryWithName(context.Background(), cfg, func(context.Context) (interface{}, error) {
		calls++
		return nil, permanent
	}, "test.permanent")

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RetryWithName(ctx, fastConfig(3), func(context.Context) (interface{}, error) {
		return "never", nil
	}, "test.cancelled")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoffIsCapped(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, BackoffMultiplier: 2}
	assert.Equal(t, time.Second, calculateBackoff(1, cfg))
	assert.Equal(t, 2*time.Second, calculateBackoff(2, cfg))
	assert.Equal(t, 3*time.Second, calculateBackoff(5, cfg))
}
