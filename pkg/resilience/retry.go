package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/richxcame/booking-platform/pkg/logger"
	"go.uber.org/zap"
)

// RetryConfig controls how many times an operation is attempted and how
// long to wait between attempts.
type RetryConfig struct {
	MaxAttempts       int // including the first call
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	EnableJitter      bool

	// RetryableChecker decides whether err is worth another attempt. When
	// nil every error except cancellation and an open breaker is retried.
	RetryableChecker func(error) bool
}

// DefaultRetryConfig is tuned for short database round trips.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        2 * time.Second,
		BackoffMultiplier: 2.0,
		EnableJitter:      true,
	}
}

// RetryWithName runs operation until it succeeds, returns a permanent
// error, runs out of attempts or ctx ends. Metrics are labelled with name.
func RetryWithName(ctx context.Context, config RetryConfig, operation Operation, name string) (interface{}, error) {
	attempts := max(config.MaxAttempts, 1)
	started := time.Now()
	finish := func(attempt int, ok bool) {
		RecordRetryOperation(name, time.Since(started).Seconds(), attempt, ok)
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			finish(attempt, false)
			return nil, ctxErr
		}

		var result interface{}
		result, err = operation(ctx)
		RecordRetryAttempt(name, err == nil)
		if err == nil {
			if attempt > 1 {
				logger.Get().Info("operation recovered", zap.String("operation", name), zap.Int("attempt", attempt))
			}
			finish(attempt, true)
			return result, nil
		}

		if !shouldRetry(err, config) {
			finish(attempt, false)
			return nil, err
		}
		if attempt == attempts {
			logger.Get().Warn("retries exhausted", zap.String("operation", name), zap.Int("attempts", attempt), zap.Error(err))
			break
		}

		wait := calculateBackoff(attempt, config)
		RecordRetryBackoff(name, wait.Seconds())
		logger.Get().Debug("retrying operation",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			finish(attempt, false)
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	finish(attempts, false)
	return nil, err
}

// calculateBackoff grows InitialBackoff geometrically per attempt, capped
// at MaxBackoff. With jitter the result is drawn uniformly from [0, cap).
func calculateBackoff(attempt int, config RetryConfig) time.Duration {
	d := float64(config.InitialBackoff) * math.Pow(config.BackoffMultiplier, float64(attempt-1))
	d = math.Min(d, float64(config.MaxBackoff))

	wait := time.Duration(d)
	if config.EnableJitter && wait > 0 {
		wait = time.Duration(rand.Int63n(int64(wait)))
	}
	return wait
}

func shouldRetry(err error, config RetryConfig) bool {
	switch {
	case err == nil:
		return false
	case config.RetryableChecker != nil:
		return config.RetryableChecker(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, ErrCircuitOpen):
		return false
	}
	return true
}
