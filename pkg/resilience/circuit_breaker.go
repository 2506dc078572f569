package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/richxcame/booking-platform/pkg/config"
	"github.com/richxcame/booking-platform/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned when the breaker refuses a request because it is open.
var ErrCircuitOpen = errors.New("circuit breaker open")

// Operation represents a call wrapped by the circuit breaker.
type Operation func(ctx context.Context) (interface{}, error)

// Settings defines runtime options for the circuit breaker.
type Settings struct {
	Name             string
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
	SuccessThreshold uint32
}

// SettingsFromConfig converts env-driven breaker settings for the named dependency.
func SettingsFromConfig(name string, cfg config.CircuitBreakerConfig) Settings {
	effective := cfg.SettingsFor(name)
	return Settings{
		Name:             name,
		Interval:         time.Duration(effective.IntervalSeconds) * time.Second,
		Timeout:          time.Duration(effective.TimeoutSeconds) * time.Second,
		FailureThreshold: uint32(effective.FailureThreshold),
		SuccessThreshold: uint32(effective.SuccessThreshold),
	}
}

// CircuitBreaker wraps gobreaker with logging, metrics and an optional fallback.
type CircuitBreaker struct {
	name     string
	breaker  *gobreaker.CircuitBreaker
	fallback FallbackFunc
}

// NewCircuitBreaker constructs a breaker with logging and optional fallback behaviour.
func NewCircuitBreaker(settings Settings, fallback FallbackFunc) *CircuitBreaker {
	name := nextBreakerName(settings.Name)
	threshold := settings.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	breakerSettings := gobreaker.Settings{
		Name:     name,
		Timeout:  settings.Timeout,
		Interval: settings.Interval,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			recordBreakerStateChange(name, from, to)
			logger.Get().Info("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	if settings.SuccessThreshold > 0 {
		breakerSettings.MaxRequests = settings.SuccessThreshold
	}

	recordBreakerState(name, gobreaker.StateClosed)

	return &CircuitBreaker{
		name:     name,
		breaker:  gobreaker.NewCircuitBreaker(breakerSettings),
		fallback: fallback,
	}
}

// Execute runs the supplied operation through the breaker.
func (c *CircuitBreaker) Execute(ctx context.Context, operation Operation) (interface{}, error) {
	if operation == nil {
		return nil, errors.New("operation cannot be nil")
	}

	if c == nil || c.breaker == nil {
		return operation(ctx)
	}

	recordBreakerRequest(c.name)
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return operation(ctx)
	})
	if err == nil {
		return result, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		recordBreakerFallback(c.name)
		if c.fallback != nil {
			return c.fallback(ctx, err)
		}
		return nil, ErrCircuitOpen
	}

	recordBreakerFailure(c.name)
	return nil, err
}

// Allow reports whether the breaker would allow a request without executing it.
func (c *CircuitBreaker) Allow() bool {
	if c == nil || c.breaker == nil {
		return true
	}
	return c.breaker.State() != gobreaker.StateOpen
}

// Name returns the breaker name used in logs and metrics.
func (c *CircuitBreaker) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}
