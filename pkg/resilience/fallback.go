package resilience

import "context"

// FallbackFunc is executed when the breaker is open or overloaded.
type FallbackFunc func(ctx context.Context, err error) (interface{}, error)

// StaticFallback returns a fallback that answers with value and no error,
// so callers can degrade to a known default while the dependency is down.
func StaticFallback(value interface{}) FallbackFunc {
	return func(context.Context, error) (interface{}, error) {
		return value, nil
	}
}
