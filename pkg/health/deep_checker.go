package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/resilience"
)

// DependencyStatus represents the health status of a single dependency
type DependencyStatus struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"` // "healthy", "unhealthy"
	Critical  bool          `json:"critical"`
	Latency   time.Duration `json:"latency_ms"`
	Message   string        `json:"message,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}

// DeepHealthStatus represents the complete health status of the service
type DeepHealthStatus struct {
	Status       string                      `json:"status"` // "healthy", "unhealthy", "degraded"
	Version      string                      `json:"version,omitempty"`
	Uptime       time.Duration               `json:"uptime_seconds"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
	Breakers     map[string]BreakerStatus    `json:"circuit_breakers,omitempty"`
	CheckedAt    time.Time                   `json:"checked_at"`
}

// BreakerStatus represents the status of a circuit breaker
type BreakerStatus struct {
	Name   string `json:"name"`
	State  string `json:"state"` // "closed", "open"
	Allows bool   `json:"allows_requests"`
}

type dependency struct {
	check    Checker
	critical bool
}

// DeepChecker aggregates dependency checks and breaker states. A failing
// critical dependency makes the service unhealthy, anything else degrades it.
type DeepChecker struct {
	mu           sync.RWMutex
	dependencies map[string]dependency
	breakers     map[string]*resilience.CircuitBreaker
	version      string
	startTime    time.Time
	cacheTTL     time.Duration
	lastResult   *DeepHealthStatus
	lastChecked  time.Time
}

// DeepCheckerConfig holds configuration for the deep checker
type DeepCheckerConfig struct {
	Version  string
	CacheTTL time.Duration
}

// DefaultDeepCheckerConfig returns sensible defaults
func DefaultDeepCheckerConfig() DeepCheckerConfig {
	return DeepCheckerConfig{
		Version:  "unknown",
		CacheTTL: 10 * time.Second,
	}
}

// NewDeepChecker creates a new deep health checker
func NewDeepChecker(config DeepCheckerConfig) *DeepChecker {
	return &DeepChecker{
		dependencies: make(map[string]dependency),
		breakers:     make(map[string]*resilience.CircuitBreaker),
		version:      config.Version,
		startTime:    time.Now(),
		cacheTTL:     config.CacheTTL,
	}
}

// AddDependency registers a named check
func (d *DeepChecker) AddDependency(name string, check Checker, critical bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dependencies[name] = dependency{check: check, critical: critical}
}

// AddCircuitBreaker adds a circuit breaker to monitor
func (d *DeepChecker) AddCircuitBreaker(name string, breaker *resilience.CircuitBreaker) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.breakers[name] = breaker
}

// Checks returns the registered dependency checks keyed by name. Each
// result is cached for the checker's TTL.
func (d *DeepChecker) Checks() map[string]func() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]func() error, len(d.dependencies))
	for name, dep := range d.dependencies {
		out[name] = NewCachedChecker(dep.check, d.cacheTTL).Check
	}
	return out
}

// Check performs a deep health check on all dependencies
func (d *DeepChecker) Check(ctx context.Context) *DeepHealthStatus {
	d.mu.RLock()
	if d.lastResult != nil && time.Since(d.lastChecked) < d.cacheTTL {
		result := d.lastResult
		d.mu.RUnlock()
		return result
	}
	deps := make(map[string]dependency, len(d.dependencies))
	for name, dep := range d.dependencies {
		deps[name] = dep
	}
	breakers := make(map[string]*resilience.CircuitBreaker, len(d.breakers))
	for name, b := range d.breakers {
		breakers[name] = b
	}
	d.mu.RUnlock()

	status := &DeepHealthStatus{
		Status:       "healthy",
		Version:      d.version,
		Uptime:       time.Since(d.startTime),
		Dependencies: make(map[string]DependencyStatus, len(deps)),
		Breakers:     make(map[string]BreakerStatus, len(breakers)),
		CheckedAt:    time.Now(),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, dep := range deps {
		wg.Add(1)
		go func(name string, dep dependency) {
			defer wg.Done()

			start := time.Now()
			depStatus := DependencyStatus{Name: name, Status: "healthy", Critical: dep.critical, CheckedAt: start}
			if err := runWithContext(ctx, dep.check); err != nil {
				depStatus.Status = "unhealthy"
				depStatus.Message = err.Error()
			}
			depStatus.Latency = time.Since(start)

			mu.Lock()
			status.Dependencies[name] = depStatus
			if depStatus.Status == "unhealthy" {
				if dep.critical {
					status.Status = "unhealthy"
				} else if status.Status == "healthy" {
					status.Status = "degraded"
				}
			}
			mu.Unlock()
		}(name, dep)
	}

	wg.Wait()

	for name, breaker := range breakers {
		allows := breaker.Allow()
		state := "closed"
		if !allows {
			state = "open"
			if status.Status == "healthy" {
				status.Status = "degraded"
			}
		}
		status.Breakers[name] = BreakerStatus{Name: name, State: state, Allows: allows}
	}

	d.mu.Lock()
	d.lastResult = status
	d.lastChecked = time.Now()
	d.mu.Unlock()

	return status
}

func runWithContext(ctx context.Context, check Checker) error {
	done := make(chan error, 1)
	go func() { done <- check() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GinHandler serves the deep health status. Degraded still answers 200.
func (d *DeepChecker) GinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := d.Check(c.Request.Context())

		httpStatus := http.StatusOK
		if status.Status == "unhealthy" {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, status)
	}
}

// IsReady returns true if no critical dependency is failing
func (d *DeepChecker) IsReady(ctx context.Context) bool {
	return d.Check(ctx).Status != "unhealthy"
}
