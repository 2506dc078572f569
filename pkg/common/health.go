package common

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Timestamp string                 `json:"timestamp"`
	Uptime    string                 `json:"uptime,omitempty"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
}

// CheckStatus represents the status of a single dependency check
type CheckStatus struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Duration string `json:"duration,omitempty"`
}

var startTime = time.Now()

// HealthCheck returns a health check handler
func HealthCheck(serviceName, version string) gin.HandlerFunc {
	return probe(serviceName, version, "healthy")
}

// LivenessProbe reports that the process is up. It never checks dependencies.
func LivenessProbe(serviceName, version string) gin.HandlerFunc {
	return probe(serviceName, version, "alive")
}

func probe(serviceName, version, status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    status,
			Service:   serviceName,
			Version:   version,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(startTime).String(),
		})
	}
}

// ReadinessProbe runs every dependency check concurrently and answers 503
// when any of them fails.
func ReadinessProbe(serviceName, version string, checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		results := RunChecks(checks)

		status, code := "ready", http.StatusOK
		for _, result := range results {
			if result.Status != "healthy" {
				status, code = "not ready", http.StatusServiceUnavailable
				break
			}
		}

		c.JSON(code, HealthResponse{
			Status:    status,
			Service:   serviceName,
			Version:   version,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(startTime).String(),
			Checks:    results,
		})
	}
}

// RunChecks executes the checks in parallel and collects their outcome by name.
func RunChecks(checks map[string]func() error) map[string]CheckStatus {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]CheckStatus, len(checks))
	)

	for name, check := range checks {
		wg.Add(1)
		go func(name string, check func() error) {
			defer wg.Done()
			start := time.Now()
			err := check()

			result := CheckStatus{Status: "healthy", Duration: time.Since(start).String()}
			if err != nil {
				result.Status = "unhealthy"
				result.Message = err.Error()
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, check)
	}

	wg.Wait()
	return results
}
