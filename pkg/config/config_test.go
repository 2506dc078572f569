package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("NATS_STREAM", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")

	cfg, err := Load("billing-service")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "billing-service", cfg.Server.ServiceName)
	assert.Equal(t, "booking", cfg.Database.DBName)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "BOOKING", cfg.NATS.StreamName)
	assert.Equal(t, 30*time.Second, cfg.Timeout.RequestTimeout())
	assert.Equal(t, 5, cfg.Resilience.CircuitBreaker.FailureThreshold)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("DB_QUERY_TIMEOUT_SECONDS", "3")
	t.Setenv("OTEL_TRACE_SAMPLE_RATE", "0.25")

	cfg, err := Load("analytics-service")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 5*time.Second, cfg.Timeout.RequestTimeout())
	assert.Equal(t, 3*time.Second, cfg.Timeout.DatabaseQueryTimeout())
	assert.Equal(t, 0.25, cfg.Tracing.SampleRate)
}

func TestLoadRejectsInvalidBreakerOverrides(t *testing.T) {
	t.Setenv("CB_SERVICE_OVERRIDES", "{not json")

	_, err := Load("billing-service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CB_SERVICE_OVERRIDES")
}

func TestSettingsForAppliesOverrides(t *testing.T) {
	cfg := CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 1,
		TimeoutSeconds:   30,
		IntervalSeconds:  60,
		ServiceOverrides: map[string]CircuitBreakerSettings{
			"settings-store": {FailureThreshold: 2, TimeoutSeconds: 10},
		},
	}

	got := cfg.SettingsFor("settings-store")
	assert.Equal(t, 2, got.FailureThreshold)
	assert.Equal(t, 10, got.TimeoutSeconds)
	assert.Equal(t, 1, got.SuccessThreshold)
	assert.Equal(t, 60, got.IntervalSeconds)

	assert.Equal(t, 5, cfg.SettingsFor("unknown").FailureThreshold)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := ServerConfig{CORSOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestDatabaseURL(t *testing.T) {
	cfg := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: "5432", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.URL())
}

func TestTimeoutForRoute(t *testing.T) {
	cfg := TimeoutConfig{
		RequestTimeoutSeconds: 30,
		RouteOverrides: map[string]int{
			"GET:/api/v1/analytics/financial-report": 60,
			"POST:/api/v1/billing/fees":              0,
		},
	}

	assert.Equal(t, 60*time.Second, cfg.TimeoutForRoute("GET", "/api/v1/analytics/financial-report"))
	assert.Equal(t, 30*time.Second, cfg.TimeoutForRoute("POST", "/api/v1/analytics/financial-report"))
	assert.Equal(t, 30*time.Second, cfg.TimeoutForRoute("POST", "/api/v1/billing/fees"))
}

func TestLoadRouteTimeoutOverrides(t *testing.T) {
	t.Setenv("ROUTE_TIMEOUT_OVERRIDES", `{"GET:/api/v1/places":5}`)

	cfg, err := Load("billing-service")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout.TimeoutForRoute("GET", "/api/v1/places"))
}
