package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NATS       NATSConfig
	Tracing    TracingConfig
	Resilience ResilienceConfig
	Timeout    TimeoutConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  string // Comma-separated list of allowed origins
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NATSConfig holds event bus configuration
type NATSConfig struct {
	URL        string
	StreamName string
	Enabled    bool
}

// TracingConfig holds OpenTelemetry settings
type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRate   float64
}

// TimeoutConfig holds request and query deadlines
type TimeoutConfig struct {
	RequestTimeoutSeconds       int
	DatabaseQueryTimeoutSeconds int
	// RouteOverrides maps "METHOD:/route/pattern" to a timeout in seconds
	RouteOverrides map[string]int
}

// ResilienceConfig groups runtime resilience controls
type ResilienceConfig struct {
	CircuitBreaker CircuitBreakerConfig
}

// CircuitBreakerConfig captures default and per-service breaker tuning
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	SuccessThreshold int
	TimeoutSeconds   int
	IntervalSeconds  int
	ServiceOverrides map[string]CircuitBreakerSettings
}

// CircuitBreakerSettings overrides defaults for a specific upstream service
type CircuitBreakerSettings struct {
	FailureThreshold int `json:"failure_threshold"`
	SuccessThreshold int `json:"success_threshold"`
	TimeoutSeconds   int `json:"timeout_seconds"`
	IntervalSeconds  int `json:"interval_seconds"`
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
			CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "booking"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		NATS: NATSConfig{
			URL:        getEnv("NATS_URL", "nats://127.0.0.1:4222"),
			StreamName: getEnv("NATS_STREAM", "BOOKING"),
			Enabled:    getEnvAsBool("NATS_ENABLED", true),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRate:   getEnvAsFloat("OTEL_TRACE_SAMPLE_RATE", 0),
		},
		Timeout: TimeoutConfig{
			RequestTimeoutSeconds:       getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 30),
			DatabaseQueryTimeoutSeconds: getEnvAsInt("DB_QUERY_TIMEOUT_SECONDS", 10),
		},
		Resilience: ResilienceConfig{
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:          getEnvAsBool("CB_ENABLED", true),
				FailureThreshold: getEnvAsInt("CB_FAILURE_THRESHOLD", 5),
				SuccessThreshold: getEnvAsInt("CB_SUCCESS_THRESHOLD", 1),
				TimeoutSeconds:   getEnvAsInt("CB_TIMEOUT_SECONDS", 30),
				IntervalSeconds:  getEnvAsInt("CB_INTERVAL_SECONDS", 60),
			},
		},
	}

	if err := getEnvAsJSON("CB_SERVICE_OVERRIDES", &cfg.Resilience.CircuitBreaker.ServiceOverrides); err != nil {
		return nil, err
	}
	if err := getEnvAsJSON("ROUTE_TIMEOUT_OVERRIDES", &cfg.Timeout.RouteOverrides); err != nil {
		return nil, err
	}

	cb := &cfg.Resilience.CircuitBreaker
	cb.FailureThreshold = positiveOr(cb.FailureThreshold, 5)
	cb.SuccessThreshold = positiveOr(cb.SuccessThreshold, 1)
	cb.TimeoutSeconds = positiveOr(cb.TimeoutSeconds, 30)
	cb.IntervalSeconds = positiveOr(cb.IntervalSeconds, 60)
	cfg.Timeout.RequestTimeoutSeconds = positiveOr(cfg.Timeout.RequestTimeoutSeconds, 30)

	return cfg, nil
}

// SettingsFor returns the breaker settings for one dependency: its
// override where set, the defaults otherwise.
func (c CircuitBreakerConfig) SettingsFor(service string) CircuitBreakerSettings {
	o := c.ServiceOverrides[service]
	return CircuitBreakerSettings{
		FailureThreshold: positiveOr(o.FailureThreshold, positiveOr(c.FailureThreshold, 5)),
		SuccessThreshold: positiveOr(o.SuccessThreshold, positiveOr(c.SuccessThreshold, 1)),
		TimeoutSeconds:   positiveOr(o.TimeoutSeconds, positiveOr(c.TimeoutSeconds, 30)),
		IntervalSeconds:  positiveOr(o.IntervalSeconds, positiveOr(c.IntervalSeconds, 60)),
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL returns the database connection string in URL form, as golang-migrate expects.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// RequestTimeout returns the per-request deadline
func (c TimeoutConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// TimeoutForRoute returns the override for method and route when one is set,
// the default request timeout otherwise.
func (c TimeoutConfig) TimeoutForRoute(method, route string) time.Duration {
	if seconds, ok := c.RouteOverrides[method+":"+route]; ok && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return c.RequestTimeout()
}

// DatabaseQueryTimeout returns the statement timeout applied to pooled connections
func (c TimeoutConfig) DatabaseQueryTimeout() time.Duration {
	if c.DatabaseQueryTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.DatabaseQueryTimeoutSeconds) * time.Second
}

// AllowedOrigins splits CORSOrigins into a clean list
func (c ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAs[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	if value, err := parse(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	return getEnvAs(key, defaultValue, strconv.Atoi)
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	return getEnvAs(key, defaultValue, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func getEnvAsBool(key string, defaultValue bool) bool {
	return getEnvAs(key, defaultValue, strconv.ParseBool)
}

// getEnvAsJSON decodes a JSON-valued variable into dst, leaving dst alone
// when the variable is unset.
func getEnvAsJSON(key string, dst interface{}) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("invalid %s value: %w", key, err)
	}
	return nil
}
