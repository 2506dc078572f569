package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/logger"
)

// SentryConfig holds configuration for Sentry integration
type SentryConfig struct {
	DSN              string
	Environment      string
	Release          string
	SampleRate       float64
	TracesSampleRate float64
	Debug            bool
	EnableTracing    bool
	ServerName       string
	AttachStacktrace bool
}

// DefaultSentryConfig reads Sentry settings from the environment.
func DefaultSentryConfig(serviceName, environment string) *SentryConfig {
	if env := os.Getenv("SENTRY_ENVIRONMENT"); env != "" {
		environment = env
	}

	return &SentryConfig{
		DSN:              os.Getenv("SENTRY_DSN"),
		Environment:      environment,
		Release:          os.Getenv("SENTRY_RELEASE"),
		SampleRate:       envRate("SENTRY_SAMPLE_RATE", 1.0),
		TracesSampleRate: envRate("SENTRY_TRACES_SAMPLE_RATE", defaultTracesRate(environment)),
		Debug:            os.Getenv("SENTRY_DEBUG") == "true",
		EnableTracing:    os.Getenv("SENTRY_ENABLE_TRACING") != "false",
		ServerName:       serviceName,
		AttachStacktrace: true,
	}
}

// InitSentry initializes the Sentry SDK. An empty DSN is reported as an error
// so callers can log that error tracking is off.
func InitSentry(config *SentryConfig) error {
	if config.DSN == "" {
		return fmt.Errorf("sentry DSN is not configured")
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.DSN,
		Environment:      config.Environment,
		Release:          config.Release,
		SampleRate:       config.SampleRate,
		TracesSampleRate: config.TracesSampleRate,
		Debug:            config.Debug,
		EnableTracing:    config.EnableTracing,
		ServerName:       config.ServerName,
		AttachStacktrace: config.AttachStacktrace,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if event.Level == sentry.LevelInfo || event.Level == sentry.LevelDebug {
				return nil
			}
			return event
		},
		BeforeBreadcrumb: func(breadcrumb *sentry.Breadcrumb, hint *sentry.BreadcrumbHint) *sentry.Breadcrumb {
			if breadcrumb.Category == "http" && breadcrumb.Data != nil {
				delete(breadcrumb.Data, "Authorization")
				delete(breadcrumb.Data, "Cookie")
			}
			return breadcrumb
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}

	return nil
}

// Flush flushes the Sentry buffer
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// CaptureErrorWithContext reports err with the request correlation ID and extras attached.
func CaptureErrorWithContext(ctx context.Context, err error, extras map[string]interface{}) *sentry.EventID {
	if err == nil {
		return nil
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}

	var eventID *sentry.EventID
	hub.WithScope(func(scope *sentry.Scope) {
		for key, value := range extras {
			scope.SetExtra(key, value)
		}
		if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
			scope.SetTag("correlation_id", correlationID)
		}
		eventID = hub.CaptureException(err)
	})
	return eventID
}

// AddBreadcrumbForRequest adds a breadcrumb for HTTP request
func AddBreadcrumbForRequest(method, url string, statusCode int, duration time.Duration) {
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:      "http",
		Category:  "http.request",
		Level:     sentry.LevelInfo,
		Message:   fmt.Sprintf("%s %s", method, url),
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"method":      method,
			"url":         url,
			"status_code": statusCode,
			"duration_ms": duration.Milliseconds(),
		},
	})
}

// IsBusinessError reports whether err is an expected outcome (validation,
// not found, conflict) rather than a fault.
func IsBusinessError(err error) bool {
	var appErr *common.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code < 500
	}
	return false
}

// ShouldReportError determines if an error should be reported to Sentry
func ShouldReportError(err error, statusCode int) bool {
	if err == nil || IsBusinessError(err) {
		return false
	}

	// 4xx are client mistakes, except 429
	if statusCode >= 400 && statusCode < 500 && statusCode != 429 {
		return false
	}

	return true
}

func defaultTracesRate(environment string) float64 {
	if environment == "production" {
		return 0.1
	}
	return 1.0
}

func envRate(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return fallback
}
