package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/errors"
	"github.com/richxcame/booking-platform/pkg/logger"
	"go.uber.org/zap"
)

// SentryMiddleware attaches a Sentry hub to every request
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// ErrorHandler reports unexpected handler errors and 5xx responses to Sentry.
// Register it after the other middleware.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		errors.AddBreadcrumbForRequest(c.Request.Method, c.Request.URL.Path, statusCode, duration)

		for _, err := range c.Errors {
			if errors.ShouldReportError(err.Err, statusCode) {
				captureErrorWithContext(c, err.Err, statusCode, duration)
			}
		}

		if statusCode >= 500 && len(c.Errors) == 0 {
			captureHTTPError(c, statusCode)
		}
	}
}

// RecoveryWithSentry recovers from panics, reports them and answers 500
func RecoveryWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				hub := hubFor(c)
				hub.Scope().SetRequest(c.Request)
				hub.Scope().SetContext("panic", map[string]interface{}{
					"value":      fmt.Sprintf("%v", err),
					"stacktrace": string(debug.Stack()),
				})
				hub.RecoverWithContext(c.Request.Context(), err)
				hub.Flush(2 * time.Second)

				logger.ErrorContext(c.Request.Context(), "panic recovered",
					zap.Any("panic", err),
					zap.String("path", c.Request.URL.Path),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    http.StatusInternalServerError,
						"message": "An unexpected error occurred",
					},
				})
			}
		}()

		c.Next()
	}
}

func hubFor(c *gin.Context) *sentry.Hub {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		return hub
	}
	return sentry.CurrentHub().Clone()
}

func captureErrorWithContext(c *gin.Context, err error, statusCode int, duration time.Duration) {
	hub := hubFor(c)

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request)
		scope.SetLevel(getSentryLevel(statusCode))
		scope.SetTag("http.method", c.Request.Method)
		scope.SetTag("http.status_code", fmt.Sprintf("%d", statusCode))
		scope.SetTag("endpoint", c.FullPath())

		if correlationID := GetCorrelationID(c); correlationID != "" {
			scope.SetTag("correlation_id", correlationID)
		}
		if adminID := GetAdminID(c); adminID != "" {
			scope.SetUser(sentry.User{ID: adminID, IPAddress: c.ClientIP()})
		}

		scope.SetContext("http", map[string]interface{}{
			"method":      c.Request.Method,
			"url":         c.Request.URL.String(),
			"status_code": statusCode,
			"duration_ms": duration.Milliseconds(),
			"remote_addr": c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
			"handler":     c.HandlerName(),
		})

		hub.CaptureException(err)
	})
}

func captureHTTPError(c *gin.Context, statusCode int) {
	hub := hubFor(c)

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request)
		scope.SetLevel(getSentryLevel(statusCode))
		scope.SetTag("http.method", c.Request.Method)
		scope.SetTag("http.status_code", fmt.Sprintf("%d", statusCode))
		scope.SetTag("endpoint", c.FullPath())

		hub.CaptureMessage(fmt.Sprintf("HTTP %d: %s %s", statusCode, c.Request.Method, c.Request.URL.Path))
	})
}

// getSentryLevel maps HTTP status codes to Sentry severity levels
func getSentryLevel(statusCode int) sentry.Level {
	switch {
	case statusCode >= 500:
		return sentry.LevelError
	case statusCode == 429:
		return sentry.LevelWarning
	default:
		return sentry.LevelInfo
	}
}
