package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/booking-platform/pkg/logger"
)

const (
	// CorrelationIDHeader carries the request ID in and out.
	CorrelationIDHeader = "X-Request-ID"
	// CorrelationIDKey is the gin context key holding the request ID.
	CorrelationIDKey = "correlation_id"
)

// CorrelationID keeps a caller-supplied UUID request ID, or mints one, and
// makes it available to handlers, loggers and the response headers.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(CorrelationIDHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(CorrelationIDKey, id)
		c.Request = c.Request.WithContext(logger.ContextWithCorrelationID(c.Request.Context(), id))
		c.Header(CorrelationIDHeader, id)

		c.Next()
	}
}

// GetCorrelationID returns the request ID set by CorrelationID.
func GetCorrelationID(c *gin.Context) string {
	if id := c.GetString(CorrelationIDKey); id != "" {
		return id
	}
	return logger.CorrelationIDFromContext(c.Request.Context())
}
