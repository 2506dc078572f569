package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/config"
	"github.com/richxcame/booking-platform/pkg/logger"
	"go.uber.org/zap"
)

// RequestTimeout aborts requests that run past their route deadline with a
// 504 Gateway Timeout. Routes without an override use the default timeout.
func RequestTimeout(cfg *config.TimeoutConfig) gin.HandlerFunc {
	var handlers sync.Map // time.Duration -> gin.HandlerFunc

	handlerFor := func(d time.Duration) gin.HandlerFunc {
		if h, ok := handlers.Load(d); ok {
			return h.(gin.HandlerFunc)
		}
		h, _ := handlers.LoadOrStore(d, timeout.New(
			timeout.WithTimeout(d),
			timeout.WithResponse(timeoutResponse(d)),
		))
		return h.(gin.HandlerFunc)
	}

	return func(c *gin.Context) {
		handlerFor(cfg.TimeoutForRoute(c.Request.Method, c.FullPath()))(c)
	}
}

func timeoutResponse(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.WithContext(c.Request.Context()).Warn("Request timeout",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Duration("timeout", d),
		)

		c.Header("X-Timeout", "true")
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"success": false,
			"error": gin.H{
				"code":    http.StatusGatewayTimeout,
				"message": "Request timeout",
			},
		})
	}
}
