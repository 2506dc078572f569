package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS handles Cross-Origin Resource Sharing for the given origins.
// A "*" entry allows every origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding",
			"Authorization", "Cache-Control", "X-Requested-With",
			IdempotencyKeyHeader, CorrelationIDHeader, AdminIDHeader,
		},
		ExposeHeaders:    []string{CorrelationIDHeader, "X-Trace-ID", "Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			corsConfig.AllowCredentials = false
			return cors.New(corsConfig)
		}
	}

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowOrigins = allowedOrigins

	return cors.New(corsConfig)
}
