package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
)

const (
	// AdminIDHeader carries the opaque identifier of the operator changing platform settings
	AdminIDHeader = "X-Admin-ID"
	adminIDKey    = "admin_id"
)

// RequireAdminID rejects requests that do not name the operator performing them.
// The value is recorded as updatedBy on configuration writes.
func RequireAdminID() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := strings.TrimSpace(c.GetHeader(AdminIDHeader))
		if adminID == "" {
			common.ErrorResponse(c, http.StatusBadRequest, AdminIDHeader+" header is required")
			c.Abort()
			return
		}

		c.Set(adminIDKey, adminID)
		c.Next()
	}
}

// GetAdminID returns the operator identifier stored by RequireAdminID.
func GetAdminID(c *gin.Context) string {
	return c.GetString(adminIDKey)
}
