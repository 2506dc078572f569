package common

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/booking-platform/pkg/logger"
	"go.uber.org/zap"
)

// HandleServiceError handles service errors with consistent patterns.
// Returns true if an error was handled (and response was sent), false otherwise.
//
// Usage:
//
//	fee, err := h.service.MarkFeeAsPaid(ctx, id, method)
//	if HandleServiceError(c, err, "failed to mark fee as paid") {
//	    return
//	}
func HandleServiceError(c *gin.Context, err error, fallbackMessage string) bool {
	if err == nil {
		return false
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		AppErrorResponse(c, appErr)
		return true
	}

	logger.ErrorContext(c.Request.Context(), fallbackMessage,
		zap.Error(err),
	)
	_ = c.Error(err)

	ErrorResponse(c, http.StatusInternalServerError, fallbackMessage)
	return true
}

// ParseUUIDParam parses a UUID from a URL parameter.
// Returns the UUID and true on success, or sends an error response and returns false on failure.
func ParseUUIDParam(c *gin.Context, paramName, displayName string) (uuid.UUID, bool) {
	paramValue := c.Param(paramName)
	if paramValue == "" {
		ErrorResponse(c, http.StatusBadRequest, displayName+" is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(paramValue)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid "+displayName)
		return uuid.Nil, false
	}

	return id, true
}

// ParseFloatQuery parses a float query parameter.
// Missing optional parameters yield fallback; malformed values send a 400.
func ParseFloatQuery(c *gin.Context, paramName string, fallback float64, required bool) (float64, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		if required {
			ErrorResponse(c, http.StatusBadRequest, paramName+" is required")
			return 0, false
		}
		return fallback, true
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid "+paramName)
		return 0, false
	}
	return value, true
}

// BindJSON binds JSON request body and sends error response on failure.
// Returns true on success, false on failure (response already sent).
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// BindQuery binds query parameters and sends error response on failure.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// ValidateNotEmpty checks if a string value is not empty and sends error response if it is.
func ValidateNotEmpty(c *gin.Context, value, fieldName string) bool {
	if value == "" {
		ErrorResponse(c, http.StatusBadRequest, fieldName+" is required")
		return false
	}
	return true
}
