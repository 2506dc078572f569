package settings

import (
	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/middleware"
)

// Handler handles HTTP requests for platform configuration
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new settings handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers configuration routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	{
		settings.GET("", h.List)
		settings.GET("/:key", h.Get)
		settings.PUT("/:key", middleware.RequireAdminID(), h.Set)
	}
}

// List returns every configuration entry
func (h *Handler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if common.HandleServiceError(c, err, "failed to list configs") {
		return
	}

	common.SuccessResponseWithMeta(c, entries, &common.Meta{Total: int64(len(entries))})
}

// Get returns one configuration entry
func (h *Handler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if common.HandleServiceError(c, err, "failed to get config") {
		return
	}

	common.SuccessResponse(c, entry)
}

// Set creates or updates a configuration entry
func (h *Handler) Set(c *gin.Context) {
	var req SetConfigRequest
	if !common.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.Set(c.Request.Context(), c.Param("key"), req.Value, req.Description, middleware.GetAdminID(c))
	if common.HandleServiceError(c, err, "failed to save config") {
		return
	}

	common.SuccessResponse(c, entry)
}
