package places

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/geo"
	"github.com/richxcame/booking-platform/pkg/validation"
)

// Handler exposes gazetteer lookups over HTTP
type Handler struct {
	gazetteer *Gazetteer
}

// NewHandler creates a new places handler
func NewHandler(gazetteer *Gazetteer) *Handler {
	return &Handler{gazetteer: gazetteer}
}

// RegisterRoutes registers place lookup routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	places := rg.Group("/places")
	{
		places.GET("", h.List)
		places.GET("/resolve", h.Resolve)
		places.GET("/nearest", h.Nearest)
		places.GET("/:name/proximity", h.Proximity)
	}
}

// List returns every known place
func (h *Handler) List(c *gin.Context) {
	locations := h.gazetteer.List()
	common.SuccessResponseWithMeta(c, locations, &common.Meta{Total: int64(len(locations))})
}

// Resolve maps a place name to its coordinates
func (h *Handler) Resolve(c *gin.Context) {
	name := c.Query("name")
	if !common.ValidateNotEmpty(c, name, "name") {
		return
	}

	loc, ok := h.gazetteer.Resolve(name)
	if !ok {
		common.AppErrorResponse(c, common.NewNotFoundError("place not found: "+name, nil).WithCode("PLACE_NOT_FOUND"))
		return
	}

	common.SuccessResponse(c, loc)
}

// Nearest returns the closest known place to a coordinate
func (h *Handler) Nearest(c *gin.Context) {
	lat, ok := common.ParseFloatQuery(c, "lat", 0, true)
	if !ok {
		return
	}
	lng, ok := common.ParseFloatQuery(c, "lng", 0, true)
	if !ok {
		return
	}
	radius, ok := common.ParseFloatQuery(c, "radius_km", geo.DefaultProximityRadiusKm, false)
	if !ok {
		return
	}

	if err := validation.ValidateCoordinates(lat, lng); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	loc, distance, found := h.gazetteer.Nearest(lat, lng, radius)
	if !found {
		common.AppErrorResponse(c, common.NewNotFoundError("no known place within radius", nil).WithCode("PLACE_NOT_FOUND"))
		return
	}

	common.SuccessResponse(c, gin.H{
		"place":       loc,
		"distance_km": distance,
	})
}

// Proximity returns the curated neighbours of a place
func (h *Handler) Proximity(c *gin.Context) {
	name := c.Param("name")
	terms := h.gazetteer.ProximityTerms(name)
	if terms == nil {
		terms = []string{}
	}

	common.SuccessResponse(c, gin.H{
		"name":  Normalize(name),
		"terms": terms,
	})
}
