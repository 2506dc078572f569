package pricing

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/middleware"
)

// ServiceInterface is the pricing surface the handler depends on
type ServiceInterface interface {
	Distance(req DistanceRequest) *DistanceResponse
	SuggestRidePrice(ctx context.Context, distanceKm float64, pricePerKm *float64) *RidePriceSuggestion
	SuggestHotelPrice(ctx context.Context, input HotelPriceInput) *HotelPriceBreakdown
	QuoteRide(ctx context.Context, req RideQuoteRequest) (*RideQuote, error)
	AutomaticPricingEnabled(ctx context.Context) *AutomaticPricingStatus
	SetAutomaticPricing(ctx context.Context, req AutomaticPricingRequest, adminID string) (*AutomaticPricingStatus, error)
}

var _ ServiceInterface = (*Service)(nil)

// Handler handles HTTP requests for pricing
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new pricing handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers pricing routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pricing := rg.Group("/pricing")
	{
		pricing.POST("/distance", h.Distance)
		pricing.POST("/suggest", h.SuggestRidePrice)
		pricing.POST("/ride-quote", h.QuoteRide)
		pricing.POST("/hotel-quote", h.SuggestHotelPrice)
		pricing.GET("/automatic", h.GetAutomaticPricing)
		pricing.PUT("/automatic", middleware.RequireAdminID(), h.SetAutomaticPricing)
	}
}

// Distance returns the distance between two coordinates
func (h *Handler) Distance(c *gin.Context) {
	var req DistanceRequest
	if !common.BindJSON(c, &req) {
		return
	}

	common.SuccessResponse(c, h.service.Distance(req))
}

// SuggestRidePrice suggests a fare for a known distance
func (h *Handler) SuggestRidePrice(c *gin.Context) {
	var req DistancePriceRequest
	if !common.BindJSON(c, &req) {
		return
	}

	common.SuccessResponse(c, h.service.SuggestRidePrice(c.Request.Context(), req.DistanceKm, req.PricePerKm))
}

// QuoteRide quotes a ride between two places or coordinates
func (h *Handler) QuoteRide(c *gin.Context) {
	var req RideQuoteRequest
	if !common.BindJSON(c, &req) {
		return
	}

	quote, err := h.service.QuoteRide(c.Request.Context(), req)
	if common.HandleServiceError(c, err, "failed to quote ride") {
		return
	}

	common.SuccessResponse(c, quote)
}

// SuggestHotelPrice prices a hotel stay
func (h *Handler) SuggestHotelPrice(c *gin.Context) {
	var req HotelPriceInput
	if !common.BindJSON(c, &req) {
		return
	}

	common.SuccessResponse(c, h.service.SuggestHotelPrice(c.Request.Context(), req))
}

// GetAutomaticPricing reports whether ride prices are suggested automatically
func (h *Handler) GetAutomaticPricing(c *gin.Context) {
	common.SuccessResponse(c, h.service.AutomaticPricingEnabled(c.Request.Context()))
}

// SetAutomaticPricing switches automatic ride pricing
func (h *Handler) SetAutomaticPricing(c *gin.Context) {
	var req AutomaticPricingRequest
	if !common.BindJSON(c, &req) {
		return
	}

	status, err := h.service.SetAutomaticPricing(c.Request.Context(), req, middleware.GetAdminID(c))
	if common.HandleServiceError(c, err, "failed to update automatic pricing") {
		return
	}

	common.SuccessResponse(c, status)
}
