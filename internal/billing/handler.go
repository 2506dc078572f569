package billing

import (
	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/middleware"
)

// Handler handles HTTP requests for fees and billing
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new billing handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers billing routes. Any idempotent handlers given are
// applied to the routes that write billing records.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, idempotent ...gin.HandlerFunc) {
	guarded := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, idempotent...), fn)
	}

	billing := rg.Group("/billing")
	{
		billing.GET("/fee-percentage", h.GetFeePercentage)
		billing.PUT("/fee-percentage", middleware.RequireAdminID(), h.UpdateFeePercentage)
		billing.POST("/calculate", h.Calculate)

		billing.POST("/fees", guarded(h.CreateFee)...)
		billing.POST("/fees/:id/pay", guarded(h.MarkFeePaid)...)
		billing.POST("/payments", guarded(h.CreatePayment)...)

		billing.GET("/providers/:id/pending-fees", h.GetPendingFees)
	}
}

// GetFeePercentage returns the current platform fee rate
func (h *Handler) GetFeePercentage(c *gin.Context) {
	common.SuccessResponse(c, &FeePercentageResponse{
		Percentage: h.service.GetPlatformFeePercentage(c.Request.Context()),
	})
}

// UpdateFeePercentage changes the platform fee rate
func (h *Handler) UpdateFeePercentage(c *gin.Context) {
	var req FeePercentageRequest
	if !common.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdatePlatformFeePercentage(c.Request.Context(), *req.Percentage, middleware.GetAdminID(c))
	if common.HandleServiceError(c, err, "failed to update platform fee") {
		return
	}

	common.SuccessResponse(c, resp)
}

// Calculate splits an amount between platform and provider
func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if !common.BindJSON(c, &req) {
		return
	}

	common.SuccessResponse(c, h.service.CalculateBilling(c.Request.Context(), req.Amount))
}

// CreateFee records the fee a provider owes for a booking
func (h *Handler) CreateFee(c *gin.Context) {
	var cmd CreateFeeCommand
	if !common.BindJSON(c, &cmd) {
		return
	}

	fee, err := h.service.CreateFeeForProvider(c.Request.Context(), cmd)
	if common.HandleServiceError(c, err, "failed to create fee") {
		return
	}

	common.CreatedResponse(c, fee)
}

// MarkFeePaid completes a pending fee
func (h *Handler) MarkFeePaid(c *gin.Context) {
	feeID, ok := common.ParseUUIDParam(c, "id", "fee ID")
	if !ok {
		return
	}

	var req MarkFeePaidRequest
	if !common.BindJSON(c, &req) {
		return
	}

	fee, err := h.service.MarkFeeAsPaid(c.Request.Context(), feeID, req.PaymentMethod)
	if common.HandleServiceError(c, err, "failed to mark fee as paid") {
		return
	}

	common.SuccessResponse(c, fee)
}

// CreatePayment records a settled payment
func (h *Handler) CreatePayment(c *gin.Context) {
	var cmd CreateBillingCommand
	if !common.BindJSON(c, &cmd) {
		return
	}

	payment, err := h.service.CreateBilling(c.Request.Context(), cmd)
	if common.HandleServiceError(c, err, "failed to record payment") {
		return
	}

	common.CreatedResponse(c, payment)
}

// GetPendingFees lists a provider's unpaid fees
func (h *Handler) GetPendingFees(c *gin.Context) {
	providerID, ok := common.ParseUUIDParam(c, "id", "provider ID")
	if !ok {
		return
	}

	fees, err := h.service.GetPendingFees(c.Request.Context(), providerID)
	if common.HandleServiceError(c, err, "failed to get pending fees") {
		return
	}

	common.SuccessResponseWithMeta(c, fees, &common.Meta{Total: int64(len(fees))})
}
