package partnerships

import (
	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
)

// Handler handles HTTP requests for partnerships
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new partnerships handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers partnership routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	partnerships := rg.Group("/partnerships")
	{
		partnerships.POST("/discount", h.QuoteDiscount)
		partnerships.POST("", h.AcceptProposal)
		partnerships.GET("/providers/:id", h.ListByProvider)
		partnerships.GET("/:id", h.Get)
		partnerships.PATCH("/:id/status", h.UpdateStatus)
		partnerships.PATCH("/:id/terms", h.UpdateTerms)
		partnerships.POST("/:id/transactions", h.RecordTransaction)
	}
}

// QuoteDiscount previews the discount for a set of proposal benefits
func (h *Handler) QuoteDiscount(c *gin.Context) {
	var terms ProposalTerms
	if !common.BindJSON(c, &terms) {
		return
	}

	common.SuccessResponse(c, h.service.QuoteDiscount(terms))
}

// AcceptProposal creates a partnership from an accepted proposal
func (h *Handler) AcceptProposal(c *gin.Context) {
	var in AcceptProposalInput
	if !common.BindJSON(c, &in) {
		return
	}

	p, err := h.service.AcceptProposal(c.Request.Context(), in)
	if common.HandleServiceError(c, err, "failed to accept proposal") {
		return
	}

	common.CreatedResponse(c, p)
}

// Get returns one partnership
func (h *Handler) Get(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "partnership ID")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get partnership") {
		return
	}

	common.SuccessResponse(c, p)
}

// ListByProvider returns a provider's partnerships
func (h *Handler) ListByProvider(c *gin.Context) {
	providerID, ok := common.ParseUUIDParam(c, "id", "provider ID")
	if !ok {
		return
	}

	list, err := h.service.ListByProvider(c.Request.Context(), providerID)
	if common.HandleServiceError(c, err, "failed to list partnerships") {
		return
	}

	common.SuccessResponseWithMeta(c, list, &common.Meta{Total: int64(len(list))})
}

// UpdateStatus changes a partnership's status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "partnership ID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !common.BindJSON(c, &req) {
		return
	}

	p, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if common.HandleServiceError(c, err, "failed to update partnership status") {
		return
	}

	common.SuccessResponse(c, p)
}

// UpdateTerms changes a partnership's terms
func (h *Handler) UpdateTerms(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "partnership ID")
	if !ok {
		return
	}

	var req UpdateTermsRequest
	if !common.BindJSON(c, &req) {
		return
	}

	p, err := h.service.UpdateTerms(c.Request.Context(), id, req)
	if common.HandleServiceError(c, err, "failed to update partnership terms") {
		return
	}

	common.SuccessResponse(c, p)
}

// RecordTransaction adds a transaction to a partnership's metrics
func (h *Handler) RecordTransaction(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "partnership ID")
	if !ok {
		return
	}

	var req RecordTransactionRequest
	if !common.BindJSON(c, &req) {
		return
	}

	p, err := h.service.RecordTransaction(c.Request.Context(), id, req.Amount)
	if common.HandleServiceError(c, err, "failed to record transaction") {
		return
	}

	common.SuccessResponse(c, p)
}
