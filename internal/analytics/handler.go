package analytics

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/validation"
)

const dateLayout = "2006-01-02"

// ServiceInterface is the reporting surface the handler depends on
type ServiceInterface interface {
	BuildFinancialReport(ctx context.Context, start, end time.Time) (*FinancialReport, error)
}

var _ ServiceInterface = (*Service)(nil)

// Handler handles HTTP requests for analytics
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new analytics handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers analytics routes on an existing router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/financial-report", h.GetFinancialReport)
	}
}

// GetFinancialReport handles financial report requests
func (h *Handler) GetFinancialReport(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c, time.Now())
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.BuildFinancialReport(c.Request.Context(), startDate, endDate)
	if common.HandleServiceError(c, err, "failed to get financial report") {
		return
	}

	common.SuccessResponse(c, report)
}

// parseDateRange parses start_date and end_date query parameters. Without
// them the window is the 30 days before now. An explicit end date covers
// the whole day.
func parseDateRange(c *gin.Context, now time.Time) (time.Time, time.Time, error) {
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	var startDate, endDate time.Time
	var err error

	if startDateStr == "" {
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
	} else {
		startDate, err = time.Parse(dateLayout, startDateStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endDateStr == "" {
		endDate = now
	} else {
		endDate, err = time.Parse(dateLayout, endDateStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		endDate = endDate.Add(24 * time.Hour).Add(-time.Nanosecond)
	}

	if err := validation.ValidateDateRange(startDate, endDate); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return startDate, endDate, nil
}
