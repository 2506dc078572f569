package analytics

import (
	"context"
	"time"

	"github.com/richxcame/booking-platform/pkg/cache"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/logger"
	"github.com/richxcame/booking-platform/pkg/tracing"
	"go.uber.org/zap"
)

const tracerName = "booking-platform/analytics"

// ReportRepository defines the persistence operations required by the service.
type ReportRepository interface {
	CompletedByService(ctx context.Context, start, end time.Time) ([]ServiceTotals, error)
	PendingFees(ctx context.Context, start, end time.Time) (float64, error)
}

// ReportCache stores built reports between requests
type ReportCache interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, result interface{}, load func(ctx context.Context) (interface{}, error)) error
}

var (
	_ ReportRepository = (*Repository)(nil)
	_ ReportCache      = (*cache.Manager)(nil)
)

// Service handles financial reporting
type Service struct {
	repo  ReportRepository
	cache ReportCache
	now   func() time.Time
}

// NewService creates a new analytics service
func NewService(repo ReportRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetCache enables caching of reports for windows that have already closed
func (s *Service) SetCache(c ReportCache) {
	s.cache = c
}

// BuildFinancialReport reports completed revenue and fees paid within
// [start, end] together with the pending fees created in the same window.
// Reports for windows ending in the past may be served from the cache.
func (s *Service) BuildFinancialReport(ctx context.Context, start, end time.Time) (*FinancialReport, error) {
	if end.Before(start) {
		return nil, common.NewValidationError("end date must be after start date")
	}

	if s.cache == nil || !end.Before(s.now()) {
		return s.buildReport(ctx, start, end)
	}

	var report FinancialReport
	err := s.cache.GetOrLoad(ctx, cache.Keys.FinancialReport(start, end), cache.TTL.Report(), &report, func(ctx context.Context) (interface{}, error) {
		return s.buildReport(ctx, start, end)
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) buildReport(ctx context.Context, start, end time.Time) (*FinancialReport, error) {
	var report *FinancialReport
	err := tracing.TraceBusinessLogic(ctx, tracerName, "analytics.BuildFinancialReport", tracing.ReportAttributes(start, end), func(ctx context.Context) error {
		completed, err := s.repo.CompletedByService(ctx, start, end)
		if err != nil {
			return err
		}
		pending, err := s.repo.PendingFees(ctx, start, end)
		if err != nil {
			return err
		}
		report = BuildReport(start, end, completed, pending)
		return nil
	})
	if err != nil {
		return nil, common.NewInternalError("failed to build financial report", err)
	}

	reportsBuiltTotal.Inc()
	logger.InfoContext(ctx, "financial report built",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int64("transactions", report.Summary.TotalTransactions),
	)
	return report, nil
}
