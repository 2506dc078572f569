package partnerships

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/booking-platform/pkg/async"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/eventbus"
	"github.com/richxcame/booking-platform/pkg/logger"
	"github.com/richxcame/booking-platform/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	eventSource    = "partnerships-service"
	publishTimeout = 5 * time.Second
)

// Service manages partnerships and their discount terms
type Service struct {
	repo     RepositoryInterface
	eventBus eventbus.Publisher
	now      func() time.Time
}

// NewService creates a new partnerships service
func NewService(repo RepositoryInterface) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// SetEventBus sets the event bus for publishing partnership events
func (s *Service) SetEventBus(bus eventbus.Publisher) {
	s.eventBus = bus
}

// QuoteDiscount previews the discount a proposal would grant
func (s *Service) QuoteDiscount(terms ProposalTerms) *DiscountQuote {
	return QuoteDiscount(terms)
}

// AcceptProposal creates an active driver accommodation partnership whose
// discount is composed from the proposal's benefits.
func (s *Service) AcceptProposal(ctx context.Context, in AcceptProposalInput) (*Partnership, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.NewValidationError("title is required")
	}

	driverLevel := strings.TrimSpace(in.MinimumDriverLevel)
	if driverLevel == "" {
		driverLevel = defaultDriverLevel
	}
	vehicleType := strings.TrimSpace(in.RequiredVehicleType)
	if vehicleType == "" {
		vehicleType = defaultVehicleType
	}

	p := &Partnership{
		ID:          uuid.New(),
		Type:        TypeDriverAccommodation,
		ProviderID:  in.ProviderID,
		PartnerID:   in.PartnerID,
		Title:       title,
		Description: in.Description,
		Status:      StatusActive,
		Terms: Terms{
			DiscountRate:   ComposeDiscount(in.Proposal),
			CommissionRate: defaultCommissionRate,
			MinimumRequirements: MinimumRequirements{
				DriverLevel: driverLevel,
				VehicleType: vehicleType,
				Description: "Partnership based on proposal: " + title,
			},
			Benefits:    in.Benefits,
			Description: "Partnership based on proposal: " + title,
		},
	}

	attrs := []attribute.KeyValue{
		attribute.String("partnership.provider_id", in.ProviderID.String()),
		attribute.Float64("partnership.discount_rate", p.Terms.DiscountRate),
	}
	err := tracing.TraceBusinessLogic(ctx, tracerName, "partnerships.AcceptProposal", attrs, func(ctx context.Context) error {
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, common.NewInternalError("failed to create partnership", err)
	}

	partnershipsAcceptedTotal.Inc()
	discountRateGranted.Observe(p.Terms.DiscountRate)
	logger.InfoContext(ctx, "partnership accepted",
		zap.String("partnership_id", p.ID.String()),
		zap.String("provider_id", p.ProviderID.String()),
		zap.Float64("discount_rate", p.Terms.DiscountRate),
	)

	acceptedAt := p.CreatedAt
	if acceptedAt.IsZero() {
		acceptedAt = s.now()
	}
	s.publishEvent(ctx, eventbus.SubjectPartnershipAdded, eventbus.TypePartnershipAdded, eventbus.PartnershipAcceptedData{
		PartnershipID: p.ID,
		ProviderID:    p.ProviderID,
		PartnerID:     p.PartnerID,
		DiscountRate:  p.Terms.DiscountRate,
		AcceptedAt:    acceptedAt,
	})

	return p, nil
}

// Get returns a partnership
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Partnership, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, wrap(err, "failed to get partnership")
	}
	return p, nil
}

// ListByProvider returns every partnership of a provider
func (s *Service) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Partnership, error) {
	list, err := s.repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, common.NewInternalError("failed to list partnerships", err)
	}
	if list == nil {
		list = []*Partnership{}
	}
	return list, nil
}

// UpdateStatus moves a partnership to another status
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Partnership, error) {
	if !status.IsValid() {
		return nil, common.NewValidationError("unknown partnership status: " + string(status))
	}

	p, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, wrap(err, "failed to update partnership status")
	}

	logger.InfoContext(ctx, "partnership status updated",
		zap.String("partnership_id", id.String()),
		zap.String("status", string(status)),
	)
	return p, nil
}

// UpdateTerms changes the discount of a partnership and, when given, its
// commission, requirements and benefits.
func (s *Service) UpdateTerms(ctx context.Context, id uuid.UUID, req UpdateTermsRequest) (*Partnership, error) {
	if req.DiscountRate == nil {
		return nil, common.NewValidationError("discount_rate is required")
	}
	if *req.DiscountRate < 0 || *req.DiscountRate > MaxDiscountRate {
		return nil, common.NewValidationError("discount_rate must be between 0 and 40").WithCode("DISCOUNT_OUT_OF_RANGE")
	}
	if req.CommissionRate != nil && (*req.CommissionRate < 0 || *req.CommissionRate > maxCommissionRate) {
		return nil, common.NewValidationError("commission_rate must be between 0 and 100")
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, wrap(err, "failed to get partnership")
	}

	terms := current.Terms
	terms.DiscountRate = *req.DiscountRate
	if req.CommissionRate != nil {
		terms.CommissionRate = *req.CommissionRate
	}
	if req.MinimumRequirements != nil {
		terms.MinimumRequirements = *req.MinimumRequirements
	}
	if req.Benefits != nil {
		terms.Benefits = req.Benefits
	}

	p, err := s.repo.UpdateTerms(ctx, id, terms)
	if err != nil {
		return nil, wrap(err, "failed to update partnership terms")
	}
	return p, nil
}

// RecordTransaction adds a discounted transaction to a partnership's metrics
func (s *Service) RecordTransaction(ctx context.Context, id uuid.UUID, amount float64) (*Partnership, error) {
	if amount <= 0 {
		return nil, common.NewValidationError("amount must be greater than zero")
	}

	p, err := s.repo.RecordTransaction(ctx, id, amount)
	if err != nil {
		return nil, wrap(err, "failed to record partnership transaction")
	}
	return p, nil
}

// wrap passes AppErrors through and turns anything else into an internal error
func wrap(err error, message string) error {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return common.NewInternalError(message, err)
}

// publishEvent publishes an event in the background, keeping the
// request's correlation ID
func (s *Service) publishEvent(ctx context.Context, subject, eventType string, data interface{}) {
	if s.eventBus == nil {
		return
	}
	evt, err := eventbus.NewEvent(eventType, eventSource, data)
	if err != nil {
		logger.WarnContext(ctx, "failed to create partnership event", zap.String("type", eventType), zap.Error(err))
		return
	}
	async.GoWithTimeout(ctx, "publish-"+eventType, publishTimeout, func(ctx context.Context) {
		if err := s.eventBus.Publish(ctx, subject, evt); err != nil {
			logger.WarnContext(ctx, "failed to publish partnership event", zap.String("type", eventType), zap.Error(err))
		}
	})
}
