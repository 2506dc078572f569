package billing

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/booking-platform/internal/settings"
	"github.com/richxcame/booking-platform/pkg/async"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/eventbus"
	"github.com/richxcame/booking-platform/pkg/logger"
	"github.com/richxcame/booking-platform/pkg/models"
	"github.com/richxcame/booking-platform/pkg/tracing"
	"go.uber.org/zap"
)

const (
	eventSource    = "billing-service"
	publishTimeout = 5 * time.Second
)

// Service computes platform fees and records fees and payments
type Service struct {
	repo     RepositoryInterface
	settings settings.Store
	eventBus eventbus.Publisher
	now      func() time.Time
}

// NewService creates a new billing service
func NewService(repo RepositoryInterface, store settings.Store) *Service {
	return &Service{
		repo:     repo,
		settings: store,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetEventBus sets the event bus for publishing billing events
func (s *Service) SetEventBus(bus eventbus.Publisher) {
	s.eventBus = bus
}

// GetPlatformFeePercentage returns the configured fee rate, or the default
// when it is unset or unreadable.
func (s *Service) GetPlatformFeePercentage(ctx context.Context) float64 {
	snap := s.settings.Snapshot(ctx, settings.KeyPlatformFeePercentage)
	return snap.Percentage(settings.KeyPlatformFeePercentage, settings.DefaultPlatformFeePercentage)
}

// UpdatePlatformFeePercentage stores a new fee rate on behalf of adminID.
// Range checks happen at the HTTP boundary.
func (s *Service) UpdatePlatformFeePercentage(ctx context.Context, percentage float64, adminID string) (*FeePercentageResponse, error) {
	value := strconv.FormatFloat(percentage, 'f', -1, 64)
	entry, err := s.settings.Set(ctx, settings.KeyPlatformFeePercentage, value, feePercentageDescription, adminID)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "platform fee percentage updated",
		zap.Float64("percentage", percentage),
		zap.String("admin_id", adminID),
	)

	updatedAt := entry.UpdatedAt
	return &FeePercentageResponse{
		Percentage: percentage,
		UpdatedBy:  entry.UpdatedBy,
		UpdatedAt:  &updatedAt,
	}, nil
}

// CalculateBilling splits amount at the current fee rate
func (s *Service) CalculateBilling(ctx context.Context, amount float64) *BillingCalculation {
	return Calculate(amount, s.GetPlatformFeePercentage(ctx))
}

// CreateFeeForProvider records the pending fee a provider owes the platform
// for a booking. When a reference is given, a second fee for the same
// booking is rejected with a conflict.
func (s *Service) CreateFeeForProvider(ctx context.Context, cmd CreateFeeCommand) (*models.PaymentRecord, error) {
	serviceType, err := normalizeServiceType(cmd.Type)
	if err != nil {
		return nil, err
	}

	calc := s.CalculateBilling(ctx, cmd.TotalAmount)
	providerID := cmd.ProviderID
	rec := &models.PaymentRecord{
		ID:            uuid.New(),
		Kind:          models.RecordKindFee,
		UserID:        cmd.ClientID,
		ProviderID:    &providerID,
		ServiceType:   serviceType,
		Subtotal:      calc.Subtotal,
		PlatformFee:   calc.PlatformFee,
		Total:         calc.Total,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodPlatformFee,
	}
	attachReference(rec, cmd.ReferenceID)

	attrs := tracing.BillingAttributes(string(serviceType), calc.Subtotal, calc.FeePercentage)
	err = tracing.TraceBusinessLogic(ctx, tracerName, "billing.CreateFeeForProvider", attrs, func(ctx context.Context) error {
		return s.repo.Insert(ctx, rec)
	})
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			if errors.Is(err, common.ErrConflict) {
				feeConflictsTotal.Inc()
			}
			return nil, err
		}
		return nil, common.NewInternalError("failed to create fee", err)
	}

	feesCreatedTotal.WithLabelValues(string(serviceType)).Inc()
	logger.InfoContext(ctx, "platform fee created",
		zap.String("fee_id", rec.ID.String()),
		zap.String("provider_id", providerID.String()),
		zap.String("service_type", string(serviceType)),
		zap.Float64("platform_fee", rec.PlatformFee),
	)

	data := eventbus.FeeCreatedData{
		FeeID:       rec.ID,
		ProviderID:  providerID,
		ClientID:    cmd.ClientID,
		ServiceType: string(serviceType),
		Subtotal:    rec.Subtotal,
		PlatformFee: rec.PlatformFee,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.BookingRef != nil {
		data.BookingRef = *rec.BookingRef
	}
	s.publishEvent(ctx, eventbus.SubjectFeeCreated, eventbus.TypeFeeCreated, data)

	return rec, nil
}

// MarkFeeAsPaid completes a fee with the given method. Calling it again
// overwrites the method and payment time. The paid event is published only
// when the fee was not already completed.
func (s *Service) MarkFeeAsPaid(ctx context.Context, feeID uuid.UUID, method string) (*models.PaymentRecord, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, common.NewValidationError("payment method is required")
	}

	rec, prev, err := s.repo.MarkPaid(ctx, feeID, method, s.now())
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, common.NewInternalError("failed to mark fee as paid", err)
	}

	logger.InfoContext(ctx, "fee marked as paid",
		zap.String("fee_id", feeID.String()),
		zap.String("payment_method", method),
		zap.String("previous_status", string(prev)),
	)
	if prev == models.PaymentStatusCompleted {
		return rec, nil
	}

	paidAt := s.now()
	if rec.PaidAt != nil {
		paidAt = *rec.PaidAt
	}
	s.publishEvent(ctx, eventbus.SubjectFeePaid, eventbus.TypeFeePaid, eventbus.FeePaidData{
		FeeID:         rec.ID,
		PaymentMethod: rec.PaymentMethod,
		PlatformFee:   rec.PlatformFee,
		PaidAt:        paidAt,
	})

	return rec, nil
}

// GetPendingFees lists the fees a provider still owes, newest first
func (s *Service) GetPendingFees(ctx context.Context, providerID uuid.UUID) ([]*models.PaymentRecord, error) {
	fees, err := s.repo.GetPendingFees(ctx, providerID)
	if err != nil {
		return nil, common.NewInternalError("failed to get pending fees", err)
	}
	if fees == nil {
		fees = []*models.PaymentRecord{}
	}
	return fees, nil
}

// CreateBilling records a payment that has already been settled, with the
// platform fee split out.
func (s *Service) CreateBilling(ctx context.Context, cmd CreateBillingCommand) (*models.PaymentRecord, error) {
	serviceType, err := normalizeServiceType(cmd.Type)
	if err != nil {
		return nil, err
	}

	method := strings.TrimSpace(cmd.PaymentMethod)
	if method == "" {
		method = defaultPaymentMethod
	}

	calc := s.CalculateBilling(ctx, cmd.Amount)
	paidAt := s.now()
	rec := &models.PaymentRecord{
		ID:            uuid.New(),
		Kind:          models.RecordKindPayment,
		UserID:        cmd.UserID,
		ServiceType:   serviceType,
		Subtotal:      calc.Subtotal,
		PlatformFee:   calc.PlatformFee,
		Total:         calc.Total,
		PaymentStatus: models.PaymentStatusCompleted,
		PaymentMethod: method,
		PaidAt:        &paidAt,
	}
	attachReference(rec, cmd.ReferenceID)

	if err := s.repo.Insert(ctx, rec); err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, common.NewInternalError("failed to record payment", err)
	}

	paymentsRecordedTotal.WithLabelValues(string(serviceType)).Inc()
	logger.InfoContext(ctx, "payment recorded",
		zap.String("payment_id", rec.ID.String()),
		zap.String("service_type", string(serviceType)),
		zap.Float64("amount", rec.Total),
	)

	s.publishEvent(ctx, eventbus.SubjectPaymentRecorded, eventbus.TypePaymentRecorded, eventbus.PaymentRecordedData{
		PaymentID:      rec.ID,
		UserID:         rec.UserID,
		ServiceType:    string(serviceType),
		Amount:         rec.Total,
		PlatformFee:    rec.PlatformFee,
		ProviderAmount: calc.ProviderAmount,
		PaymentMethod:  method,
		PaidAt:         paidAt,
	})

	return rec, nil
}

func normalizeServiceType(t models.ServiceType) (models.ServiceType, error) {
	normalized := models.ServiceType(strings.ToLower(strings.TrimSpace(string(t))))
	if !normalized.IsValid() {
		return "", common.NewValidationError("unknown service type: " + string(t))
	}
	return normalized, nil
}

// attachReference points rec at the booking table matching its service type.
func attachReference(rec *models.PaymentRecord, ref *string) {
	if ref == nil || strings.TrimSpace(*ref) == "" {
		return
	}
	r := strings.TrimSpace(*ref)
	kind := rec.ServiceType.BookingKind()
	rec.BookingRef = &r
	rec.BookingKind = &kind
}

// publishEvent publishes an event in the background, keeping the
// request's correlation ID
func (s *Service) publishEvent(ctx context.Context, subject, eventType string, data interface{}) {
	if s.eventBus == nil {
		return
	}
	evt, err := eventbus.NewEvent(eventType, eventSource, data)
	if err != nil {
		logger.WarnContext(ctx, "failed to create billing event", zap.String("type", eventType), zap.Error(err))
		return
	}
	async.GoWithTimeout(ctx, "publish-"+eventType, publishTimeout, func(ctx context.Context) {
		if err := s.eventBus.Publish(ctx, subject, evt); err != nil {
			logger.WarnContext(ctx, "failed to publish billing event", zap.String("type", eventType), zap.Error(err))
		}
	})
}
