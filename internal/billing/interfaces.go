package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/booking-platform/pkg/models"
)

// RepositoryInterface defines the contract for billing persistence
type RepositoryInterface interface {
	Insert(ctx context.Context, rec *models.PaymentRecord) error
	MarkPaid(ctx context.Context, id uuid.UUID, method string, paidAt time.Time) (*models.PaymentRecord, models.PaymentStatus, error)
	GetPendingFees(ctx context.Context, providerID uuid.UUID) ([]*models.PaymentRecord, error)
}

// ServiceInterface is the billing surface the handler depends on
type ServiceInterface interface {
	GetPlatformFeePercentage(ctx context.Context) float64
	UpdatePlatformFeePercentage(ctx context.Context, percentage float64, adminID string) (*FeePercentageResponse, error)
	CalculateBilling(ctx context.Context, amount float64) *BillingCalculation
	CreateFeeForProvider(ctx context.Context, cmd CreateFeeCommand) (*models.PaymentRecord, error)
	MarkFeeAsPaid(ctx context.Context, feeID uuid.UUID, method string) (*models.PaymentRecord, error)
	GetPendingFees(ctx context.Context, providerID uuid.UUID) ([]*models.PaymentRecord, error)
	CreateBilling(ctx context.Context, cmd CreateBillingCommand) (*models.PaymentRecord, error)
}

var (
	_ RepositoryInterface = (*Repository)(nil)
	_ ServiceInterface    = (*Service)(nil)
)
