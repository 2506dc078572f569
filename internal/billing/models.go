package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/booking-platform/pkg/models"
)

const (
	// defaultPaymentMethod is recorded on settled payments that name no method
	defaultPaymentMethod = "pending"

	feePercentageDescription = "Platform fee charged on every transaction (%)"
)

// BillingCalculation is the split of an amount between platform and provider.
// Total equals Subtotal; the fee comes out of the provider's share.
type BillingCalculation struct {
	Subtotal       float64 `json:"subtotal"`
	PlatformFee    float64 `json:"platform_fee"`
	ProviderAmount float64 `json:"provider_amount"`
	Total          float64 `json:"total"`
	FeePercentage  float64 `json:"fee_percentage"`
}

// CreateFeeCommand records the fee a provider owes for a completed booking.
type CreateFeeCommand struct {
	ProviderID  uuid.UUID          `json:"provider_id" binding:"required"`
	Type        models.ServiceType `json:"type" binding:"required,service_type"`
	TotalAmount float64            `json:"total_amount" binding:"gt=0"`
	ClientID    uuid.UUID          `json:"client_id" binding:"required"`
	ReferenceID *string            `json:"reference_id" binding:"omitempty,max=100"`
}

// CreateBillingCommand records a payment that has already been settled.
type CreateBillingCommand struct {
	UserID        uuid.UUID          `json:"user_id" binding:"required"`
	Type          models.ServiceType `json:"type" binding:"required,service_type"`
	Amount        float64            `json:"amount" binding:"gt=0"`
	PaymentMethod string             `json:"payment_method" binding:"max=50"`
	ReferenceID   *string            `json:"reference_id" binding:"omitempty,max=100"`
}

// CalculateRequest is the body of POST /billing/calculate
type CalculateRequest struct {
	Amount float64 `json:"amount" binding:"gt=0"`
}

// FeePercentageRequest is the body of PUT /billing/fee-percentage
type FeePercentageRequest struct {
	Percentage *float64 `json:"percentage" binding:"required,min=0,max=50"`
}

// FeePercentageResponse reports the platform fee rate
type FeePercentageResponse struct {
	Percentage float64    `json:"percentage"`
	UpdatedBy  string     `json:"updated_by,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// MarkFeePaidRequest is the body of POST /billing/fees/:id/pay
type MarkFeePaidRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,max=50"`
}
