package eventbus

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Publisher is the publishing half of Bus.
type Publisher interface {
	Publish(ctx context.Context, subject string, event *Event) error
}

var _ Publisher = (*Bus)(nil)

// Event types carried in Event.Type.
const (
	TypeFeeCreated       = "billing.fee.created"
	TypeFeePaid          = "billing.fee.paid"
	TypePaymentRecorded  = "billing.payment.recorded"
	TypeSettingsUpdated  = "settings.updated"
	TypePartnershipAdded = "partnerships.accepted"
)

// FeeCreatedData is emitted when a platform fee is recorded against a provider.
type FeeCreatedData struct {
	FeeID       uuid.UUID `json:"fee_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	ClientID    uuid.UUID `json:"client_id"`
	ServiceType string    `json:"service_type"`
	BookingRef  string    `json:"booking_ref,omitempty"`
	Subtotal    float64   `json:"subtotal"`
	PlatformFee float64   `json:"platform_fee"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeePaidData is emitted when a fee is settled.
type FeePaidData struct {
	FeeID         uuid.UUID `json:"fee_id"`
	PaymentMethod string    `json:"payment_method"`
	PlatformFee   float64   `json:"platform_fee"`
	PaidAt        time.Time `json:"paid_at"`
}

// PaymentRecordedData is emitted when an already-settled payment is stored.
type PaymentRecordedData struct {
	PaymentID      uuid.UUID `json:"payment_id"`
	UserID         uuid.UUID `json:"user_id"`
	ServiceType    string    `json:"service_type"`
	Amount         float64   `json:"amount"`
	PlatformFee    float64   `json:"platform_fee"`
	ProviderAmount float64   `json:"provider_amount"`
	PaymentMethod  string    `json:"payment_method"`
	PaidAt         time.Time `json:"paid_at"`
}

// SettingsUpdatedData is emitted after a configuration entry is written.
type SettingsUpdatedData struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartnershipAcceptedData is emitted when a provider accepts a partnership proposal.
type PartnershipAcceptedData struct {
	PartnershipID uuid.UUID  `json:"partnership_id"`
	ProviderID    uuid.UUID  `json:"provider_id"`
	PartnerID     *uuid.UUID `json:"partner_id,omitempty"`
	DiscountRate  float64    `json:"discount_rate"`
	AcceptedAt    time.Time  `json:"accepted_at"`
}
