package partnerships

import (
	"time"

	"github.com/google/uuid"
)

// PartnershipType classifies a partnership
type PartnershipType string

const (
	TypeDriverAccommodation PartnershipType = "driver_accommodation"
	TypeBusiness            PartnershipType = "business_partnership"
	TypeReferral            PartnershipType = "referral_program"
)

// Status is the lifecycle state of a partnership
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusPending   Status = "pending"
	StatusSuspended Status = "suspended"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending, StatusSuspended:
		return true
	}
	return false
}

const (
	defaultCommissionRate = 5.0
	defaultDriverLevel    = "bronze"
	defaultVehicleType    = "any"
	maxCommissionRate     = 100.0
)

// ProposalTerms are the benefits a hotel offers drivers in a proposal
type ProposalTerms struct {
	OfferFreeAccommodation bool    `json:"offer_free_accommodation"`
	OfferMeals             bool    `json:"offer_meals"`
	OfferFuel              bool    `json:"offer_fuel"`
	PremiumRate            float64 `json:"premium_rate" binding:"min=0,max=100"`
}

// MinimumRequirements restrict which drivers a partnership applies to
type MinimumRequirements struct {
	DriverLevel string `json:"driver_level"`
	VehicleType string `json:"vehicle_type"`
	Description string `json:"description,omitempty"`
}

// Terms are stored as JSONB on the partnership row
type Terms struct {
	DiscountRate        float64             `json:"discount_rate"`
	CommissionRate      float64             `json:"commission_rate"`
	MinimumRequirements MinimumRequirements `json:"minimum_requirements"`
	Benefits            []string            `json:"benefits,omitempty"`
	Description         string              `json:"description,omitempty"`
}

// Metrics accumulate as transactions are recorded against a partnership
type Metrics struct {
	TotalTransactions int64   `json:"total_transactions"`
	TotalSavings      float64 `json:"total_savings"`
	TotalCommissions  float64 `json:"total_commissions"`
}

// Partnership links a provider with a partner under discount terms
type Partnership struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Type        PartnershipType `json:"type" db:"type"`
	ProviderID  uuid.UUID       `json:"provider_id" db:"provider_id"`
	PartnerID   *uuid.UUID      `json:"partner_id,omitempty" db:"partner_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Status      Status          `json:"status" db:"status"`
	Terms       Terms           `json:"terms" db:"terms"`
	Metrics     Metrics         `json:"metrics" db:"metrics"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// AcceptProposalInput describes a proposal being accepted by a driver
type AcceptProposalInput struct {
	ProviderID          uuid.UUID     `json:"provider_id" binding:"required"`
	PartnerID           *uuid.UUID    `json:"partner_id"`
	Title               string        `json:"title" binding:"required,max=200"`
	Description         string        `json:"description" binding:"max=2000"`
	Proposal            ProposalTerms `json:"proposal"`
	MinimumDriverLevel  string        `json:"minimum_driver_level" binding:"max=30"`
	RequiredVehicleType string        `json:"required_vehicle_type" binding:"max=30"`
	Benefits            []string      `json:"benefits" binding:"max=20"`
}

// DiscountQuote is the response of POST /partnerships/discount
type DiscountQuote struct {
	DiscountRate float64 `json:"discount_rate"`
	Capped       bool    `json:"capped"`
}

// UpdateStatusRequest is the body of PATCH /partnerships/:id/status
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,partnership_status"`
}

// UpdateTermsRequest is the body of PATCH /partnerships/:id/terms. Omitted
// fields keep their current value.
type UpdateTermsRequest struct {
	DiscountRate        *float64             `json:"discount_rate" binding:"required"`
	CommissionRate      *float64             `json:"commission_rate"`
	MinimumRequirements *MinimumRequirements `json:"minimum_requirements"`
	Benefits            []string             `json:"benefits" binding:"max=20"`
}

// RecordTransactionRequest is the body of POST /partnerships/:id/transactions
type RecordTransactionRequest struct {
	Amount float64 `json:"amount" binding:"gt=0"`
}
