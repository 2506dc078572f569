package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType is the kind of service a payment settles
type ServiceType string

const (
	ServiceTypeRide          ServiceType = "ride"
	ServiceTypeAccommodation ServiceType = "accommodation"
	ServiceTypeEvent         ServiceType = "event"
	ServiceTypeHotel         ServiceType = "hotel"
)

// IsValid reports whether s is a known service type
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceTypeRide, ServiceTypeAccommodation, ServiceTypeEvent, ServiceTypeHotel:
		return true
	}
	return false
}

// BookingKind returns which booking table a reference of this service type points at
func (s ServiceType) BookingKind() BookingKind {
	switch s {
	case ServiceTypeHotel:
		return BookingKindHotel
	case ServiceTypeEvent:
		return BookingKindEvent
	default:
		return BookingKindBooking
	}
}

// BookingKind names the booking record a payment refers to
type BookingKind string

const (
	BookingKindBooking BookingKind = "booking"
	BookingKindHotel   BookingKind = "hotel_booking"
	BookingKindEvent   BookingKind = "event_booking"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// RecordKind separates provider fees from settled client payments
type RecordKind string

const (
	RecordKindFee     RecordKind = "fee"
	RecordKindPayment RecordKind = "payment"
)

// PaymentMethodPlatformFee marks rows that are fees owed by a provider
const PaymentMethodPlatformFee = "platform_fee"

// PaymentRecord is a fee or payment row. Total always equals Subtotal; the
// platform fee is informational and comes out of the provider's share.
type PaymentRecord struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Kind          RecordKind    `json:"record_kind" db:"record_kind"`
	UserID        uuid.UUID     `json:"user_id" db:"user_id"`
	ProviderID    *uuid.UUID    `json:"provider_id,omitempty" db:"provider_id"`
	ServiceType   ServiceType   `json:"service_type" db:"service_type"`
	Subtotal      float64       `json:"subtotal" db:"subtotal"`
	PlatformFee   float64       `json:"platform_fee" db:"platform_fee"`
	Total         float64       `json:"total" db:"total"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentMethod string        `json:"payment_method" db:"payment_method"`
	PaidAt        *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
	BookingKind   *BookingKind  `json:"booking_kind,omitempty" db:"booking_kind"`
	BookingRef    *string       `json:"booking_ref,omitempty" db:"booking_ref"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}
