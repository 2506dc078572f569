package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Accepted enumeration values
var (
	ServiceTypes        = []string{"ride", "accommodation", "event", "hotel"}
	PartnershipTypes    = []string{"driver_accommodation", "business_partnership", "referral_program"}
	PartnershipStatuses = []string{"active", "inactive", "pending", "suspended"}
	PaymentStatuses     = []string{"pending", "completed", "failed"}
)

var rules = map[string]validator.Func{
	"latitude":           validateLatitude,
	"longitude":          validateLongitude,
	"service_type":       enumRule(ServiceTypes),
	"partnership_type":   enumRule(PartnershipTypes),
	"partnership_status": enumRule(PartnershipStatuses),
	"payment_status":     enumRule(PaymentStatuses),
	"percentage":         validatePercentage,
}

// validateLatitude checks if latitude is within valid range (-90 to 90)
func validateLatitude(fl validator.FieldLevel) bool {
	latitude := fl.Field().Float()
	return latitude >= -90.0 && latitude <= 90.0
}

// validateLongitude checks if longitude is within valid range (-180 to 180)
func validateLongitude(fl validator.FieldLevel) bool {
	longitude := fl.Field().Float()
	return longitude >= -180.0 && longitude <= 180.0
}

func validatePercentage(fl validator.FieldLevel) bool {
	pct := fl.Field().Float()
	return pct >= 0 && pct <= 100
}

func enumRule(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return contains(values, fl.Field().String())
	}
}

// contains checks if a string slice contains a specific string
func contains(slice []string, item string) bool {
	item = strings.ToLower(strings.TrimSpace(item))
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
