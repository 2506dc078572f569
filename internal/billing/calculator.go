package billing

import "github.com/richxcame/booking-platform/pkg/money"

// Calculate splits amount at feePercentage. The platform fee and the provider
// amount are each rounded to cents.
func Calculate(amount, feePercentage float64) *BillingCalculation {
	fee := money.PercentRounded(amount, feePercentage)
	return &BillingCalculation{
		Subtotal:       amount,
		PlatformFee:    fee,
		ProviderAmount: money.Sub(amount, fee),
		Total:          amount,
		FeePercentage:  feePercentage,
	}
}
