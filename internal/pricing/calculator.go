package pricing

import (
	"github.com/richxcame/booking-platform/pkg/geo"
	"github.com/richxcame/booking-platform/pkg/money"
)

// SuggestedPrice returns basePrice + distanceKm × pricePerKm, rounded to cents.
func SuggestedPrice(distanceKm, pricePerKm, basePrice float64) float64 {
	return money.Round2(basePrice + distanceKm*pricePerKm)
}

// SuggestRide builds a ride suggestion from resolved rates.
func SuggestRide(distanceKm, pricePerKm, basePrice float64) *RidePriceSuggestion {
	return &RidePriceSuggestion{
		Distance:         distanceKm,
		PricePerKm:       pricePerKm,
		BasePrice:        basePrice,
		SuggestedPrice:   SuggestedPrice(distanceKm, pricePerKm, basePrice),
		EstimatedMinutes: geo.EstimateTravelTime(distanceKm),
	}
}

// HotelPrice prices a stay. Adults beyond two and every child pay a nightly
// surcharge, and the platform fee is added on top of the subtotal.
func HotelPrice(input HotelPriceInput, rates HotelRates) *HotelPriceBreakdown {
	adults := defaultAdults
	if input.Adults != nil {
		adults = *input.Adults
	}
	children := 0
	if input.Children != nil {
		children = *input.Children
	}

	nights := float64(input.Nights)
	baseTotal := input.BasePrice * nights

	extraAdultCount := adults - includedAdults
	if extraAdultCount < 0 {
		extraAdultCount = 0
	}
	extraAdults := float64(extraAdultCount) * rates.ExtraAdultPrice * nights
	extraChildren := float64(children) * rates.ExtraChildPrice * nights

	longStayDiscount := 0.0
	if input.HasLongStayDiscount && input.Nights >= longStayNights {
		longStayDiscount = money.Percent(baseTotal, rates.LongStayDiscountPercent)
	}

	subtotal := baseTotal + extraAdults + extraChildren - longStayDiscount
	fee := money.Percent(subtotal, rates.PlatformFeePercentage)

	return &HotelPriceBreakdown{
		BaseTotal:             baseTotal,
		ExtraAdults:           extraAdults,
		ExtraChildren:         extraChildren,
		LongStayDiscount:      longStayDiscount,
		Subtotal:              subtotal,
		PlatformFeePercentage: rates.PlatformFeePercentage,
		PlatformFee:           fee,
		Total:                 money.Round2(subtotal + fee),
	}
}
