package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var defaultRates = HotelRates{
	ExtraAdultPrice:         200,
	ExtraChildPrice:         100,
	LongStayDiscountPercent: 10,
	PlatformFeePercentage:   11,
}

func intPtr(v int) *int { return &v }

func TestSuggestedPrice(t *testing.T) {
	tests := []struct {
		name                       string
		distance, perKm, basePrice float64
		want                       float64
	}{
		{"ten km at 15 per km", 10, 15, 50, 200.00},
		{"zero distance is the base price", 0, 15, 50, 50.00},
		{"rounds to cents", 12.3, 14.99, 50, 234.38},
		{"no base price", 7.5, 20, 0, 150.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestedPrice(tt.distance, tt.perKm, tt.basePrice))
		})
	}
}

func TestSuggestRide(t *testing.T) {
	s := SuggestRide(10, 15, 50)

	assert.Equal(t, 10.0, s.Distance)
	assert.Equal(t, 15.0, s.PricePerKm)
	assert.Equal(t, 50.0, s.BasePrice)
	assert.Equal(t, 200.0, s.SuggestedPrice)
	assert.Equal(t, 12, s.EstimatedMinutes)
}

func TestHotelPrice_LongStayDiscount(t *testing.T) {
	b := HotelPrice(HotelPriceInput{
		BasePrice:           1000,
		Nights:              7,
		Adults:              intPtr(2),
		Children:            intPtr(0),
		HasLongStayDiscount: true,
	}, defaultRates)

	assert.Equal(t, 7000.0, b.BaseTotal)
	assert.Equal(t, 700.0, b.LongStayDiscount)
	assert.Equal(t, 6300.0, b.Subtotal)
	assert.Equal(t, 693.0, b.PlatformFee)
	assert.Equal(t, 6993.0, b.Total)
}

func TestHotelPrice_DiscountNeedsSevenNights(t *testing.T) {
	b := HotelPrice(HotelPriceInput{BasePrice: 1000, Nights: 6, HasLongStayDiscount: true}, defaultRates)

	assert.Equal(t, 0.0, b.LongStayDiscount)
	assert.Equal(t, 6000.0, b.Subtotal)
}

func TestHotelPrice_DiscountNeedsFlag(t *testing.T) {
	b := HotelPrice(HotelPriceInput{BasePrice: 1000, Nights: 10}, defaultRates)

	assert.Equal(t, 0.0, b.LongStayDiscount)
}

func TestHotelPrice_ExtraGuests(t *testing.T) {
	b := HotelPrice(HotelPriceInput{
		BasePrice: 500,
		Nights:    2,
		Adults:    intPtr(4),
		Children:  intPtr(1),
	}, defaultRates)

	assert.Equal(t, 1000.0, b.BaseTotal)
	assert.Equal(t, 800.0, b.ExtraAdults)
	assert.Equal(t, 200.0, b.ExtraChildren)
	assert.Equal(t, 2000.0, b.Subtotal)
	assert.Equal(t, 220.0, b.PlatformFee)
	assert.Equal(t, 2220.0, b.Total)
}

func TestHotelPrice_DefaultsAndSingleAdult(t *testing.T) {
	defaults := HotelPrice(HotelPriceInput{BasePrice: 300, Nights: 1}, defaultRates)
	single := HotelPrice(HotelPriceInput{BasePrice: 300, Nights: 1, Adults: intPtr(1)}, defaultRates)

	assert.Equal(t, 0.0, defaults.ExtraAdults)
	assert.Equal(t, 0.0, defaults.ExtraChildren)
	assert.Equal(t, 0.0, single.ExtraAdults)
	assert.Equal(t, defaults.Total, single.Total)
}

func TestHotelPrice_FeeAddedOnTop(t *testing.T) {
	b := HotelPrice(HotelPriceInput{BasePrice: 333.33, Nights: 3}, defaultRates)

	assert.InDelta(t, b.Subtotal+b.PlatformFee, b.Total, 0.005)
	assert.Greater(t, b.Total, b.Subtotal)
}
