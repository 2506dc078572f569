package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		amount, pct    float64
		fee, providers float64
	}{
		{"default rate", 1000, 11, 110.00, 890.00},
		{"zero fee", 500, 0, 0, 500},
		{"rounds the fee to cents", 99.99, 11, 11.00, 88.99},
		{"fractional rate", 250, 12.5, 31.25, 218.75},
		{"maximum rate", 80, 50, 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Calculate(tt.amount, tt.pct)

			assert.Equal(t, tt.amount, c.Subtotal)
			assert.Equal(t, tt.amount, c.Total)
			assert.Equal(t, tt.fee, c.PlatformFee)
			assert.Equal(t, tt.providers, c.ProviderAmount)
			assert.Equal(t, tt.pct, c.FeePercentage)
		})
	}
}

func TestCalculate_SplitAddsUp(t *testing.T) {
	amounts := []float64{0.01, 1, 13.37, 99.99, 1234.56, 50000}

	for pct := 0.0; pct <= 50; pct += 0.5 {
		for _, amount := range amounts {
			c := Calculate(amount, pct)
			assert.InDelta(t, amount, c.PlatformFee+c.ProviderAmount, 0.01, "amount %v at %v%%", amount, pct)
			assert.GreaterOrEqual(t, c.PlatformFee, 0.0)
			assert.LessOrEqual(t, c.PlatformFee, amount)
		}
	}
}
