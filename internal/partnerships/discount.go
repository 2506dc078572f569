package partnerships

import (
	"math"

	"github.com/richxcame/booking-platform/pkg/money"
)

// Discount points awarded per proposal benefit
const (
	BaseDiscountRate      = 10.0
	FreeAccommodationRate = 15.0
	MealsRate             = 5.0
	FuelRate              = 8.0
	MaxDiscountRate       = 40.0
)

// ComposeDiscount stacks the benefit rates of a proposal on top of the base
// rate. The cap is applied once, after every addition.
func ComposeDiscount(t ProposalTerms) float64 {
	return money.Round2(math.Min(stackRates(t), MaxDiscountRate))
}

// QuoteDiscount reports the composed rate and whether the cap was hit
func QuoteDiscount(t ProposalTerms) *DiscountQuote {
	return &DiscountQuote{
		DiscountRate: ComposeDiscount(t),
		Capped:       stackRates(t) > MaxDiscountRate,
	}
}

func stackRates(t ProposalTerms) float64 {
	rate := BaseDiscountRate
	if t.OfferFreeAccommodation {
		rate += FreeAccommodationRate
	}
	if t.OfferMeals {
		rate += MealsRate
	}
	if t.OfferFuel {
		rate += FuelRate
	}
	if t.PremiumRate > 0 {
		rate += t.PremiumRate
	}
	return rate
}

// applyTransaction adds one transaction of amount to the running metrics
func (p *Partnership) applyTransaction(amount float64) {
	p.Metrics.TotalTransactions++
	p.Metrics.TotalSavings = money.Round2(p.Metrics.TotalSavings + money.Percent(amount, p.Terms.DiscountRate))
	p.Metrics.TotalCommissions = money.Round2(p.Metrics.TotalCommissions + money.Percent(amount, p.Terms.CommissionRate))
}
