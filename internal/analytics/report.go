package analytics

import (
	"time"

	"github.com/richxcame/booking-platform/pkg/money"
)

// BuildReport assembles a report from completed totals per service type and
// the pending fee sum. Percentages are 0 when there is no revenue.
func BuildReport(start, end time.Time, completed []ServiceTotals, pendingFees float64) *FinancialReport {
	var count int64
	var revenue, fees float64
	for _, t := range completed {
		count += t.Count
		revenue += t.Revenue
		fees += t.Fees
	}
	revenue = money.Round2(revenue)
	fees = money.Round2(fees)

	breakdown := make([]ServiceBreakdown, 0, len(completed))
	for _, t := range completed {
		breakdown = append(breakdown, ServiceBreakdown{
			ServiceType: t.ServiceType,
			Count:       t.Count,
			Revenue:     money.Round2(t.Revenue),
			Fees:        money.Round2(t.Fees),
			Percentage:  money.Round2(money.Ratio(t.Revenue, revenue)),
		})
	}

	return &FinancialReport{
		Period: Period{StartDate: start, EndDate: end},
		Summary: Summary{
			TotalTransactions:   count,
			TotalRevenue:        revenue,
			TotalFees:           fees,
			TotalPendingPayouts: money.Round2(pendingFees),
			NetRevenue:          money.Sub(revenue, fees),
			ProfitMargin:        money.Round2(money.Ratio(fees, revenue)),
		},
		BreakdownByService: breakdown,
	}
}
