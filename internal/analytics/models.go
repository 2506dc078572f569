package analytics

import "time"

// Period is the inclusive window a report covers
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Summary totals a reporting window
type Summary struct {
	TotalTransactions   int64   `json:"total_transactions"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalFees           float64 `json:"total_fees"`
	TotalPendingPayouts float64 `json:"total_pending_payouts"`
	NetRevenue          float64 `json:"net_revenue"`
	ProfitMargin        float64 `json:"profit_margin"`
}

// ServiceBreakdown is one service type's share of completed revenue
type ServiceBreakdown struct {
	ServiceType string  `json:"service_type"`
	Count       int64   `json:"count"`
	Revenue     float64 `json:"revenue"`
	Fees        float64 `json:"fees"`
	Percentage  float64 `json:"percentage"`
}

// FinancialReport is the platform's revenue and fee report for a window
type FinancialReport struct {
	Period             Period             `json:"period"`
	Summary            Summary            `json:"summary"`
	BreakdownByService []ServiceBreakdown `json:"breakdown_by_service"`
}

// ServiceTotals are completed payment sums for one service type
type ServiceTotals struct {
	ServiceType string
	Count       int64
	Revenue     float64
	Fees        float64
}
