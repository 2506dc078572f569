package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/richxcame/booking-platform/pkg/database"
)

// Repository reads billing records for reporting
type Repository struct {
	db database.Querier
}

// NewRepository creates a new analytics repository
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// CompletedByService sums completed records paid within [start, end], grouped
// by service type.
func (r *Repository) CompletedByService(ctx context.Context, start, end time.Time) ([]ServiceTotals, error) {
	query := `
		SELECT
			service_type,
			COUNT(*) AS count,
			COALESCE(SUM(total), 0) AS revenue,
			COALESCE(SUM(platform_fee), 0) AS fees
		FROM billing_records
		WHERE payment_status = 'completed'
		  AND paid_at >= $1
		  AND paid_at <= $2
		GROUP BY service_type
		ORDER BY service_type
	`

	totals, err := database.RetryableQuery(ctx, r.db, query, []interface{}{start, end}, func(rows pgx.Rows) ([]ServiceTotals, error) {
		var out []ServiceTotals
		for rows.Next() {
			var t ServiceTotals
			if err := rows.Scan(&t.ServiceType, &t.Count, &t.Revenue, &t.Fees); err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get completed totals: %w", err)
	}
	return totals, nil
}

// PendingFees sums the platform fee of pending records created within
// [start, end].
func (r *Repository) PendingFees(ctx context.Context, start, end time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(platform_fee), 0)
		FROM billing_records
		WHERE payment_status = 'pending'
		  AND created_at >= $1
		  AND created_at <= $2
	`

	total, err := database.RetryableQueryRow(ctx, r.db, query, []interface{}{start, end}, func(row pgx.Row) (float64, error) {
		var sum float64
		err := row.Scan(&sum)
		return sum, err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get pending fees: %w", err)
	}
	return total, nil
}
