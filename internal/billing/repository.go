package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/database"
	"github.com/richxcame/booking-platform/pkg/models"
	"github.com/richxcame/booking-platform/pkg/tracing"
)

const tracerName = "booking-platform/billing"

const recordColumns = `id, record_kind, user_id, provider_id, service_type, subtotal, platform_fee, total,
		payment_status, payment_method, paid_at, booking_kind, booking_ref, created_at, updated_at`

// Repository handles billing_records persistence
type Repository struct {
	db database.Querier
}

// NewRepository creates a new billing repository
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// Insert stores a fee or payment row and fills in its timestamps. A second fee
// for the same booking is rejected with a conflict.
func (r *Repository) Insert(ctx context.Context, rec *models.PaymentRecord) error {
	query := `
		INSERT INTO billing_records (
			id, record_kind, user_id, provider_id, service_type, subtotal, platform_fee, total,
			payment_status, payment_method, paid_at, booking_kind, booking_ref
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	return tracing.TraceDBQuery(ctx, tracerName, "insert", "billing_records", func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query,
			rec.ID,
			rec.Kind,
			rec.UserID,
			rec.ProviderID,
			rec.ServiceType,
			rec.Subtotal,
			rec.PlatformFee,
			rec.Total,
			rec.PaymentStatus,
			rec.PaymentMethod,
			rec.PaidAt,
			rec.BookingKind,
			rec.BookingRef,
		).Scan(&rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return common.NewConflictError("a platform fee already exists for this booking").WithCode("FEE_ALREADY_EXISTS")
			}
			return fmt.Errorf("failed to insert billing record: %w", err)
		}
		return nil
	})
}

// MarkPaid completes a record. Any status may be overwritten. The status the
// record held before the update is returned alongside it.
func (r *Repository) MarkPaid(ctx context.Context, id uuid.UUID, method string, paidAt time.Time) (*models.PaymentRecord, models.PaymentStatus, error) {
	query := `
		WITH prev AS (
			SELECT id AS prev_id, payment_status AS prev_status
			FROM billing_records
			WHERE id = $1
			FOR UPDATE
		)
		UPDATE billing_records
		SET payment_status = 'completed', payment_method = $2, paid_at = $3, updated_at = NOW()
		FROM prev
		WHERE id = prev.prev_id
		RETURNING ` + recordColumns + `, prev.prev_status`

	type paidRow struct {
		rec  *models.PaymentRecord
		prev models.PaymentStatus
	}
	out, err := database.RetryableQueryRow(ctx, r.db, query, []interface{}{id, method, paidAt}, func(row pgx.Row) (paidRow, error) {
		res := paidRow{rec: &models.PaymentRecord{}}
		if err := row.Scan(append(recordFields(res.rec), &res.prev)...); err != nil {
			return paidRow{}, err
		}
		return res, nil
	})
	if err != nil {
		if database.IsNoRows(err) {
			return nil, "", common.NewNotFoundError("fee not found", nil).WithCode("FEE_NOT_FOUND")
		}
		return nil, "", fmt.Errorf("failed to mark fee as paid: %w", err)
	}

	return out.rec, out.prev, nil
}

// GetPendingFees returns a provider's unpaid fees, newest first
func (r *Repository) GetPendingFees(ctx context.Context, providerID uuid.UUID) ([]*models.PaymentRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM billing_records
		WHERE provider_id = $1 AND record_kind = 'fee' AND payment_status = 'pending'
		ORDER BY created_at DESC
	`

	fees, err := database.RetryableQuery(ctx, r.db, query, []interface{}{providerID}, func(rows pgx.Rows) ([]*models.PaymentRecord, error) {
		var out []*models.PaymentRecord
		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
		return out, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pending fees: %w", err)
	}

	return fees, nil
}

func scanRecord(row pgx.Row) (*models.PaymentRecord, error) {
	rec := &models.PaymentRecord{}
	if err := row.Scan(recordFields(rec)...); err != nil {
		return nil, err
	}
	return rec, nil
}

// recordFields lists scan targets in recordColumns order.
func recordFields(rec *models.PaymentRecord) []interface{} {
	return []interface{}{
		&rec.ID,
		&rec.Kind,
		&rec.UserID,
		&rec.ProviderID,
		&rec.ServiceType,
		&rec.Subtotal,
		&rec.PlatformFee,
		&rec.Total,
		&rec.PaymentStatus,
		&rec.PaymentMethod,
		&rec.PaidAt,
		&rec.BookingKind,
		&rec.BookingRef,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	}
}
