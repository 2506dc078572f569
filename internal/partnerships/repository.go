package partnerships

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/database"
	"github.com/richxcame/booking-platform/pkg/tracing"
)

const tracerName = "booking-platform/partnerships"

const partnershipColumns = `id, type, provider_id, partner_id, title, description, status, terms, metrics, created_at, updated_at`

// Repository handles partnership persistence
type Repository struct {
	db database.Querier
}

// NewRepository creates a new partnerships repository
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// Create inserts a partnership and fills in its timestamps
func (r *Repository) Create(ctx context.Context, p *Partnership) error {
	termsJSON, err := json.Marshal(p.Terms)
	if err != nil {
		return fmt.Errorf("failed to encode terms: %w", err)
	}
	metricsJSON, err := json.Marshal(p.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}

	query := `
		INSERT INTO partnerships (id, type, provider_id, partner_id, title, description, status, terms, metrics)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	return tracing.TraceDBQuery(ctx, tracerName, "insert", "partnerships", func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query,
			p.ID, p.Type, p.ProviderID, p.PartnerID, p.Title, p.Description, p.Status, termsJSON, metricsJSON,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create partnership: %w", err)
		}
		return nil
	})
}

// Get returns a partnership by ID
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE id = $1`

	p, err := database.RetryableQueryRow(ctx, r.db, query, []interface{}{id}, scanPartnership)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, partnershipNotFound()
		}
		return nil, fmt.Errorf("failed to get partnership: %w", err)
	}
	return p, nil
}

// ListByProvider returns a provider's partnerships, newest first
func (r *Repository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Partnership, error) {
	query := `
		SELECT ` + partnershipColumns + `
		FROM partnerships
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`

	list, err := database.RetryableQuery(ctx, r.db, query, []interface{}{providerID}, func(rows pgx.Rows) ([]*Partnership, error) {
		var out []*Partnership
		for rows.Next() {
			p, err := scanPartnership(rows)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list partnerships: %w", err)
	}
	return list, nil
}

// UpdateStatus sets the status of a partnership
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Partnership, error) {
	query := `
		UPDATE partnerships SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + partnershipColumns

	p, err := database.RetryableQueryRow(ctx, r.db, query, []interface{}{id, status}, scanPartnership)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, partnershipNotFound()
		}
		return nil, fmt.Errorf("failed to update partnership status: %w", err)
	}
	return p, nil
}

// UpdateTerms replaces the terms of a partnership
func (r *Repository) UpdateTerms(ctx context.Context, id uuid.UUID, terms Terms) (*Partnership, error) {
	termsJSON, err := json.Marshal(terms)
	if err != nil {
		return nil, fmt.Errorf("failed to encode terms: %w", err)
	}

	query := `
		UPDATE partnerships SET terms = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + partnershipColumns

	p, err := database.RetryableQueryRow(ctx, r.db, query, []interface{}{id, termsJSON}, scanPartnership)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, partnershipNotFound()
		}
		return nil, fmt.Errorf("failed to update partnership terms: %w", err)
	}
	return p, nil
}

// RecordTransaction adds a transaction of amount to a partnership's metrics.
// The row is locked for the read-modify-write.
func (r *Repository) RecordTransaction(ctx context.Context, id uuid.UUID, amount float64) (*Partnership, error) {
	var updated *Partnership

	err := database.RetryableTransaction(ctx, r.db, func(tx pgx.Tx) error {
		p, err := scanPartnership(tx.QueryRow(ctx,
			`SELECT `+partnershipColumns+` FROM partnerships WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if database.IsNoRows(err) {
				return partnershipNotFound()
			}
			return fmt.Errorf("failed to lock partnership: %w", err)
		}

		p.applyTransaction(amount)
		metricsJSON, err := json.Marshal(p.Metrics)
		if err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}

		err = tx.QueryRow(ctx,
			`UPDATE partnerships SET metrics = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
			id, metricsJSON,
		).Scan(&p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update partnership metrics: %w", err)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func partnershipNotFound() *common.AppError {
	return common.NewNotFoundError("partnership not found", nil).WithCode("PARTNERSHIP_NOT_FOUND")
}

func scanPartnership(row pgx.Row) (*Partnership, error) {
	p := &Partnership{}
	var termsJSON, metricsJSON []byte
	err := row.Scan(
		&p.ID,
		&p.Type,
		&p.ProviderID,
		&p.PartnerID,
		&p.Title,
		&p.Description,
		&p.Status,
		&termsJSON,
		&metricsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(termsJSON, &p.Terms); err != nil {
		return nil, fmt.Errorf("failed to decode terms: %w", err)
	}
	if err := json.Unmarshal(metricsJSON, &p.Metrics); err != nil {
		return nil, fmt.Errorf("failed to decode metrics: %w", err)
	}
	return p, nil
}
