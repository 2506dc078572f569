package settings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/database"
)

// Repository handles platform_configs persistence
type Repository struct {
	db database.Querier
}

// NewRepository creates a new settings repository
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// Get returns one entry by key
func (r *Repository) Get(ctx context.Context, key string) (*ConfigEntry, error) {
	query := `
		SELECT key, value, description, updated_by, updated_at
		FROM platform_configs
		WHERE key = $1
	`

	entry, err := database.RetryableQueryRow(ctx, r.db, query, []interface{}{key}, func(row pgx.Row) (*ConfigEntry, error) {
		e := &ConfigEntry{}
		if err := row.Scan(&e.Key, &e.Value, &e.Description, &e.UpdatedBy, &e.UpdatedAt); err != nil {
			return nil, err
		}
		return e, nil
	})
	if err != nil {
		if database.IsNoRows(err) {
			return nil, common.NewNotFoundError("config not found: "+key, nil)
		}
		return nil, fmt.Errorf("failed to get config %s: %w", key, err)
	}

	return entry, nil
}

// GetMany returns the raw values of the requested keys that exist.
func (r *Repository) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	query := `
		SELECT key, value
		FROM platform_configs
		WHERE key = ANY($1)
	`

	values, err := database.RetryableQuery(ctx, r.db, query, []interface{}{keys}, func(rows pgx.Rows) (map[string]string, error) {
		out := make(map[string]string, len(keys))
		for rows.Next() {
			var key, value string
			if err := rows.Scan(&key, &value); err != nil {
				return nil, err
			}
			out[key] = value
		}
		return out, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get configs: %w", err)
	}

	return values, nil
}

// Upsert creates or replaces an entry. An empty description keeps the stored one.
func (r *Repository) Upsert(ctx context.Context, entry *ConfigEntry) error {
	query := `
		INSERT INTO platform_configs (key, value, description, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			description = COALESCE(NULLIF(EXCLUDED.description, ''), platform_configs.description),
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
		RETURNING description, updated_at
	`

	args := []interface{}{entry.Key, entry.Value, entry.Description, entry.UpdatedBy}
	stored, err := database.RetryableQueryRow(ctx, r.db, query, args, func(row pgx.Row) (*ConfigEntry, error) {
		e := *entry
		if err := row.Scan(&e.Description, &e.UpdatedAt); err != nil {
			return nil, err
		}
		return &e, nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert config %s: %w", entry.Key, err)
	}

	*entry = *stored
	return nil
}

// List returns every entry ordered by key
func (r *Repository) List(ctx context.Context) ([]*ConfigEntry, error) {
	query := `
		SELECT key, value, description, updated_by, updated_at
		FROM platform_configs
		ORDER BY key
	`

	entries, err := database.RetryableQuery(ctx, r.db, query, nil, func(rows pgx.Rows) ([]*ConfigEntry, error) {
		var out []*ConfigEntry
		for rows.Next() {
			e := &ConfigEntry{}
			if err := rows.Scan(&e.Key, &e.Value, &e.Description, &e.UpdatedBy, &e.UpdatedAt); err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}

	return entries, nil
}
