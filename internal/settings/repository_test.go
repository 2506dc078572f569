package settings

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewRepository(pool), pool
}

func TestRepository_GetMany(t *testing.T) {
	repo, pool := newMockRepo(t)
	keys := []string{KeyPlatformFeePercentage, KeyBaseRidePrice}

	pool.ExpectQuery(`SELECT key, value\s+FROM platform_configs\s+WHERE key = ANY\(\$1\)`).
		WithArgs(keys).
		WillReturnRows(pgxmock.NewRows([]string{"key", "value"}).
			AddRow(KeyPlatformFeePercentage, "11").
			AddRow(KeyBaseRidePrice, "50"))

	values, err := repo.GetMany(context.Background(), keys)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyPlatformFeePercentage: "11", KeyBaseRidePrice: "50"}, values)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, pool := newMockRepo(t)

	pool.ExpectQuery(`FROM platform_configs\s+WHERE key = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")

	assert.True(t, common.IsNotFound(err))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRepository_Upsert(t *testing.T) {
	repo, pool := newMockRepo(t)
	updatedAt := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	pool.ExpectQuery(`(?s)INSERT INTO platform_configs.*ON CONFLICT \(key\) DO UPDATE`).
		WithArgs(KeyPlatformFeePercentage, "12", "", "admin-1").
		WillReturnRows(pgxmock.NewRows([]string{"description", "updated_at"}).
			AddRow("Platform fee charged on every transaction (%)", updatedAt))

	entry := &ConfigEntry{Key: KeyPlatformFeePercentage, Value: "12", UpdatedBy: "admin-1"}
	err := repo.Upsert(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, "Platform fee charged on every transaction (%)", entry.Description)
	assert.Equal(t, updatedAt, entry.UpdatedAt)
	assert.Equal(t, "12", entry.Value)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, pool := newMockRepo(t)
	now := time.Now().UTC()

	pool.ExpectQuery(`FROM platform_configs\s+ORDER BY key`).
		WillReturnRows(pgxmock.NewRows([]string{"key", "value", "description", "updated_by", "updated_at"}).
			AddRow(KeyBaseRidePrice, "50", "Base ride price (MZN)", "system", now).
			AddRow(KeyPlatformFeePercentage, "11", "Platform fee", "admin", now))

	entries, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, KeyBaseRidePrice, entries[0].Key)
	assert.Equal(t, "admin", entries[1].UpdatedBy)
	assert.NoError(t, pool.ExpectationsWereMet())
}
