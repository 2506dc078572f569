package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/richxcame/booking-platform/pkg/resilience"
)

// retryableCodes are SQLSTATE codes worth another attempt. Whole classes
// are listed by their two-character prefix.
var retryableCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
	"53000": true, // insufficient_resources
	"53300": true, // too_many_connections
	"53400": true, // configuration_limit_exceeded
	"57P01": true, // admin_shutdown
	"57P02": true, // crash_shutdown
	"57P03": true, // cannot_connect_now
	"58000": true, // system_error
	"08":    true, // connection_exception
}

// transientMessages match driver errors raised before the server answered
var transientMessages = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"unexpected eof",
	"server closed",
}

// RetryableQuery runs query and hands the rows to scanner, retrying
// transient failures.
func RetryableQuery[T any](ctx context.Context, pool interface {
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
}, query string, args []interface{}, scanner func(pgx.Rows) (T, error)) (T, error) {
	return withRetry(ctx, "database.query", postgresRetryConfig(), func(ctx context.Context) (T, error) {
		rows, err := pool.Query(ctx, query, args...)
		if err != nil {
			var zero T
			return zero, err
		}
		defer rows.Close()
		return scanner(rows)
	})
}

// RetryableQueryRow runs a single-row query and hands it to scanner,
// retrying transient failures. pgx.ErrNoRows is returned as is.
func RetryableQueryRow[T any](ctx context.Context, pool interface {
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}, query string, args []interface{}, scanner func(pgx.Row) (T, error)) (T, error) {
	return withRetry(ctx, "database.query_row", postgresRetryConfig(), func(ctx context.Context) (T, error) {
		return scanner(pool.QueryRow(ctx, query, args...))
	})
}

// RetryableTransaction runs fn in a transaction, committing on success and
// rolling back on error. Serialization failures and deadlocks rerun the
// whole transaction.
func RetryableTransaction(ctx context.Context, pool interface {
	Begin(context.Context) (pgx.Tx, error)
}, fn func(pgx.Tx) error) error {
	cfg := postgresRetryConfig()
	cfg.InitialBackoff = 50 * time.Millisecond
	cfg.MaxBackoff = time.Second

	_, err := withRetry(ctx, "database.transaction", cfg, func(ctx context.Context) (struct{}, error) {
		tx, err := pool.Begin(ctx)
		if err != nil {
			return struct{}{}, err
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback(ctx)
			return struct{}{}, err
		}
		return struct{}{}, tx.Commit(ctx)
	})
	return err
}

func withRetry[T any](ctx context.Context, name string, cfg resilience.RetryConfig, op func(context.Context) (T, error)) (T, error) {
	result, err := resilience.RetryWithName(ctx, cfg, func(ctx context.Context) (interface{}, error) {
		return op(ctx)
	}, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// isPostgresRetryable reports whether err is a transient PostgreSQL or
// connection failure.
func isPostgresRetryable(err error) bool {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return retryableCodes[pgErr.Code] || (len(pgErr.Code) >= 2 && retryableCodes[pgErr.Code[:2]])
	}

	msg := strings.ToLower(err.Error())
	for _, m := range transientMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

func postgresRetryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryableChecker = isPostgresRetryable
	return cfg
}
