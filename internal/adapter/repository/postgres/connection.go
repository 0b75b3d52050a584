package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/banka1/banking-service/internal/domain"
)

func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}

// isSerializationFailure matches the SQLSTATEs Postgres uses when it aborts
// one of two conflicting transactions: 40001 (serialization_failure) and
// 40P01 (deadlock_detected). Both mean the posting lost a race and can be
// retried.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == "40001" || code == "40P01"
	}
	return false
}

// wrapPostingError keeps driver errors wrapped, but surfaces an aborted
// conflicting transaction as ErrPersistenceConflict so callers know the
// posting is retriable.
func wrapPostingError(op string, err error) error {
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrPersistenceConflict, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
