package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/banka1/banking-service/internal/domain"
)

var _ domain.RateChangeRepository = (*RateChangeRepository)(nil)

type RateChangeRepository struct {
	db *sql.DB
}

func NewRateChangeRepository(db *sql.DB) *RateChangeRepository {
	return &RateChangeRepository{db: db}
}

func (r *RateChangeRepository) GetByPeriod(ctx context.Context, year, month int) (domain.RateChange, error) {
	const query = `SELECT id, year, month, rates FROM rate_changes WHERE year = $1 AND month = $2`

	var (
		change domain.RateChange
		raw    []byte
	)
	err := r.db.QueryRowContext(ctx, query, year, month).Scan(&change.ID, &change.Year, &change.Month, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RateChange{}, fmt.Errorf("%w: period %04d-%02d", domain.ErrRecordNotFound, year, month)
		}
		return domain.RateChange{}, fmt.Errorf("query rate change %04d-%02d: %w", year, month, err)
	}

	rates := make(map[string]decimal.Decimal)
	if err := json.Unmarshal(raw, &rates); err != nil {
		return domain.RateChange{}, fmt.Errorf("decode rate table %04d-%02d: %w", year, month, err)
	}
	change.Rates = rates

	return change, nil
}

func (r *RateChangeRepository) Upsert(ctx context.Context, change domain.RateChange) (domain.RateChange, error) {
	raw, err := json.Marshal(change.Rates)
	if err != nil {
		return domain.RateChange{}, fmt.Errorf("encode rate table: %w", err)
	}

	const query = `
INSERT INTO rate_changes (year, month, rates)
VALUES ($1, $2, $3)
ON CONFLICT (year, month) DO UPDATE SET rates = EXCLUDED.rates
RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, change.Year, change.Month, raw).Scan(&change.ID); err != nil {
		return domain.RateChange{}, fmt.Errorf("upsert rate change %04d-%02d: %w", change.Year, change.Month, err)
	}

	return change, nil
}
