package domain

import "context"

type RateChangeRepository interface {
	GetByPeriod(ctx context.Context, year, month int) (RateChange, error)
	Upsert(ctx context.Context, change RateChange) (RateChange, error)
}
