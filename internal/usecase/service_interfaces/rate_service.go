package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/commons"
	"github.com/banka1/banking-service/internal/domain"
)

type RateService interface {
	// RateFor returns the rate table in effect for the given period.
	RateFor(ctx context.Context, year, month int) (domain.RateChange, error)
	// ConvertAmount applies the pairwise rate from the table and reports the
	// rate it used; identity (rate 1) when the currencies are equal.
	ConvertAmount(amount decimal.Decimal, from, to domain.CurrencyType, table domain.RateChange) (decimal.Decimal, decimal.Decimal, error)
	CurrentRates(ctx context.Context) (commons.Response[models.RateTableResponse], error)
	Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error)
}
