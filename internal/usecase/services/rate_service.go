package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/commons"
	"github.com/banka1/banking-service/internal/domain"
	"github.com/banka1/banking-service/internal/logger"
	"github.com/banka1/banking-service/internal/usecase/service_interfaces"
)

var _ service_interfaces.RateService = (*RateService)(nil)

type RateService struct {
	rateRepo domain.RateChangeRepository
	now      func() time.Time
}

func NewRateService(rateRepo domain.RateChangeRepository, now func() time.Time) *RateService {
	if now == nil {
		now = time.Now
	}
	return &RateService{rateRepo: rateRepo, now: now}
}

// RateFor returns the snapshot for the exact period; months are never
// interpolated and a missing row is an error, not a default.
func (s *RateService) RateFor(ctx context.Context, year, month int) (domain.RateChange, error) {
	change, err := s.rateRepo.GetByPeriod(ctx, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.RateChange{}, fmt.Errorf("%w: %04d-%02d", domain.ErrRateUnavailable, year, month)
		}
		return domain.RateChange{}, fmt.Errorf("fetch rate table %04d-%02d: %w", year, month, err)
	}
	return change, nil
}

// ConvertAmount is the single conversion path; both the preview endpoint
// and the transfer executor go through it.
func (s *RateService) ConvertAmount(amount decimal.Decimal, from, to domain.CurrencyType, table domain.RateChange) (decimal.Decimal, decimal.Decimal, error) {
	if from == to {
		return amount, decimal.NewFromInt(1), nil
	}

	rate, ok := table.Rate(from, to)
	if !ok {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrencyPair, domain.PairKey(from, to))
	}

	return amount.Mul(rate), rate, nil
}

func (s *RateService) CurrentRates(ctx context.Context) (commons.Response[models.RateTableResponse], error) {
	year, month := period(s.now())

	change, err := s.RateFor(ctx, year, month)
	if err != nil {
		logger.Error("rate service current rates failed", err, logger.Fields{
			"year":  year,
			"month": month,
		})
		if errors.Is(err, domain.ErrRateUnavailable) {
			return commons.ErrorResponse[models.RateTableResponse]("Rate table not found for current period"), err
		}
		return commons.ErrorResponse[models.RateTableResponse]("failed to fetch rates"), err
	}

	return commons.SuccessResponse("rates fetched successfully", models.RateTableResponse{
		Year:  change.Year,
		Month: change.Month,
		Rates: change.Rates,
	}), nil
}

func (s *RateService) Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error) {
	logger.Info("rate service convert request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ConvertResponse](err.Error()), err
	}

	from := domain.CurrencyType(req.FromCurrency)
	to := domain.CurrencyType(req.ToCurrency)
	year, month := period(s.now())

	if from == to {
		return commons.SuccessResponse("amount converted successfully", models.ConvertResponse{
			Amount:          req.Amount,
			FromCurrency:    req.FromCurrency,
			ToCurrency:      req.ToCurrency,
			ConvertedAmount: req.Amount,
			AppliedRate:     decimal.NewFromInt(1),
			Year:            year,
			Month:           month,
		}), nil
	}

	table, err := s.RateFor(ctx, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			return commons.ErrorResponse[models.ConvertResponse]("Rate table not found for current period"), err
		}
		return commons.ErrorResponse[models.ConvertResponse]("failed to convert amount"), err
	}

	converted, rate, err := s.ConvertAmount(req.Amount, from, to, table)
	if err != nil {
		return commons.ErrorResponse[models.ConvertResponse]("Rate not found for currency pair"), err
	}

	return commons.SuccessResponse("amount converted successfully", models.ConvertResponse{
		Amount:          req.Amount,
		FromCurrency:    req.FromCurrency,
		ToCurrency:      req.ToCurrency,
		ConvertedAmount: converted,
		AppliedRate:     rate,
		Year:            table.Year,
		Month:           table.Month,
	}), nil
}

func period(t time.Time) (year, month int) {
	t = t.UTC()
	return t.Year(), int(t.Month())
}
