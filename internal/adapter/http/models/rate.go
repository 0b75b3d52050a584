package models

import (
	"github.com/shopspring/decimal"
)

type RateTableResponse struct {
	Year  int                        `json:"year"`
	Month int                        `json:"month"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	FromCurrency string          `json:"fromCurrency" validate:"required,len=3,uppercase"`
	ToCurrency   string          `json:"toCurrency" validate:"required,len=3,uppercase"`
}

func (r ConvertRequest) Validate() error {
	errs := checkStruct(r)

	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}

	return joinErrors(errs)
}

type ConvertResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	AppliedRate     decimal.Decimal `json:"appliedRate"`
	Year            int             `json:"year"`
	Month           int             `json:"month"`
}
