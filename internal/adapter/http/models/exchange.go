package models

import (
	"github.com/shopspring/decimal"
)

type ExchangeTransferRequest struct {
	FromAccountID int64           `json:"fromAccountId" validate:"required,gt=0"`
	ToAccountID   int64           `json:"toAccountId" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount"`
	FromCurrency  string          `json:"fromCurrency" validate:"required,len=3,uppercase"`
	ToCurrency    string          `json:"toCurrency" validate:"required,len=3,uppercase"`
}

func (r ExchangeTransferRequest) Validate() error {
	errs := checkStruct(r)

	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}
	if r.FromAccountID == r.ToAccountID {
		errs = append(errs, "fromAccountId and toAccountId cannot be the same")
	}
	if r.FromCurrency == r.ToCurrency {
		errs = append(errs, "fromCurrency and toCurrency cannot be the same")
	}

	return joinErrors(errs)
}

type ExchangeTransferResponse struct {
	Reference     string          `json:"reference"`
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	AppliedRate   decimal.Decimal `json:"appliedRate"`
	Message       string          `json:"message"`
}
