package models

import (
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	OwnerID      int64            `json:"ownerId" validate:"required,gt=0"`
	Type         string           `json:"type" validate:"required,oneof=CURRENT FOREIGN_CURRENCY"`
	Subtype      string           `json:"subtype" validate:"required,oneof=PERSONAL BUSINESS SAVINGS PENSION YOUTH STUDENT STANDARD"`
	Currency     string           `json:"currency" validate:"required,len=3,uppercase"`
	Balance      *decimal.Decimal `json:"balance,omitempty"`
	DailyLimit   *decimal.Decimal `json:"dailyLimit,omitempty"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit,omitempty"`
	CreateCard   bool             `json:"createCard"`
}

func (r CreateAccountRequest) Validate() error {
	errs := checkStruct(r)

	if r.Balance != nil && r.Balance.IsNegative() {
		errs = append(errs, "balance cannot be negative")
	}
	if r.DailyLimit != nil && r.DailyLimit.IsNegative() {
		errs = append(errs, "dailyLimit cannot be negative")
	}
	if r.MonthlyLimit != nil && r.MonthlyLimit.IsNegative() {
		errs = append(errs, "monthlyLimit cannot be negative")
	}

	return joinErrors(errs)
}

type UpdateAccountRequest struct {
	DailyLimit   *decimal.Decimal `json:"dailyLimit,omitempty"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit,omitempty"`
	Status       *string          `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE BLOCKED CLOSED"`
}

func (r UpdateAccountRequest) Validate() error {
	errs := checkStruct(r)

	if r.DailyLimit == nil && r.MonthlyLimit == nil && r.Status == nil {
		errs = append(errs, "at least one field must be provided")
	}
	if r.DailyLimit != nil && r.DailyLimit.IsNegative() {
		errs = append(errs, "dailyLimit cannot be negative")
	}
	if r.MonthlyLimit != nil && r.MonthlyLimit.IsNegative() {
		errs = append(errs, "monthlyLimit cannot be negative")
	}

	return joinErrors(errs)
}

type AccountResponse struct {
	ID                    int64           `json:"id"`
	OwnerID               int64           `json:"ownerId"`
	EmployeeID            int64           `json:"employeeId"`
	AccountNumber         string          `json:"accountNumber"`
	Type                  string          `json:"type"`
	Subtype               string          `json:"subtype"`
	Currency              string          `json:"currency"`
	Balance               decimal.Decimal `json:"balance"`
	ReservedBalance       decimal.Decimal `json:"reservedBalance"`
	AvailableBalance      decimal.Decimal `json:"availableBalance"`
	DailyLimit            decimal.Decimal `json:"dailyLimit"`
	MonthlyLimit          decimal.Decimal `json:"monthlyLimit"`
	DailySpent            decimal.Decimal `json:"dailySpent"`
	MonthlySpent          decimal.Decimal `json:"monthlySpent"`
	MonthlyMaintenanceFee decimal.Decimal `json:"monthlyMaintenanceFee"`
	CreatedDate           int64           `json:"createdDate"`
	ExpirationDate        int64           `json:"expirationDate"`
	Status                string          `json:"status"`
}

type TransactionResponse struct {
	ID            int64           `json:"id"`
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	AppliedRate   decimal.Decimal `json:"appliedRate"`
	Direction     string          `json:"direction"`
	Reference     string          `json:"reference"`
	Timestamp     string          `json:"timestamp"`
}
