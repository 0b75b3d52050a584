package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionDirection string

const (
	TransactionDebit  TransactionDirection = "DEBIT"
	TransactionCredit TransactionDirection = "CREDIT"
)

// Transaction is one leg of a posted transfer. An exchange transfer always
// produces two legs that share a Reference.
type Transaction struct {
	ID            int64
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
	FromCurrency  CurrencyType
	ToCurrency    CurrencyType
	AppliedRate   decimal.Decimal
	Direction     TransactionDirection
	Reference     string
	Timestamp     time.Time
}

// ExchangePosting describes the atomic balance movement of one exchange
// transfer: debit DebitAmount from the source account, credit CreditAmount
// to the destination account, and record both legs under Reference. The
// repository applies the whole posting in a single unit of work or not at
// all.
type ExchangePosting struct {
	FromAccountID int64
	ToAccountID   int64
	DebitAmount   decimal.Decimal
	CreditAmount  decimal.Decimal
	FromCurrency  CurrencyType
	ToCurrency    CurrencyType
	AppliedRate   decimal.Decimal
	Reference     string
	Timestamp     time.Time
}
