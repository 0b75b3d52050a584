package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountPatch carries the updatable account fields. A nil field is left
// unchanged; this is a partial update, not an overwrite.
type AccountPatch struct {
	DailyLimit   *decimal.Decimal
	MonthlyLimit *decimal.Decimal
	Status       *AccountStatus
}

// Apply writes the present fields onto the account; everything else,
// the account number included, stays as persisted.
func (p AccountPatch) Apply(account *Account) {
	if p.DailyLimit != nil {
		account.DailyLimit = *p.DailyLimit
	}
	if p.MonthlyLimit != nil {
		account.MonthlyLimit = *p.MonthlyLimit
	}
	if p.Status != nil {
		account.Status = *p.Status
	}
}

type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id int64) (Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (Account, error)
	List(ctx context.Context) ([]Account, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Account, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
}
