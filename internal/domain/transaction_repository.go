package domain

import "context"

type TransactionRepository interface {
	ListForAccount(ctx context.Context, accountID int64) ([]Transaction, error)

	// ExecuteExchange applies the posting atomically: conditional debit of
	// the source account (available balance and spending limits re-checked
	// under the same unit of work), credit of the destination account, spend
	// counter bump on the source, and both transaction legs. Returns the
	// created legs in debit, credit order. ErrInsufficientBalance when the
	// re-check fails, ErrPersistenceConflict when a concurrent writer won.
	ExecuteExchange(ctx context.Context, posting ExchangePosting) ([]Transaction, error)
}
