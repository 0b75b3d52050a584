package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/banka1/banking-service/internal/domain"
	"github.com/banka1/banking-service/internal/logger"
)

var _ domain.TransactionRepository = (*TransactionRepository)(nil)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, from_account_id, to_account_id, amount, from_currency,
	to_currency, applied_rate, direction, reference, created_at`

func (r *TransactionRepository) ListForAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
FROM transactions
WHERE from_account_id = $1 OR to_account_id = $1
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("query transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.FromAccountID,
			&tx.ToAccountID,
			&tx.Amount,
			&tx.FromCurrency,
			&tx.ToCurrency,
			&tx.AppliedRate,
			&tx.Direction,
			&tx.Reference,
			&tx.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return out, nil
}

// ExecuteExchange posts the whole exchange in one database transaction. The
// debit statement re-checks status, available balance and spending limits,
// so a transfer validated against a stale balance dies here instead of
// overdrawing the account.
func (r *TransactionRepository) ExecuteExchange(ctx context.Context, posting domain.ExchangePosting) ([]domain.Transaction, error) {
	logger.Info("transaction repository execute exchange", logger.Fields{
		"reference":     posting.Reference,
		"fromAccountId": posting.FromAccountID,
		"toAccountId":   posting.ToAccountID,
		"debitAmount":   posting.DebitAmount,
		"creditAmount":  posting.CreditAmount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin exchange transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Lock both rows in ascending id order before touching balances. Two
	// opposite-direction postings then queue on the same first lock instead
	// of deadlocking each other.
	const lockQuery = `SELECT id FROM accounts WHERE id IN ($1, $2) ORDER BY id FOR UPDATE`

	locked := 0
	rows, err := tx.QueryContext(ctx, lockQuery, posting.FromAccountID, posting.ToAccountID)
	if err != nil {
		err = wrapPostingError("lock accounts", err)
		return nil, err
	}
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			err = fmt.Errorf("lock accounts: %w", err)
			return nil, err
		}
		locked++
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		err = wrapPostingError("lock accounts", err)
		return nil, err
	}
	if locked != 2 {
		err = fmt.Errorf("%w: accounts %d, %d", domain.ErrRecordNotFound, posting.FromAccountID, posting.ToAccountID)
		return nil, err
	}

	const debitQuery = `
UPDATE accounts
SET balance = balance - $2::numeric,
    daily_spent = daily_spent + $2::numeric,
    monthly_spent = monthly_spent + $2::numeric
WHERE id = $1
  AND status = 'ACTIVE'
  AND balance - reserved_balance >= $2::numeric
  AND (daily_limit = 0 OR daily_spent + $2::numeric <= daily_limit)
  AND (monthly_limit = 0 OR monthly_spent + $2::numeric <= monthly_limit)`

	result, err := tx.ExecContext(ctx, debitQuery, posting.FromAccountID, posting.DebitAmount)
	if err != nil {
		err = wrapPostingError(fmt.Sprintf("debit account %d", posting.FromAccountID), err)
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("debit account %d: %w", posting.FromAccountID, err)
	}
	if affected == 0 {
		err = fmt.Errorf("%w: account %d", domain.ErrInsufficientBalance, posting.FromAccountID)
		return nil, err
	}

	const creditQuery = `
UPDATE accounts
SET balance = balance + $2::numeric
WHERE id = $1
  AND status = 'ACTIVE'`

	result, err = tx.ExecContext(ctx, creditQuery, posting.ToAccountID, posting.CreditAmount)
	if err != nil {
		err = wrapPostingError(fmt.Sprintf("credit account %d", posting.ToAccountID), err)
		return nil, err
	}
	affected, err = result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("credit account %d: %w", posting.ToAccountID, err)
	}
	if affected == 0 {
		err = fmt.Errorf("%w: credit account %d not active", domain.ErrPersistenceConflict, posting.ToAccountID)
		return nil, err
	}

	const insertQuery = `
INSERT INTO transactions (
	from_account_id, to_account_id, amount, from_currency, to_currency,
	applied_rate, direction, reference, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

	legs := make([]domain.Transaction, 0, 2)
	for _, direction := range []domain.TransactionDirection{domain.TransactionDebit, domain.TransactionCredit} {
		record := domain.Transaction{
			FromAccountID: posting.FromAccountID,
			ToAccountID:   posting.ToAccountID,
			FromCurrency:  posting.FromCurrency,
			ToCurrency:    posting.ToCurrency,
			AppliedRate:   posting.AppliedRate,
			Direction:     direction,
			Reference:     posting.Reference,
			Timestamp:     posting.Timestamp,
		}
		if direction == domain.TransactionDebit {
			record.Amount = posting.DebitAmount
		} else {
			record.Amount = posting.CreditAmount
		}

		if err = tx.QueryRowContext(
			ctx,
			insertQuery,
			record.FromAccountID,
			record.ToAccountID,
			record.Amount,
			record.FromCurrency,
			record.ToCurrency,
			record.AppliedRate,
			record.Direction,
			record.Reference,
			record.Timestamp,
		).Scan(&record.ID); err != nil {
			err = wrapPostingError(fmt.Sprintf("insert %s leg", record.Direction), err)
			return nil, err
		}

		legs = append(legs, record)
	}

	if err = tx.Commit(); err != nil {
		err = wrapPostingError("commit exchange transaction", err)
		return nil, err
	}

	logger.Info("transaction repository execute exchange success", logger.Fields{
		"reference": posting.Reference,
	})

	return legs, nil
}
