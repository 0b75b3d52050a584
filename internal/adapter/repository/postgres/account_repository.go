package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/banka1/banking-service/internal/domain"
)

var _ domain.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, owner_id, employee_id, account_number, type, subtype, currency,
	balance, reserved_balance, daily_limit, monthly_limit, daily_spent, monthly_spent,
	monthly_maintenance_fee, created_date, expiration_date, status`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	owner_id, employee_id, account_number, type, subtype, currency,
	balance, reserved_balance, daily_limit, monthly_limit, daily_spent, monthly_spent,
	monthly_maintenance_fee, created_date, expiration_date, status
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
)
RETURNING id`

	err := r.db.QueryRowContext(
		ctx,
		query,
		account.OwnerID,
		account.EmployeeID,
		account.AccountNumber,
		account.Type,
		account.Subtype,
		account.Currency,
		account.Balance,
		account.ReservedBalance,
		account.DailyLimit,
		account.MonthlyLimit,
		account.DailySpent,
		account.MonthlySpent,
		account.MonthlyMaintenanceFee,
		account.CreatedDate,
		account.ExpirationDate,
		account.Status,
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, fmt.Errorf("%w: %s", domain.ErrDuplicateAccountNumber, account.AccountNumber)
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
UPDATE accounts
SET daily_limit = $2,
    monthly_limit = $3,
    status = $4
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, account.ID, account.DailyLimit, account.MonthlyLimit, account.Status)
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account %d: %w", account.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account %d: %w", account.ID, err)
	}
	if rows == 0 {
		return domain.Account{}, fmt.Errorf("%w: account %d", domain.ErrRecordNotFound, account.ID)
	}

	return r.GetByID(ctx, account.ID)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), fmt.Sprintf("account %d", id))
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, accountNumber), "account number "+accountNumber)
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`
	return r.queryAccounts(ctx, query)
}

func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1 ORDER BY id`
	return r.queryAccounts(ctx, query, ownerID)
}

func (r *AccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account number: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AccountRepository) scanOne(row rowScanner, what string) (domain.Account, error) {
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, what)
		}
		return domain.Account{}, err
	}
	return account, nil
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.EmployeeID,
		&account.AccountNumber,
		&account.Type,
		&account.Subtype,
		&account.Currency,
		&account.Balance,
		&account.ReservedBalance,
		&account.DailyLimit,
		&account.MonthlyLimit,
		&account.DailySpent,
		&account.MonthlySpent,
		&account.MonthlyMaintenanceFee,
		&account.CreatedDate,
		&account.ExpirationDate,
		&account.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return account, nil
}
