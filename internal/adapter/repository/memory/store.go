// Package memory is the in-process store used by tests and by deployments
// without a configured database. One mutex guards accounts, transactions
// and rate tables together, which is what makes the exchange posting a
// single atomic unit here.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/banka1/banking-service/internal/domain"
)

var (
	_ domain.AccountRepository     = (*Store)(nil)
	_ domain.TransactionRepository = (*Store)(nil)
	_ domain.RateChangeRepository  = (*Store)(nil)
)

type Store struct {
	mu sync.RWMutex

	accounts     map[int64]domain.Account
	numberIndex  map[string]int64
	transactions []domain.Transaction
	rates        map[string]domain.RateChange

	nextAccountID     int64
	nextTransactionID int64
	nextRateID        int64
}

func NewStore() *Store {
	return &Store{
		accounts:    make(map[int64]domain.Account),
		numberIndex: make(map[string]int64),
		rates:       make(map[string]domain.RateChange),
	}
}

func (s *Store) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.numberIndex[account.AccountNumber]; exists {
		return domain.Account{}, fmt.Errorf("%w: %s", domain.ErrDuplicateAccountNumber, account.AccountNumber)
	}

	s.nextAccountID++
	account.ID = s.nextAccountID
	s.accounts[account.ID] = account
	s.numberIndex[account.AccountNumber] = account.ID

	return account, nil
}

func (s *Store) Update(_ context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.accounts[account.ID]
	if !exists {
		return domain.Account{}, fmt.Errorf("%w: account %d", domain.ErrRecordNotFound, account.ID)
	}

	// The account number is immutable after creation.
	account.AccountNumber = current.AccountNumber
	s.accounts[account.ID] = account

	return account, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[id]
	if !exists {
		return domain.Account{}, fmt.Errorf("%w: account %d", domain.ErrRecordNotFound, id)
	}
	return account, nil
}

func (s *Store) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.numberIndex[accountNumber]
	if !exists {
		return domain.Account{}, fmt.Errorf("%w: account number %s", domain.ErrRecordNotFound, accountNumber)
	}
	return s.accounts[id], nil
}

func (s *Store) List(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Account, 0, len(s.accounts))
	for id := int64(1); id <= s.nextAccountID; id++ {
		if account, exists := s.accounts[id]; exists {
			out = append(out, account)
		}
	}
	return out, nil
}

func (s *Store) ListByOwner(_ context.Context, ownerID int64) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Account
	for id := int64(1); id <= s.nextAccountID; id++ {
		if account, exists := s.accounts[id]; exists && account.OwnerID == ownerID {
			out = append(out, account)
		}
	}
	return out, nil
}

func (s *Store) ExistsByAccountNumber(_ context.Context, accountNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.numberIndex[accountNumber]
	return exists, nil
}

func (s *Store) ListForAccount(_ context.Context, accountID int64) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Transaction
	for _, tx := range s.transactions {
		if tx.FromAccountID == accountID || tx.ToAccountID == accountID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ExecuteExchange re-checks funds and limits and applies the whole posting
// under the store lock, so two concurrent transfers can never both pass
// against the same stale balance.
func (s *Store) ExecuteExchange(_ context.Context, posting domain.ExchangePosting) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, exists := s.accounts[posting.FromAccountID]
	if !exists {
		return nil, fmt.Errorf("%w: account %d", domain.ErrRecordNotFound, posting.FromAccountID)
	}
	to, exists := s.accounts[posting.ToAccountID]
	if !exists {
		return nil, fmt.Errorf("%w: account %d", domain.ErrRecordNotFound, posting.ToAccountID)
	}

	if from.Status != domain.AccountStatusActive || to.Status != domain.AccountStatusActive {
		return nil, fmt.Errorf("%w: account not active", domain.ErrInsufficientBalance)
	}
	if from.AvailableBalance().LessThan(posting.DebitAmount) {
		return nil, fmt.Errorf("%w: available %s, requested %s",
			domain.ErrInsufficientBalance, from.AvailableBalance(), posting.DebitAmount)
	}

	newDailySpent := from.DailySpent.Add(posting.DebitAmount)
	newMonthlySpent := from.MonthlySpent.Add(posting.DebitAmount)
	if from.DailyLimit.IsPositive() && newDailySpent.GreaterThan(from.DailyLimit) {
		return nil, fmt.Errorf("%w: daily limit exceeded", domain.ErrInsufficientBalance)
	}
	if from.MonthlyLimit.IsPositive() && newMonthlySpent.GreaterThan(from.MonthlyLimit) {
		return nil, fmt.Errorf("%w: monthly limit exceeded", domain.ErrInsufficientBalance)
	}

	from.Balance = from.Balance.Sub(posting.DebitAmount)
	from.DailySpent = newDailySpent
	from.MonthlySpent = newMonthlySpent
	to.Balance = to.Balance.Add(posting.CreditAmount)

	s.accounts[from.ID] = from
	s.accounts[to.ID] = to

	debit := domain.Transaction{
		FromAccountID: posting.FromAccountID,
		ToAccountID:   posting.ToAccountID,
		Amount:        posting.DebitAmount,
		FromCurrency:  posting.FromCurrency,
		ToCurrency:    posting.ToCurrency,
		AppliedRate:   posting.AppliedRate,
		Direction:     domain.TransactionDebit,
		Reference:     posting.Reference,
		Timestamp:     posting.Timestamp,
	}
	credit := domain.Transaction{
		FromAccountID: posting.FromAccountID,
		ToAccountID:   posting.ToAccountID,
		Amount:        posting.CreditAmount,
		FromCurrency:  posting.FromCurrency,
		ToCurrency:    posting.ToCurrency,
		AppliedRate:   posting.AppliedRate,
		Direction:     domain.TransactionCredit,
		Reference:     posting.Reference,
		Timestamp:     posting.Timestamp,
	}

	s.nextTransactionID++
	debit.ID = s.nextTransactionID
	s.nextTransactionID++
	credit.ID = s.nextTransactionID

	s.transactions = append(s.transactions, debit, credit)

	return []domain.Transaction{debit, credit}, nil
}

func (s *Store) GetByPeriod(_ context.Context, year, month int) (domain.RateChange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	change, exists := s.rates[periodKey(year, month)]
	if !exists {
		return domain.RateChange{}, fmt.Errorf("%w: period %04d-%02d", domain.ErrRecordNotFound, year, month)
	}
	return change, nil
}

func (s *Store) Upsert(_ context.Context, change domain.RateChange) (domain.RateChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := periodKey(change.Year, change.Month)
	if existing, exists := s.rates[key]; exists {
		change.ID = existing.ID
	} else {
		s.nextRateID++
		change.ID = s.nextRateID
	}
	s.rates[key] = change

	return change, nil
}

func periodKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
