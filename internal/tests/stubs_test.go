package services_test

import (
	"context"
	"sync"

	"github.com/banka1/banking-service/internal/domain"
	"github.com/banka1/banking-service/internal/notification"
)

type accountRepoStub struct {
	createFn       func(ctx context.Context, account domain.Account) (domain.Account, error)
	updateFn       func(ctx context.Context, account domain.Account) (domain.Account, error)
	getByIDFn      func(ctx context.Context, id int64) (domain.Account, error)
	getByNumberFn  func(ctx context.Context, accountNumber string) (domain.Account, error)
	listFn         func(ctx context.Context) ([]domain.Account, error)
	listByOwnerFn  func(ctx context.Context, ownerID int64) ([]domain.Account, error)
	existsNumberFn func(ctx context.Context, accountNumber string) (bool, error)
}

func (s accountRepoStub) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	if s.createFn != nil {
		return s.createFn(ctx, account)
	}
	return account, nil
}

func (s accountRepoStub) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, account)
	}
	return account, nil
}

func (s accountRepoStub) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (s accountRepoStub) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	if s.getByNumberFn != nil {
		return s.getByNumberFn(ctx, accountNumber)
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (s accountRepoStub) List(ctx context.Context) ([]domain.Account, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s accountRepoStub) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Account, error) {
	if s.listByOwnerFn != nil {
		return s.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (s accountRepoStub) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	if s.existsNumberFn != nil {
		return s.existsNumberFn(ctx, accountNumber)
	}
	return false, nil
}

type txRepoStub struct {
	listForAccountFn  func(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	executeExchangeFn func(ctx context.Context, posting domain.ExchangePosting) ([]domain.Transaction, error)
}

func (s txRepoStub) ListForAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	if s.listForAccountFn != nil {
		return s.listForAccountFn(ctx, accountID)
	}
	return nil, nil
}

func (s txRepoStub) ExecuteExchange(ctx context.Context, posting domain.ExchangePosting) ([]domain.Transaction, error) {
	if s.executeExchangeFn != nil {
		return s.executeExchangeFn(ctx, posting)
	}
	return nil, nil
}

type rateRepoStub struct {
	getByPeriodFn func(ctx context.Context, year, month int) (domain.RateChange, error)
	upsertFn      func(ctx context.Context, change domain.RateChange) (domain.RateChange, error)
}

func (s rateRepoStub) GetByPeriod(ctx context.Context, year, month int) (domain.RateChange, error) {
	if s.getByPeriodFn != nil {
		return s.getByPeriodFn(ctx, year, month)
	}
	return domain.RateChange{}, domain.ErrRecordNotFound
}

func (s rateRepoStub) Upsert(ctx context.Context, change domain.RateChange) (domain.RateChange, error) {
	if s.upsertFn != nil {
		return s.upsertFn(ctx, change)
	}
	return change, nil
}

type directoryStub struct {
	getCustomerFn func(ctx context.Context, id int64) (domain.Customer, error)
}

func (s directoryStub) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	if s.getCustomerFn != nil {
		return s.getCustomerFn(ctx, id)
	}
	return domain.Customer{ID: id, Email: "owner@example.com", FirstName: "Pera", LastName: "Peric"}, nil
}

type cardIssuerStub struct {
	issueCardFn func(ctx context.Context, req domain.CreateCardRequest) error
}

func (s cardIssuerStub) IssueCard(ctx context.Context, req domain.CreateCardRequest) error {
	if s.issueCardFn != nil {
		return s.issueCardFn(ctx, req)
	}
	return nil
}

// notifierSpy records every message handed over for delivery.
type notifierSpy struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (n *notifierSpy) Notify(msg notification.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *notifierSpy) sent() []notification.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notification.Message, len(n.messages))
	copy(out, n.messages)
	return out
}

func fixedDigitSource(digits []int) func() (int, error) {
	i := 0
	return func() (int, error) {
		d := digits[i%len(digits)]
		i++
		return d, nil
	}
}
