package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/domain"
	"github.com/banka1/banking-service/internal/usecase/services"
)

func decPtr(value int64) *decimal.Decimal {
	d := decimal.NewFromInt(value)
	return &d
}

func testNumberGenerator(t *testing.T) *services.AccountNumberGenerator {
	t.Helper()
	gen, err := services.NewAccountNumberGeneratorWithSource("1110001", fixedDigitSource([]int{4, 2, 7, 1, 9, 0, 3, 5, 8}))
	if err != nil {
		t.Fatalf("build number generator: %v", err)
	}
	return gen
}

func TestAccountServiceCreateAccountSuccess(t *testing.T) {
	createdAt := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	var stored domain.Account

	repo := accountRepoStub{
		createFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			account.ID = 42
			stored = account
			return account, nil
		},
	}
	spy := &notifierSpy{}

	svc := services.NewAccountService(
		repo, txRepoStub{}, directoryStub{}, cardIssuerStub{}, spy, nil,
		testNumberGenerator(t), 100,
		func() time.Time { return createdAt },
	)

	resp, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerID:  7,
		Type:     "FOREIGN_CURRENCY",
		Subtype:  "SAVINGS",
		Currency: "EUR",
		Balance:  decPtr(1000),
	}, 3)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}

	if len(stored.AccountNumber) != 18 {
		t.Fatalf("expected 18-digit account number, got %q", stored.AccountNumber)
	}
	if stored.AccountNumber[:7] != "1110001" {
		t.Fatalf("expected bank prefix 1110001, got %q", stored.AccountNumber[:7])
	}
	// FOREIGN_CURRENCY is type digit 2, SAVINGS is subtype digit 3.
	if stored.AccountNumber[16] != '2' || stored.AccountNumber[17] != '3' {
		t.Fatalf("expected trailing digits 23, got %q", stored.AccountNumber[16:])
	}

	if !stored.ReservedBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected reserved balance 100, got %s", stored.ReservedBalance)
	}
	if !stored.AvailableBalance().Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected available balance 900, got %s", stored.AvailableBalance())
	}
	if stored.Status != domain.AccountStatusActive {
		t.Fatalf("expected ACTIVE account, got %s", stored.Status)
	}
	if stored.CreatedDate != createdAt.Unix() {
		t.Fatalf("expected created date %d, got %d", createdAt.Unix(), stored.CreatedDate)
	}
	wantExpiry := createdAt.Unix() + 4*365*24*60*60
	if stored.ExpirationDate != wantExpiry {
		t.Fatalf("expected expiration %d, got %d", wantExpiry, stored.ExpirationDate)
	}
	if stored.EmployeeID != 3 {
		t.Fatalf("expected employee 3, got %d", stored.EmployeeID)
	}

	messages := spy.sent()
	if len(messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(messages))
	}
	if messages[0].Email != "owner@example.com" || messages[0].Type != "email" {
		t.Fatalf("unexpected notification %+v", messages[0])
	}
}

func TestAccountServiceCreateAccountRejectsCurrentInForeignCurrency(t *testing.T) {
	svc := services.NewAccountService(
		accountRepoStub{}, txRepoStub{}, directoryStub{}, nil, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerID:  7,
		Type:     "CURRENT",
		Subtype:  "PERSONAL",
		Currency: "EUR",
	}, 3)
	if !errors.Is(err, domain.ErrInvalidAccountConfiguration) {
		t.Fatalf("expected invalid configuration error, got %v", err)
	}
}

func TestAccountServiceCreateAccountRejectsForeignCurrencyInDinars(t *testing.T) {
	svc := services.NewAccountService(
		accountRepoStub{}, txRepoStub{}, directoryStub{}, nil, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerID:  7,
		Type:     "FOREIGN_CURRENCY",
		Subtype:  "PERSONAL",
		Currency: "RSD",
	}, 3)
	if !errors.Is(err, domain.ErrInvalidAccountConfiguration) {
		t.Fatalf("expected invalid configuration error, got %v", err)
	}
}

func TestAccountServiceCreateAccountUnknownOwner(t *testing.T) {
	directory := directoryStub{
		getCustomerFn: func(_ context.Context, id int64) (domain.Customer, error) {
			return domain.Customer{}, fmt.Errorf("%w: customer %d", domain.ErrRecordNotFound, id)
		},
	}
	svc := services.NewAccountService(
		accountRepoStub{}, txRepoStub{}, directory, nil, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerID:  999,
		Type:     "CURRENT",
		Subtype:  "PERSONAL",
		Currency: "RSD",
	}, 3)
	if !errors.Is(err, domain.ErrMissingReference) {
		t.Fatalf("expected missing reference error, got %v", err)
	}
}

func TestAccountServiceCreateAccountMissingEmployee(t *testing.T) {
	svc := services.NewAccountService(
		accountRepoStub{}, txRepoStub{}, directoryStub{}, nil, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerID:  7,
		Type:     "CURRENT",
		Subtype:  "PERSONAL",
		Currency: "RSD",
	}, 0)
	if !errors.Is(err, domain.ErrMissingReference) {
		t.Fatalf("expected missing reference error, got %v", err)
	}
}

func TestAccountServiceCreateAccountRetriesOnNumberCollision(t *testing.T) {
	attempts := 0
	repo := accountRepoStub{
		existsNumberFn: func(context.Context, string) (bool, error) {
			attempts++
			return attempts < 3, nil
		},
		createFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			account.ID = 1
			return account, nil
		},
	}

	svc := services.NewAccountService(
		repo, txRepoStub{}, directoryStub{}, nil, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	resp, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerID:  7,
		Type:     "CURRENT",
		Subtype:  "PERSONAL",
		Currency: "RSD",
	}, 3)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success after collision retries")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 existence checks, got %d", attempts)
	}
}

func TestAccountServiceCreateAccountExhaustsNumberAttempts(t *testing.T) {
	repo := accountRepoStub{
		existsNumberFn: func(context.Context, string) (bool, error) {
			return true, nil
		},
	}

	svc := services.NewAccountService(
		repo, txRepoStub{}, directoryStub{}, nil, nil, nil,
		testNumberGenerator(t), 5, nil,
	)

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerID:  7,
		Type:     "CURRENT",
		Subtype:  "PERSONAL",
		Currency: "RSD",
	}, 3)
	if err == nil {
		t.Fatal("expected error after exhausting account number attempts")
	}
}

func TestAccountServiceCreateAccountSurvivesCardFailure(t *testing.T) {
	issuer := cardIssuerStub{
		issueCardFn: func(context.Context, domain.CreateCardRequest) error {
			return errors.New("card service unavailable")
		},
	}
	repo := accountRepoStub{
		createFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			account.ID = 1
			return account, nil
		},
	}

	svc := services.NewAccountService(
		repo, txRepoStub{}, directoryStub{}, issuer, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	resp, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerID:    7,
		Type:       "CURRENT",
		Subtype:    "PERSONAL",
		Currency:   "RSD",
		CreateCard: true,
	}, 3)
	if err != nil {
		t.Fatalf("expected account creation to survive card failure, got %v", err)
	}
	if !resp.Success {
		t.Fatal("expected successful response despite card failure")
	}
}

func TestAccountServiceUpdateAccountPartialPatch(t *testing.T) {
	existing := domain.Account{
		ID:            1,
		OwnerID:       7,
		AccountNumber: "111000142719035811",
		Type:          domain.AccountTypeCurrent,
		Currency:      domain.CurrencyRSD,
		DailyLimit:    decimal.NewFromInt(500),
		MonthlyLimit:  decimal.NewFromInt(9000),
		Status:        domain.AccountStatusActive,
	}

	var updated domain.Account
	repo := accountRepoStub{
		getByIDFn: func(context.Context, int64) (domain.Account, error) {
			return existing, nil
		},
		updateFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			updated = account
			return account, nil
		},
	}

	svc := services.NewAccountService(
		repo, txRepoStub{}, directoryStub{}, nil, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	resp, err := svc.UpdateAccount(context.Background(), 1, models.UpdateAccountRequest{
		DailyLimit: decPtr(750),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success {
		t.Fatal("expected successful response")
	}

	if !updated.DailyLimit.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("expected daily limit 750, got %s", updated.DailyLimit)
	}
	if !updated.MonthlyLimit.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("expected untouched monthly limit 9000, got %s", updated.MonthlyLimit)
	}
	if updated.Status != domain.AccountStatusActive {
		t.Fatalf("expected untouched status ACTIVE, got %s", updated.Status)
	}
	if updated.AccountNumber != existing.AccountNumber {
		t.Fatalf("expected immutable account number, got %s", updated.AccountNumber)
	}
}

func TestAccountServiceUpdateAccountRejectsEmptyPatch(t *testing.T) {
	svc := services.NewAccountService(
		accountRepoStub{}, txRepoStub{}, directoryStub{}, nil, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	_, err := svc.UpdateAccount(context.Background(), 1, models.UpdateAccountRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty update request")
	}
}

func TestAccountServiceUpdateAccountNotFound(t *testing.T) {
	svc := services.NewAccountService(
		accountRepoStub{}, txRepoStub{}, directoryStub{}, nil, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	_, err := svc.UpdateAccount(context.Background(), 404, models.UpdateAccountRequest{
		DailyLimit: decPtr(100),
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestAccountServiceListTransactionsUnknownAccount(t *testing.T) {
	svc := services.NewAccountService(
		accountRepoStub{}, txRepoStub{}, directoryStub{}, nil, nil, nil,
		testNumberGenerator(t), 100, nil,
	)

	_, err := svc.ListTransactions(context.Background(), 404)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}
