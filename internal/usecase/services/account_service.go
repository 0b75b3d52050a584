package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/commons"
	"github.com/banka1/banking-service/internal/domain"
	"github.com/banka1/banking-service/internal/logger"
	"github.com/banka1/banking-service/internal/metrics"
	"github.com/banka1/banking-service/internal/notification"
	"github.com/banka1/banking-service/internal/usecase/service_interfaces"
)

var _ service_interfaces.AccountService = (*AccountService)(nil)

// Every new account starts with this amount held as a reservation, in the
// account's own currency.
var initialReservedBalance = decimal.NewFromInt(100)

const accountExpirySeconds = 4 * 365 * 24 * 60 * 60

type AccountService struct {
	accountRepo    domain.AccountRepository
	txRepo         domain.TransactionRepository
	customers      domain.CustomerDirectory
	cards          domain.CardIssuer
	notifier       notification.Notifier
	collector      *metrics.Collector
	numberGen      *AccountNumberGenerator
	maxNumberTries int
	now            func() time.Time
}

func NewAccountService(
	accountRepo domain.AccountRepository,
	txRepo domain.TransactionRepository,
	customers domain.CustomerDirectory,
	cards domain.CardIssuer,
	notifier notification.Notifier,
	collector *metrics.Collector,
	numberGen *AccountNumberGenerator,
	maxNumberTries int,
	now func() time.Time,
) *AccountService {
	if maxNumberTries < 1 {
		maxNumberTries = 1
	}
	if now == nil {
		now = time.Now
	}
	return &AccountService{
		accountRepo:    accountRepo,
		txRepo:         txRepo,
		customers:      customers,
		cards:          cards,
		notifier:       notifier,
		collector:      collector,
		numberGen:      numberGen,
		maxNumberTries: maxNumberTries,
		now:            now,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest, employeeID int64) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload":    logger.SanitizePayload(req),
		"employeeId": employeeID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse](err.Error()), err
	}

	accountType := domain.AccountType(req.Type)
	subtype := domain.AccountSubtype(req.Subtype)
	currency := domain.CurrencyType(req.Currency)

	if !domain.ValidCurrency(currency) || !domain.ValidConfiguration(accountType, currency) {
		err := domain.ErrInvalidAccountConfiguration
		return commons.ErrorResponse[models.AccountResponse](err.Error()), err
	}

	if employeeID <= 0 {
		err := fmt.Errorf("%w: employee %d", domain.ErrMissingReference, employeeID)
		return commons.ErrorResponse[models.AccountResponse](domain.ErrMissingReference.Error()), err
	}

	owner, err := s.customers.GetCustomer(ctx, req.OwnerID)
	if err != nil {
		logger.Error("account service owner lookup failed", err, logger.Fields{
			"ownerId": req.OwnerID,
		})
		err = fmt.Errorf("%w: owner %d", domain.ErrMissingReference, req.OwnerID)
		return commons.ErrorResponse[models.AccountResponse](domain.ErrMissingReference.Error()), err
	}

	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}
	dailyLimit := decimal.Zero
	if req.DailyLimit != nil {
		dailyLimit = *req.DailyLimit
	}
	monthlyLimit := decimal.Zero
	if req.MonthlyLimit != nil {
		monthlyLimit = *req.MonthlyLimit
	}

	createdDate := s.now().Unix()

	account := domain.Account{
		OwnerID:               req.OwnerID,
		EmployeeID:            employeeID,
		Type:                  accountType,
		Subtype:               subtype,
		Currency:              currency,
		Balance:               balance,
		ReservedBalance:       initialReservedBalance,
		DailyLimit:            dailyLimit,
		MonthlyLimit:          monthlyLimit,
		DailySpent:            decimal.Zero,
		MonthlySpent:          decimal.Zero,
		MonthlyMaintenanceFee: decimal.Zero,
		CreatedDate:           createdDate,
		ExpirationDate:        createdDate + accountExpirySeconds,
		Status:                domain.AccountStatusActive,
	}

	created, err := s.persistWithFreshNumber(ctx, account)
	if err != nil {
		logger.Error("account service create account failed", err, logger.Fields{
			"ownerId": req.OwnerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account"), err
	}

	if req.CreateCard && s.cards != nil {
		cardErr := s.cards.IssueCard(ctx, domain.CreateCardRequest{
			AccountID: created.ID,
			Brand:     domain.CardBrandVisa,
			Kind:      domain.CardKindCredit,
		})
		if cardErr != nil {
			// Best effort. The account stands; issuance can be retried later.
			logger.Error("account service card issuance failed", cardErr, logger.Fields{
				"accountId": created.ID,
			})
		}
	}

	if s.notifier != nil {
		s.notifier.Notify(notification.NewEmail(
			"Account created",
			owner.Email,
			"Your account has been created",
			owner.FirstName,
			owner.LastName,
		))
	}

	if s.collector != nil {
		s.collector.AccountCreated()
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})

	return commons.SuccessResponse("account created successfully", mapAccountToResponse(created)), nil
}

// persistWithFreshNumber draws account numbers until one inserts cleanly.
// The generator can collide by construction, so both the pre-check and the
// store's unique constraint participate in the loop.
func (s *AccountService) persistWithFreshNumber(ctx context.Context, account domain.Account) (domain.Account, error) {
	for attempt := 0; attempt < s.maxNumberTries; attempt++ {
		number, err := s.numberGen.Generate(account.Type, account.Subtype)
		if err != nil {
			return domain.Account{}, fmt.Errorf("generate account number: %w", err)
		}

		exists, err := s.accountRepo.ExistsByAccountNumber(ctx, number)
		if err != nil {
			return domain.Account{}, fmt.Errorf("check account number: %w", err)
		}
		if exists {
			continue
		}

		account.AccountNumber = number
		created, err := s.accountRepo.Create(ctx, account)
		if errors.Is(err, domain.ErrDuplicateAccountNumber) {
			continue
		}
		if err != nil {
			return domain.Account{}, fmt.Errorf("persist account: %w", err)
		}
		return created, nil
	}

	return domain.Account{}, fmt.Errorf("exhausted %d account number attempts", s.maxNumberTries)
}

func (s *AccountService) UpdateAccount(ctx context.Context, id int64, req models.UpdateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service update account request", logger.Fields{
		"accountId": id,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse](err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to update account"), err
	}

	patch := domain.AccountPatch{
		DailyLimit:   req.DailyLimit,
		MonthlyLimit: req.MonthlyLimit,
	}
	if req.Status != nil {
		status := domain.AccountStatus(*req.Status)
		patch.Status = &status
	}
	patch.Apply(&account)

	updated, err := s.accountRepo.Update(ctx, account)
	if err != nil {
		logger.Error("account service update account failed", err, logger.Fields{
			"accountId": id,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to update account"), err
	}

	return commons.SuccessResponse("account updated successfully", mapAccountToResponse(updated)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to fetch account"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to fetch account"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts"), err
	}

	return commons.SuccessResponse("accounts fetched successfully", mapAccountsToResponse(accounts)), nil
}

func (s *AccountService) ListAccountsByOwner(ctx context.Context, ownerID int64) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts"), err
	}

	return commons.SuccessResponse("accounts fetched successfully", mapAccountsToResponse(accounts)), nil
}

func (s *AccountService) ListTransactions(ctx context.Context, accountID int64) (commons.Response[[]models.TransactionResponse], error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.TransactionResponse]("Account not found"), err
		}
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions"), err
	}

	transactions, err := s.txRepo.ListForAccount(ctx, accountID)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions"), err
	}

	resp := make([]models.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		resp = append(resp, mapTransactionToResponse(tx))
	}

	return commons.SuccessResponse("transactions fetched successfully", resp), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:                    account.ID,
		OwnerID:               account.OwnerID,
		EmployeeID:            account.EmployeeID,
		AccountNumber:         account.AccountNumber,
		Type:                  string(account.Type),
		Subtype:               string(account.Subtype),
		Currency:              string(account.Currency),
		Balance:               account.Balance,
		ReservedBalance:       account.ReservedBalance,
		AvailableBalance:      account.AvailableBalance(),
		DailyLimit:            account.DailyLimit,
		MonthlyLimit:          account.MonthlyLimit,
		DailySpent:            account.DailySpent,
		MonthlySpent:          account.MonthlySpent,
		MonthlyMaintenanceFee: account.MonthlyMaintenanceFee,
		CreatedDate:           account.CreatedDate,
		ExpirationDate:        account.ExpirationDate,
		Status:                string(account.Status),
	}
}

func mapAccountsToResponse(accounts []domain.Account) []models.AccountResponse {
	resp := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, mapAccountToResponse(account))
	}
	return resp
}

func mapTransactionToResponse(tx domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:            tx.ID,
		FromAccountID: tx.FromAccountID,
		ToAccountID:   tx.ToAccountID,
		Amount:        tx.Amount,
		FromCurrency:  string(tx.FromCurrency),
		ToCurrency:    string(tx.ToCurrency),
		AppliedRate:   tx.AppliedRate,
		Direction:     string(tx.Direction),
		Reference:     tx.Reference,
		Timestamp:     tx.Timestamp.UTC().Format(time.RFC3339),
	}
}
