package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/commons"
	"github.com/banka1/banking-service/internal/domain"
	"github.com/banka1/banking-service/internal/logger"
	"github.com/banka1/banking-service/internal/metrics"
	"github.com/banka1/banking-service/internal/notification"
	"github.com/banka1/banking-service/internal/usecase/service_interfaces"
)

var _ service_interfaces.ExchangeService = (*ExchangeService)(nil)

const invalidExchangeMessage = "invalid data or insufficient funds"

// ExchangeService moves funds between two accounts of the same owner,
// converting between their currencies with the rate table of the execution
// period. Validation is a cheap pre-check; the balance and limit rules are
// re-checked inside the repository's atomic posting, so a stale pre-check
// can never double-spend.
type ExchangeService struct {
	accountRepo domain.AccountRepository
	txRepo      domain.TransactionRepository
	rates       service_interfaces.RateService
	customers   domain.CustomerDirectory
	notifier    notification.Notifier
	collector   *metrics.Collector
	now         func() time.Time
}

func NewExchangeService(
	accountRepo domain.AccountRepository,
	txRepo domain.TransactionRepository,
	rates service_interfaces.RateService,
	customers domain.CustomerDirectory,
	notifier notification.Notifier,
	collector *metrics.Collector,
	now func() time.Time,
) *ExchangeService {
	if now == nil {
		now = time.Now
	}
	return &ExchangeService{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		rates:       rates,
		customers:   customers,
		notifier:    notifier,
		collector:   collector,
		now:         now,
	}
}

// Validate reports whether the transfer could currently execute. It does
// not say which rule failed; callers needing diagnostics re-run the checks
// themselves.
func (s *ExchangeService) Validate(ctx context.Context, req models.ExchangeTransferRequest) bool {
	if err := req.Validate(); err != nil {
		return false
	}

	from, err := s.accountRepo.GetByID(ctx, req.FromAccountID)
	if err != nil {
		return false
	}
	to, err := s.accountRepo.GetByID(ctx, req.ToAccountID)
	if err != nil {
		return false
	}

	if from.OwnerID != to.OwnerID {
		return false
	}
	if from.Status != domain.AccountStatusActive || to.Status != domain.AccountStatusActive {
		return false
	}
	if string(from.Currency) != req.FromCurrency || string(to.Currency) != req.ToCurrency {
		return false
	}
	if from.AvailableBalance().LessThan(req.Amount) {
		return false
	}
	if !withinLimits(from, req.Amount) {
		return false
	}

	return true
}

func (s *ExchangeService) Execute(ctx context.Context, req models.ExchangeTransferRequest) (commons.Response[models.ExchangeTransferResponse], error) {
	start := time.Now()

	logger.Info("exchange service execute request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		s.reject()
		return commons.ErrorResponse[models.ExchangeTransferResponse](invalidExchangeMessage), fmt.Errorf("%w: %s", domain.ErrValidationFailed, err)
	}

	from, err := s.accountRepo.GetByID(ctx, req.FromAccountID)
	if err != nil {
		s.reject()
		return commons.ErrorResponse[models.ExchangeTransferResponse](invalidExchangeMessage), exchangeLookupError(err)
	}
	to, err := s.accountRepo.GetByID(ctx, req.ToAccountID)
	if err != nil {
		s.reject()
		return commons.ErrorResponse[models.ExchangeTransferResponse](invalidExchangeMessage), exchangeLookupError(err)
	}

	if from.OwnerID != to.OwnerID ||
		string(from.Currency) != req.FromCurrency ||
		string(to.Currency) != req.ToCurrency {
		s.reject()
		err := fmt.Errorf("%w: account pair mismatch", domain.ErrValidationFailed)
		return commons.ErrorResponse[models.ExchangeTransferResponse](invalidExchangeMessage), err
	}

	executedAt := s.now()
	year, month := period(executedAt)

	table, err := s.rates.RateFor(ctx, year, month)
	if err != nil {
		s.reject()
		if errors.Is(err, domain.ErrRateUnavailable) {
			return commons.ErrorResponse[models.ExchangeTransferResponse]("Rate table not found for current period"), err
		}
		return commons.ErrorResponse[models.ExchangeTransferResponse]("failed to process transfer"), err
	}

	creditAmount, rate, err := s.rates.ConvertAmount(req.Amount, from.Currency, to.Currency, table)
	if err != nil {
		s.reject()
		return commons.ErrorResponse[models.ExchangeTransferResponse]("Rate not found for currency pair"), err
	}

	posting := domain.ExchangePosting{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		DebitAmount:   req.Amount,
		CreditAmount:  creditAmount,
		FromCurrency:  from.Currency,
		ToCurrency:    to.Currency,
		AppliedRate:   rate,
		Reference:     uuid.NewString(),
		Timestamp:     executedAt,
	}

	if _, err := s.txRepo.ExecuteExchange(ctx, posting); err != nil {
		s.reject()
		logger.Error("exchange service posting failed", err, logger.Fields{
			"reference":     posting.Reference,
			"fromAccountId": posting.FromAccountID,
			"toAccountId":   posting.ToAccountID,
		})
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return commons.ErrorResponse[models.ExchangeTransferResponse](invalidExchangeMessage), fmt.Errorf("%w: %s", domain.ErrValidationFailed, err)
		}
		if errors.Is(err, domain.ErrPersistenceConflict) {
			return commons.ErrorResponse[models.ExchangeTransferResponse]("failed to process transfer"), err
		}
		return commons.ErrorResponse[models.ExchangeTransferResponse]("failed to process transfer"), err
	}

	if s.collector != nil {
		s.collector.TransferExecuted(time.Since(start))
	}

	s.notifyOwner(ctx, from.OwnerID, posting)

	logger.Info("exchange service execute success", logger.Fields{
		"reference":    posting.Reference,
		"debitAmount":  posting.DebitAmount,
		"creditAmount": posting.CreditAmount,
		"appliedRate":  posting.AppliedRate,
	})

	return commons.SuccessResponse("Internal transfer with conversion executed successfully", models.ExchangeTransferResponse{
		Reference:     posting.Reference,
		FromAccountID: posting.FromAccountID,
		ToAccountID:   posting.ToAccountID,
		DebitAmount:   posting.DebitAmount,
		CreditAmount:  posting.CreditAmount,
		FromCurrency:  string(posting.FromCurrency),
		ToCurrency:    string(posting.ToCurrency),
		AppliedRate:   posting.AppliedRate,
		Message:       "Internal transfer with conversion executed successfully",
	}), nil
}

func (s *ExchangeService) reject() {
	if s.collector != nil {
		s.collector.TransferRejected()
	}
}

// notifyOwner is fire-and-forget; a directory or delivery failure never
// affects the committed transfer.
func (s *ExchangeService) notifyOwner(ctx context.Context, ownerID int64, posting domain.ExchangePosting) {
	if s.notifier == nil || s.customers == nil {
		return
	}

	owner, err := s.customers.GetCustomer(ctx, ownerID)
	if err != nil {
		logger.Error("exchange service owner lookup for notification failed", err, logger.Fields{
			"ownerId":   ownerID,
			"reference": posting.Reference,
		})
		return
	}

	body := fmt.Sprintf("Exchanged %s %s to %s %s",
		posting.DebitAmount, posting.FromCurrency, posting.CreditAmount, posting.ToCurrency)

	s.notifier.Notify(notification.NewEmail(
		"Exchange transfer executed",
		owner.Email,
		body,
		owner.FirstName,
		owner.LastName,
	))
}

func exchangeLookupError(err error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrValidationFailed, err)
	}
	return err
}

// withinLimits checks the daily and monthly outflow caps; a zero limit
// means uncapped.
func withinLimits(account domain.Account, amount decimal.Decimal) bool {
	if account.DailyLimit.IsPositive() && account.DailySpent.Add(amount).GreaterThan(account.DailyLimit) {
		return false
	}
	if account.MonthlyLimit.IsPositive() && account.MonthlySpent.Add(amount).GreaterThan(account.MonthlyLimit) {
		return false
	}
	return true
}
