package service_interfaces

import (
	"context"

	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest, employeeID int64) (commons.Response[models.AccountResponse], error)
	UpdateAccount(ctx context.Context, id int64, req models.UpdateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error)
	ListAccountsByOwner(ctx context.Context, ownerID int64) (commons.Response[[]models.AccountResponse], error)
	ListTransactions(ctx context.Context, accountID int64) (commons.Response[[]models.TransactionResponse], error)
}
