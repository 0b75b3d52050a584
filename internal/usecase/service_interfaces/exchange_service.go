package service_interfaces

import (
	"context"

	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/commons"
)

type ExchangeService interface {
	// Validate is the non-throwing pre-check; it reports whether the request
	// could currently be executed without saying which rule failed.
	Validate(ctx context.Context, req models.ExchangeTransferRequest) bool
	// Execute converts and moves the funds in one atomic unit of work.
	Execute(ctx context.Context, req models.ExchangeTransferRequest) (commons.Response[models.ExchangeTransferResponse], error)
}
