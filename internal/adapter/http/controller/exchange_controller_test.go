package controller_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/banka1/banking-service/internal/adapter/http/controller"
	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/adapter/http/router"
	"github.com/banka1/banking-service/internal/commons"
	"github.com/banka1/banking-service/internal/domain"
)

type exchangeServiceStub struct {
	validateFn func(ctx context.Context, req models.ExchangeTransferRequest) bool
	executeFn  func(ctx context.Context, req models.ExchangeTransferRequest) (commons.Response[models.ExchangeTransferResponse], error)
}

func (s exchangeServiceStub) Validate(ctx context.Context, req models.ExchangeTransferRequest) bool {
	if s.validateFn != nil {
		return s.validateFn(ctx, req)
	}
	return true
}

func (s exchangeServiceStub) Execute(ctx context.Context, req models.ExchangeTransferRequest) (commons.Response[models.ExchangeTransferResponse], error) {
	if s.executeFn != nil {
		return s.executeFn(ctx, req)
	}
	return commons.SuccessResponse("ok", models.ExchangeTransferResponse{}), nil
}

const transferBody = `{
	"fromAccountId": 1,
	"toAccountId": 2,
	"amount": "500",
	"fromCurrency": "RSD",
	"toCurrency": "EUR"
}`

func postTransfer(t *testing.T, svc exchangeServiceStub, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := router.New(nil, controller.NewExchangeController(svc))

	req := httptest.NewRequest(http.MethodPost, "/exchange-transfer", strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestExchangeControllerTransferSuccess(t *testing.T) {
	svc := exchangeServiceStub{
		executeFn: func(_ context.Context, req models.ExchangeTransferRequest) (commons.Response[models.ExchangeTransferResponse], error) {
			return commons.SuccessResponse("Internal transfer with conversion executed successfully", models.ExchangeTransferResponse{
				Reference:    "ref-1",
				DebitAmount:  req.Amount,
				CreditAmount: decimal.RequireFromString("4.25"),
			}), nil
		},
	}

	rr := postTransfer(t, svc, transferBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var response commons.Response[models.ExchangeTransferResponse]
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !response.Success || response.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if response.Data.Reference != "ref-1" {
		t.Fatalf("expected reference ref-1, got %q", response.Data.Reference)
	}
}

func TestExchangeControllerTransferFailsValidation(t *testing.T) {
	executed := false
	svc := exchangeServiceStub{
		validateFn: func(context.Context, models.ExchangeTransferRequest) bool {
			return false
		},
		executeFn: func(context.Context, models.ExchangeTransferRequest) (commons.Response[models.ExchangeTransferResponse], error) {
			executed = true
			return commons.Response[models.ExchangeTransferResponse]{}, nil
		},
	}

	rr := postTransfer(t, svc, transferBody)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if executed {
		t.Fatal("expected execute to be skipped when validation fails")
	}

	var response commons.Response[models.ExchangeTransferResponse]
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Success {
		t.Fatal("expected error response")
	}
	if response.Error != "invalid data or insufficient funds" {
		t.Fatalf("unexpected error message %q", response.Error)
	}
}

func TestExchangeControllerTransferMalformedBody(t *testing.T) {
	rr := postTransfer(t, exchangeServiceStub{}, "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestExchangeControllerTransferExecuteErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: stale balance", domain.ErrValidationFailed), http.StatusBadRequest},
		{fmt.Errorf("%w: 2026-03", domain.ErrRateUnavailable), http.StatusBadRequest},
		{fmt.Errorf("%w: CHF/EUR", domain.ErrUnsupportedCurrencyPair), http.StatusBadRequest},
		{fmt.Errorf("%w: credit row", domain.ErrPersistenceConflict), http.StatusConflict},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		svc := exchangeServiceStub{
			executeFn: func(context.Context, models.ExchangeTransferRequest) (commons.Response[models.ExchangeTransferResponse], error) {
				return commons.ErrorResponse[models.ExchangeTransferResponse]("failed"), tc.err
			},
		}
		rr := postTransfer(t, svc, transferBody)
		if rr.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, rr.Code)
		}
	}
}
