package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/commons"
	"github.com/banka1/banking-service/internal/domain"
	"github.com/banka1/banking-service/internal/usecase/service_interfaces"
)

// ExchangeController exposes the same-owner currency exchange transfer. The
// flow mirrors the service contract: a cheap validation predicate first,
// then the atomic execute.
type ExchangeController struct {
	service service_interfaces.ExchangeService
}

func NewExchangeController(service service_interfaces.ExchangeService) *ExchangeController {
	return &ExchangeController{service: service}
}

func (c *ExchangeController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /exchange-transfer", c.transfer)
}

func (c *ExchangeController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ExchangeTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.ExchangeTransferResponse]("invalid request body")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, start)
		return
	}
	logRequest(r, req)

	if !c.service.Validate(r.Context(), req) {
		response := commons.ErrorResponse[models.ExchangeTransferResponse]("invalid data or insufficient funds")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, start)
		return
	}

	response, err := c.service.Execute(r.Context(), req)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrValidationFailed),
			errors.Is(err, domain.ErrRateUnavailable),
			errors.Is(err, domain.ErrUnsupportedCurrencyPair):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrPersistenceConflict):
			status = http.StatusConflict
		}
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}
