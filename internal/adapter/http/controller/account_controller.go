package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/banka1/banking-service/internal/adapter/http/models"
	"github.com/banka1/banking-service/internal/commons"
	"github.com/banka1/banking-service/internal/domain"
	"github.com/banka1/banking-service/internal/logger"
	"github.com/banka1/banking-service/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /accounts", c.create)
	mux.HandleFunc("PUT /accounts/{id}", c.update)
	mux.HandleFunc("GET /accounts", c.list)
	mux.HandleFunc("GET /accounts/{id}", c.get)
	mux.HandleFunc("GET /accounts/{id}/transactions", c.transactions)
	mux.HandleFunc("GET /accounts/number/{accountNumber}", c.getByNumber)
	mux.HandleFunc("GET /accounts/owner/{ownerId}", c.listByOwner)
}

func (c *AccountController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	employeeID, err := strconv.ParseInt(r.Header.Get("X-Employee-Id"), 10, 64)
	if err != nil {
		response := commons.ErrorResponse[models.AccountResponse]("X-Employee-Id header is required")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, start)
		return
	}

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateAccount(r.Context(), req, employeeID)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidAccountConfiguration),
			errors.Is(err, domain.ErrMissingReference):
			status = http.StatusBadRequest
		default:
			if response.Error != "failed to create account" {
				status = http.StatusBadRequest
			}
		}
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, start)
}

func (c *AccountController) update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id", start)
	if !ok {
		return
	}

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateAccount(r.Context(), id, req)
	if err != nil {
		logError(r, err, logger.Fields{"accountId": id})
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrRecordNotFound) {
			status = http.StatusNotFound
		} else if response.Error != "failed to update account" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}

func (c *AccountController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id", start)
	if !ok {
		return
	}

	response, err := c.service.GetAccount(r.Context(), id)
	writeLookupResult(w, r, response, err, start)
}

func (c *AccountController) getByNumber(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response, err := c.service.GetAccountByNumber(r.Context(), r.PathValue("accountNumber"))
	writeLookupResult(w, r, response, err, start)
}

func (c *AccountController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response, err := c.service.ListAccounts(r.Context())
	writeLookupResult(w, r, response, err, start)
}

func (c *AccountController) listByOwner(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ownerID, ok := pathID(w, r, "ownerId", start)
	if !ok {
		return
	}

	response, err := c.service.ListAccountsByOwner(r.Context(), ownerID)
	writeLookupResult(w, r, response, err, start)
}

func (c *AccountController) transactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id", start)
	if !ok {
		return
	}

	response, err := c.service.ListTransactions(r.Context(), id)
	writeLookupResult(w, r, response, err, start)
}

func pathID(w http.ResponseWriter, r *http.Request, name string, start time.Time) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		response := commons.ErrorResponse[struct{}](name + " must be a positive integer")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, start)
		return 0, false
	}
	return id, true
}

func writeLookupResult[T any](w http.ResponseWriter, r *http.Request, response commons.Response[T], err error, start time.Time) {
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}
