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

type RateController struct {
	service service_interfaces.RateService
}

func NewRateController(service service_interfaces.RateService) *RateController {
	return &RateController{service: service}
}

func (c *RateController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /rates", c.currentRates)
	mux.HandleFunc("POST /rates/convert", c.convert)
}

func (c *RateController) currentRates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response, err := c.service.CurrentRates(r.Context())
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrRateUnavailable) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}

func (c *RateController) convert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.ConvertResponse]("invalid request body")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Convert(r.Context(), req)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrRateUnavailable),
			errors.Is(err, domain.ErrUnsupportedCurrencyPair):
			status = http.StatusNotFound
		default:
			if response.Error != "failed to convert amount" {
				status = http.StatusBadRequest
			}
		}
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}
