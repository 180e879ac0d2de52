package rest

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
)

// GetCurrency обрабатывает GET /api/v1/currency
func (h *Handlers) GetCurrency(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r)
	selection := h.currency.Selection(r.Context(), v.ID)
	rates := h.currency.Rates(r.Context())
	RespondWithJSON(w, http.StatusOK, CurrencySelectionResponse{
		Country:     selection.Country,
		Currency:    selection.Currency,
		RatesStatus: string(rates.Status),
	})
}

// SelectCurrency обрабатывает PUT /api/v1/currency
func (h *Handlers) SelectCurrency(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "SelectCurrency")
	v := visitorFrom(r)

	var req SelectCurrencyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	selection, err := h.currency.Select(r.Context(), v.ID, req.Country, req.Currency)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to select currency")
		return
	}
	rates := h.currency.Rates(r.Context())
	RespondWithJSON(w, http.StatusOK, CurrencySelectionResponse{
		Country:     selection.Country,
		Currency:    selection.Currency,
		RatesStatus: string(rates.Status),
	})
}

// GetRates обрабатывает GET /api/v1/currency/rates
func (h *Handlers) GetRates(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, toRatesResponse(h.currency.Rates(r.Context())))
}

// RefreshRates обрабатывает POST /api/v1/currency/rates/refresh
func (h *Handlers) RefreshRates(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "RefreshRates")
	view := h.currency.RefreshRates(r.Context())
	logger.Info("Exchange rates refreshed", port.Fields{"status": view.Status})
	RespondWithJSON(w, http.StatusOK, toRatesResponse(view))
}

// Convert обрабатывает GET /api/v1/currency/convert?price=
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	priceStr := strings.TrimSpace(r.URL.Query().Get("price"))
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || math.IsNaN(price) || price < 0 || price > domain.MaxRoundedPrice {
		WriteJSONError(w, http.StatusBadRequest, "Query parameter 'price' must be a non-negative number up to 1e15")
		return
	}
	v := visitorFrom(r)
	RespondWithJSON(w, http.StatusOK, toConversionResponse(h.currency.Convert(r.Context(), v.ID, price)))
}
