package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// errorStatus сопоставляет ошибку use case с HTTP-статусом и текстом для UI.
func errorStatus(err error, fallback string) (int, string) {
	var cooldown *domain.ResendCooldownError
	var backendErr *domain.BackendError
	var statusErr *domain.HTTPStatusError

	switch {
	case errors.As(err, &cooldown):
		return http.StatusTooManyRequests, cooldown.Error()
	case errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusUnauthorized, domain.ErrRoleMismatch.Error()
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return http.StatusUnauthorized, domain.UserMessageOf(err, "Invalid credentials")
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, domain.ErrNotAuthenticated.Error()

	case errors.Is(err, domain.ErrInvalidOTPFormat),
		errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrInvalidWishlist),
		errors.Is(err, domain.ErrInvalidSearchDraft),
		errors.Is(err, domain.ErrInvalidBooking),
		errors.Is(err, domain.ErrInvalidTheme),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrInvalidRegistration),
		errors.Is(err, domain.ErrInvalidProfile):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrWishlistNotFound),
		errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrHostNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrNoPendingVerification):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrWishlistExists),
		errors.Is(err, domain.ErrOTPInProgress),
		errors.Is(err, domain.ErrOTPAlreadyVerified):
		return http.StatusConflict, err.Error()

	case errors.As(err, &backendErr):
		return http.StatusUnprocessableEntity, domain.UserMessageOf(err, fallback)
	case errors.As(err, &statusErr):
		return http.StatusBadGateway, domain.UserMessageOf(err, fallback)
	}
	return http.StatusInternalServerError, fallback
}

// writeUseCaseError пишет ответ об ошибке; 5xx логируются как Error, остальное как Info.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error, fallback string) {
	status, message := errorStatus(err, fallback)
	if status >= http.StatusInternalServerError {
		logger.Error("Use case failed", err, port.Fields{"status_code": status})
	} else {
		logger.Info("Request rejected", port.Fields{"status_code": status, "reason": err.Error()})
	}

	var cooldown *domain.ResendCooldownError
	if errors.As(err, &cooldown) {
		w.Header().Set("Retry-After", strconv.Itoa(domain.RemainingSeconds(cooldown.Remaining)))
	}
	WriteJSONError(w, status, message)
}

// decodeJSONBody читает тело запроса в dst.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(dst)
}
