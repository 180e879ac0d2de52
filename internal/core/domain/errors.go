package domain

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки, которые use case-ы возвращают наружу. Хендлеры сопоставляют их с HTTP-статусами.
var (
	ErrInvalidOTPFormat      = errors.New("please enter a valid 6-digit code")
	ErrOTPInProgress         = errors.New("verification is already in progress")
	ErrOTPAlreadyVerified    = errors.New("code has already been verified")
	ErrNoPendingVerification = errors.New("no pending verification for this visitor")
	ErrResendUnavailable     = errors.New("resend is not available yet")

	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRoleMismatch         = errors.New("account does not have the requested role")
	ErrNotAuthenticated     = errors.New("authentication required")

	ErrUnknownCurrency     = errors.New("unknown currency code")
	ErrWishlistNotFound    = errors.New("wishlist not found")
	ErrWishlistExists      = errors.New("a wishlist with this name already exists")
	ErrInvalidWishlist     = errors.New("invalid wishlist")
	ErrInvalidSearchDraft  = errors.New("invalid search draft")
	ErrInvalidBooking      = errors.New("invalid booking request")
	ErrInvalidTheme        = errors.New("invalid theme")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrHostNotFound        = errors.New("host not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidQuery        = errors.New("invalid property query")
	ErrInvalidRegistration = errors.New("name, email, password and a known role are required")
	ErrInvalidProfile      = errors.New("nothing to update")
)

// BackendError - бизнес-отказ бэкенда: success=false и текст для пользователя.
type BackendError struct {
	Operation string
	Message   string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend reported failure", e.Operation)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// UserMessage - текст, который можно показать как есть.
func (e *BackendError) UserMessage() string {
	return e.Message
}

// HTTPStatusError - бэкенд ответил не-2xx статусом.
type HTTPStatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	// Message - поле message из тела ответа, если его удалось прочитать.
	Message string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s %s returned non-success status code %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// ResendCooldownError - повторная отправка кода заблокирована таймером.
type ResendCooldownError struct {
	Remaining time.Duration
}

func (e *ResendCooldownError) Error() string {
	return fmt.Sprintf("%s: try again in %d seconds", ErrResendUnavailable.Error(), RemainingSeconds(e.Remaining))
}

func (e *ResendCooldownError) Unwrap() error {
	return ErrResendUnavailable
}

// UserMessageOf возвращает текст ошибки для UI: сообщение бэкенда, если оно есть, иначе fallback.
func UserMessageOf(err error, fallback string) string {
	var backendErr *BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return fallback
}

// RemainingSeconds округляет длительность вверх до целых секунд.
func RemainingSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
