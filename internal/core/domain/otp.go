package domain

import (
	"strings"
	"time"
)

const (
	OTPLength      = 6
	ResendCooldown = 60 * time.Second

	// OTPFailedFallbackMessage показывается, если бэкенд не прислал своего текста.
	OTPFailedFallbackMessage = "Verification failed. Please try again."
)

// OTPState - состояние формы подтверждения.
type OTPState string

const (
	OTPIdle      OTPState = "idle"
	OTPSubmitted OTPState = "submitted"
	OTPVerified  OTPState = "verified"
	OTPFailed    OTPState = "failed"
)

// ValidateOTPCode - ровно 6 ASCII-цифр. Проверяется до любого сетевого вызова.
func ValidateOTPCode(code string) error {
	if len(code) != OTPLength {
		return ErrInvalidOTPFormat
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return ErrInvalidOTPFormat
		}
	}
	return nil
}

// OTPFlow - конечный автомат подтверждения кода для одного посетителя.
// Таймер повторной отправки один: новый запуск переносит единственный дедлайн.
type OTPFlow struct {
	Email             string    `json:"email"`
	State             OTPState  `json:"state"`
	Code              string    `json:"code,omitempty"`
	Message           string    `json:"message,omitempty"`
	ResendAvailableAt time.Time `json:"resend_available_at"`
	// RequiresDetails выставляется после успешной проверки, если бэкенд ждет доп. данные.
	RequiresDetails bool `json:"requires_details,omitempty"`
}

// NewOTPFlow создает автомат в состоянии Idle.
func NewOTPFlow(email string) *OTPFlow {
	return &OTPFlow{Email: strings.TrimSpace(email), State: OTPIdle}
}

// BeginSubmit выполняет переход Idle/Failed -> Submitted.
func (f *OTPFlow) BeginSubmit(code string) error {
	switch f.State {
	case OTPSubmitted:
		return ErrOTPInProgress
	case OTPVerified:
		return ErrOTPAlreadyVerified
	}
	if err := ValidateOTPCode(code); err != nil {
		f.Message = err.Error()
		return err
	}
	f.State = OTPSubmitted
	f.Code = code
	f.Message = ""
	return nil
}

// Verify выполняет переход Submitted -> Verified.
func (f *OTPFlow) Verify(message string, requiresDetails bool) {
	f.State = OTPVerified
	f.Message = message
	f.RequiresDetails = requiresDetails
}

// Fail выполняет переход Submitted -> Failed. Введенный код сохраняется для редактирования.
func (f *OTPFlow) Fail(message string) {
	if strings.TrimSpace(message) == "" {
		message = OTPFailedFallbackMessage
	}
	f.State = OTPFailed
	f.Message = message
}

// Recover возвращает зависший Submitted в Failed, код и таймер не трогаются.
func (f *OTPFlow) Recover() {
	if f.State == OTPSubmitted {
		f.Fail("")
	}
}

// CanResend - истек ли таймер повторной отправки.
func (f *OTPFlow) CanResend(now time.Time) bool {
	return !now.Before(f.ResendAvailableAt)
}

// ResendRemaining - сколько осталось до разблокировки повторной отправки.
func (f *OTPFlow) ResendRemaining(now time.Time) time.Duration {
	if f.CanResend(now) {
		return 0
	}
	return f.ResendAvailableAt.Sub(now)
}

// StartResendTimer запускает 60-секундный таймер от момента now.
func (f *OTPFlow) StartResendTimer(now time.Time) {
	f.ResendAvailableAt = now.Add(ResendCooldown).UTC()
}

// OTPVerification - результат успешной проверки, решение о дальнейших шагах за вызывающим.
type OTPVerification struct {
	BackendStatus
	RequiresAdditionalDetails bool
	Session                   *AuthSession
}

// OTPResend - результат повторной отправки.
type OTPResend struct {
	BackendStatus
	ResendAvailableAt time.Time
}
