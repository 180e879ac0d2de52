package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
	"rental-bff/pkg/keyedlock"

	"github.com/google/uuid"
)

// OTPUseCase ведет автомат подтверждения кода для каждого посетителя.
// Состояние хранится в клиентском хранилище под ключом otp_flow.
type OTPUseCase struct {
	api   port.AuthAPIPort
	store jsonStore
	locks *keyedlock.Mutex[uuid.UUID]
	now   func() time.Time
}

func NewOTPUseCase(api port.AuthAPIPort, storage port.ClientStoragePort) *OTPUseCase {
	return &OTPUseCase{
		api:   api,
		store: jsonStore{storage: storage},
		locks: keyedlock.New[uuid.UUID](),
		now:   time.Now,
	}
}

func (uc *OTPUseCase) logger(ctx context.Context, name string, visitorID uuid.UUID) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   name,
		"visitor_id": visitorID.String(),
	})
}

// Start создает новый автомат для email. Код только что отправлен,
// поэтому таймер повторной отправки запускается сразу.
func (uc *OTPUseCase) Start(ctx context.Context, visitorID uuid.UUID, email string) (*domain.OTPFlow, error) {
	unlock := uc.locks.Lock(visitorID)
	defer unlock()

	flow := domain.NewOTPFlow(email)
	flow.StartResendTimer(uc.now())
	if err := uc.store.save(ctx, domain.VisitorNamespace(visitorID), domain.KeyOTPFlow, flow); err != nil {
		return nil, err
	}
	uc.logger(ctx, "StartOTP", visitorID).Info("Verification started", port.Fields{"email": flow.Email})
	return flow, nil
}

func (uc *OTPUseCase) load(ctx context.Context, visitorID uuid.UUID) (*domain.OTPFlow, error) {
	var flow domain.OTPFlow
	found, err := uc.store.load(ctx, domain.VisitorNamespace(visitorID), domain.KeyOTPFlow, &flow)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNoPendingVerification
	}
	// Submitted в хранилище остается только от прерванного запроса: форма снова доступна.
	flow.Recover()
	return &flow, nil
}

// State возвращает текущее состояние автомата.
func (uc *OTPUseCase) State(ctx context.Context, visitorID uuid.UUID) (*domain.OTPFlow, error) {
	return uc.load(ctx, visitorID)
}

// Submit проверяет формат кода до любого сетевого вызова, затем отправляет его бэкенду.
// При отказе введенный код сохраняется, таймер повторной отправки не трогается.
func (uc *OTPUseCase) Submit(ctx context.Context, visitorID uuid.UUID, code string) (*domain.OTPFlow, *domain.OTPVerification, error) {
	ucLogger := uc.logger(ctx, "SubmitOTP", visitorID)

	unlock := uc.locks.Lock(visitorID)
	defer unlock()

	flow, err := uc.load(ctx, visitorID)
	if err != nil {
		return nil, nil, err
	}

	if err := flow.BeginSubmit(code); err != nil {
		if errors.Is(err, domain.ErrInvalidOTPFormat) {
			if saveErr := uc.store.save(ctx, domain.VisitorNamespace(visitorID), domain.KeyOTPFlow, flow); saveErr != nil {
				ucLogger.Warn("Failed to persist verification state", port.Fields{"error": saveErr.Error()})
			}
		}
		return flow, nil, err
	}
	// Submitted не сохраняется: запросы посетителя уже сериализованы locks,
	// а сбой записи после вызова оставляет в хранилище прежнее редактируемое состояние.

	resp, err := uc.api.VerifyOTP(ctx, flow.Email, code)
	var verification *domain.OTPVerification
	switch {
	case err != nil:
		ucLogger.Warn("OTP verification request failed", port.Fields{"error": err.Error()})
		flow.Fail(domain.UserMessageOf(err, ""))
	case resp.Data.Failed():
		flow.Fail(resp.Data.Message)
	default:
		verification = &resp.Data
		flow.Verify(resp.Data.Message, resp.Data.RequiresAdditionalDetails)
	}

	if saveErr := uc.store.save(ctx, domain.VisitorNamespace(visitorID), domain.KeyOTPFlow, flow); saveErr != nil {
		ucLogger.Error("Failed to persist verification result", saveErr, nil)
		return nil, nil, saveErr
	}

	if flow.State == domain.OTPFailed {
		ucLogger.Info("OTP rejected", port.Fields{"message": flow.Message})
		return flow, nil, &domain.BackendError{Operation: "verify otp", Message: flow.Message}
	}
	ucLogger.Info("OTP verified", port.Fields{"requires_details": flow.RequiresDetails})
	return flow, verification, nil
}

// Resend запрашивает новый код. Таймер перезапускается при любом исходе вызова.
func (uc *OTPUseCase) Resend(ctx context.Context, visitorID uuid.UUID) (*domain.OTPFlow, error) {
	ucLogger := uc.logger(ctx, "ResendOTP", visitorID)

	unlock := uc.locks.Lock(visitorID)
	defer unlock()

	flow, err := uc.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if flow.State == domain.OTPVerified {
		return flow, domain.ErrOTPAlreadyVerified
	}
	now := uc.now()
	if !flow.CanResend(now) {
		return flow, &domain.ResendCooldownError{Remaining: flow.ResendRemaining(now)}
	}

	resp, callErr := uc.api.ResendOTP(ctx, flow.Email)
	flow.StartResendTimer(now)
	if err := uc.store.save(ctx, domain.VisitorNamespace(visitorID), domain.KeyOTPFlow, flow); err != nil {
		ucLogger.Error("Failed to persist resend timer", err, nil)
		return nil, err
	}

	if callErr != nil {
		ucLogger.Warn("Resend request failed", port.Fields{"error": callErr.Error()})
		return flow, fmt.Errorf("failed to resend code: %w", callErr)
	}
	if err := resp.Data.AsError("resend otp"); err != nil {
		return flow, err
	}
	flow.Message = resp.Data.Message
	ucLogger.Info("Verification code resent", nil)
	return flow, nil
}

// Clear удаляет автомат после завершения регистрации.
func (uc *OTPUseCase) Clear(ctx context.Context, visitorID uuid.UUID) error {
	unlock := uc.locks.Lock(visitorID)
	defer unlock()
	return uc.store.remove(ctx, domain.VisitorNamespace(visitorID), domain.KeyOTPFlow)
}
