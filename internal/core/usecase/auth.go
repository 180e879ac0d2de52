package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"

	"github.com/google/uuid"
)

// WishlistSyncer - выгрузка локального избранного сразу после входа и его сброс при выходе.
type WishlistSyncer interface {
	Sync(ctx context.Context, v domain.Visitor) (domain.WishlistCollection, error)
	ForgetLocal(ctx context.Context, visitorID uuid.UUID) error
}

// AuthUseCase - вход, регистрация с подтверждением кода и выход.
// Сессия для UI выдается в виде подписанного токена.
type AuthUseCase struct {
	api       port.AuthAPIPort
	backend   port.BackendSessionPort
	tokens    port.SessionTokenPort
	otp       *OTPUseCase
	wishlists WishlistSyncer
	publisher port.ActivityPublisherPort
	tokenTTL  time.Duration
	now       func() time.Time
}

type AuthDeps struct {
	API       port.AuthAPIPort
	Backend   port.BackendSessionPort
	Tokens    port.SessionTokenPort
	OTP       *OTPUseCase
	Wishlists WishlistSyncer
	Publisher port.ActivityPublisherPort
	TokenTTL  time.Duration
}

func NewAuthUseCase(deps AuthDeps) *AuthUseCase {
	ttl := deps.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthUseCase{
		api:       deps.API,
		backend:   deps.Backend,
		tokens:    deps.Tokens,
		otp:       deps.OTP,
		wishlists: deps.Wishlists,
		publisher: deps.Publisher,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

func (uc *AuthUseCase) logger(ctx context.Context, name string, visitorID uuid.UUID) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   name,
		"visitor_id": visitorID.String(),
	})
}

// Login - вход успешен, только если бэкенд ответил success и роль совпала с запрошенной.
// Несовпадение роли - такой же отказ аутентификации, даже при верном пароле.
func (uc *AuthUseCase) Login(ctx context.Context, visitorID uuid.UUID, creds domain.Credentials) (*domain.AuthResult, error) {
	ucLogger := uc.logger(ctx, "Login", visitorID).WithFields(port.Fields{"role": creds.Role})
	ucLogger.Info("Use case started", nil)

	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" || !domain.IsKnownRole(creds.Role) {
		return nil, fmt.Errorf("%w: email, password and a known role are required", domain.ErrAuthenticationFailed)
	}

	resp, err := uc.api.Login(ctx, creds)
	if err != nil {
		ucLogger.Error("Login request failed", err, nil)
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthenticationFailed, err)
	}
	result := resp.Data
	if result.Failed() {
		ucLogger.Info("Backend rejected credentials", port.Fields{"message": result.Message})
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthenticationFailed, result.AsError("login"))
	}
	if result.Role != creds.Role {
		ucLogger.Warn("Role mismatch on login", port.Fields{"actual_role": result.Role})
		if err := uc.backend.ClearSession(ctx); err != nil {
			ucLogger.Warn("Failed to clear backend session", port.Fields{"error": err.Error()})
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthenticationFailed, domain.ErrRoleMismatch)
	}

	session := domain.AuthSession{Role: result.Role, Email: result.Email, Name: result.Name, UserID: result.UserID}
	if session.Email == "" {
		session.Email = creds.Email
	}
	auth, err := uc.issue(ctx, session)
	if err != nil {
		return nil, err
	}

	uc.afterLogin(ctx, domain.Visitor{ID: visitorID, Session: &auth.Session})
	ucLogger.Info("Use case finished successfully", port.Fields{"user_id": session.UserID})
	return auth, nil
}

func (uc *AuthUseCase) issue(ctx context.Context, session domain.AuthSession) (*domain.AuthResult, error) {
	token, err := uc.tokens.GenerateToken(ctx, session, uc.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &domain.AuthResult{Session: session, Token: token, ExpiresAt: uc.now().Add(uc.tokenTTL).UTC()}, nil
}

// afterLogin - событие входа и выгрузка локального избранного. Сбои только логируются.
func (uc *AuthUseCase) afterLogin(ctx context.Context, v domain.Visitor) {
	publishActivity(ctx, uc.publisher, domain.ActivityLogin, v, map[string]any{"role": v.Session.Role})
	if uc.wishlists == nil {
		return
	}
	if _, err := uc.wishlists.Sync(ctx, v); err != nil {
		uc.logger(ctx, "Login", v.ID).Warn("Wishlist sync after login failed", port.Fields{"error": err.Error()})
	}
}

// Register отправляет регистрацию и запускает подтверждение кода.
func (uc *AuthUseCase) Register(ctx context.Context, visitorID uuid.UUID, reg domain.Registration) (*domain.RegistrationStarted, error) {
	ucLogger := uc.logger(ctx, "Register", visitorID)
	ucLogger.Info("Use case started", nil)

	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Role == "" {
		reg.Role = domain.RoleGuest
	}
	if reg.Name == "" || reg.Email == "" || reg.Password == "" || !domain.IsKnownRole(reg.Role) {
		return nil, domain.ErrInvalidRegistration
	}

	resp, err := uc.api.Register(ctx, reg)
	if err != nil {
		ucLogger.Error("Registration request failed", err, nil)
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	if err := resp.Data.AsError("register"); err != nil {
		return nil, err
	}

	flow, err := uc.otp.Start(ctx, visitorID, resp.Data.Email)
	if err != nil {
		return nil, err
	}
	ucLogger.Info("Use case finished successfully", nil)
	return &domain.RegistrationStarted{
		Email:             flow.Email,
		Message:           resp.Data.Message,
		ResendAvailableAt: flow.ResendAvailableAt,
	}, nil
}

// VerifyOTP проверяет код. Если бэкенд вернул пользователя и доп. данные не нужны,
// сразу выдается сессия.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, visitorID uuid.UUID, code string) (*domain.OTPSubmission, error) {
	flow, verification, err := uc.otp.Submit(ctx, visitorID, code)
	if err != nil {
		if flow != nil {
			return &domain.OTPSubmission{Flow: *flow}, err
		}
		return nil, err
	}

	submission := &domain.OTPSubmission{Flow: *flow}
	if verification != nil && !verification.RequiresAdditionalDetails && verification.Session != nil {
		auth, err := uc.issue(ctx, *verification.Session)
		if err != nil {
			return submission, err
		}
		submission.Auth = auth
		uc.afterLogin(ctx, domain.Visitor{ID: visitorID, Session: &auth.Session})
	}
	return submission, nil
}

func (uc *AuthUseCase) ResendOTP(ctx context.Context, visitorID uuid.UUID) (*domain.OTPFlow, error) {
	return uc.otp.Resend(ctx, visitorID)
}

func (uc *AuthUseCase) OTPState(ctx context.Context, visitorID uuid.UUID) (*domain.OTPFlow, error) {
	return uc.otp.State(ctx, visitorID)
}

// CompleteRegistration отправляет доп. данные после подтвержденного кода.
func (uc *AuthUseCase) CompleteRegistration(ctx context.Context, visitorID uuid.UUID, details domain.RegistrationDetails) (*domain.AuthResult, error) {
	ucLogger := uc.logger(ctx, "CompleteRegistration", visitorID)

	flow, err := uc.otp.State(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if flow.State != domain.OTPVerified {
		return nil, domain.ErrNoPendingVerification
	}

	resp, err := uc.api.CompleteRegistration(ctx, flow.Email, details)
	if err != nil {
		ucLogger.Error("Complete registration request failed", err, nil)
		return nil, fmt.Errorf("failed to complete registration: %w", err)
	}
	if err := resp.Data.AsError("complete registration"); err != nil {
		return nil, err
	}

	result := resp.Data
	session := domain.AuthSession{Role: result.Role, Email: result.Email, Name: result.Name, UserID: result.UserID}
	if session.Email == "" {
		session.Email = flow.Email
	}
	if session.Name == "" {
		session.Name = details.Name
	}
	if session.Role == "" {
		session.Role = domain.RoleGuest
	}
	auth, err := uc.issue(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := uc.otp.Clear(ctx, visitorID); err != nil {
		ucLogger.Warn("Failed to clear verification state", port.Fields{"error": err.Error()})
	}
	uc.afterLogin(ctx, domain.Visitor{ID: visitorID, Session: &auth.Session})
	ucLogger.Info("Registration completed", port.Fields{"user_id": session.UserID})
	return auth, nil
}

// Logout всегда завершает локальную сессию; отказ бэкенда только логируется.
func (uc *AuthUseCase) Logout(ctx context.Context, v domain.Visitor) error {
	ucLogger := uc.logger(ctx, "Logout", v.ID)

	if resp, err := uc.api.Logout(ctx); err != nil {
		ucLogger.Warn("Backend logout failed", port.Fields{"error": err.Error()})
	} else if resp.Data.Failed() {
		ucLogger.Warn("Backend logout rejected", port.Fields{"message": resp.Data.Message})
	}

	if err := uc.backend.ClearSession(ctx); err != nil {
		ucLogger.Error("Failed to clear backend session", err, nil)
		return err
	}
	// без проверки Authenticated: у истекшего токена кэш аккаунта тоже остался
	if uc.wishlists != nil {
		if err := uc.wishlists.ForgetLocal(ctx, v.ID); err != nil {
			ucLogger.Error("Failed to clear account wishlists", err, nil)
			return err
		}
	}
	if v.Authenticated() {
		publishActivity(ctx, uc.publisher, domain.ActivityLogout, v, nil)
	}
	ucLogger.Info("Logged out", nil)
	return nil
}

// Session проверяет токен UI.
func (uc *AuthUseCase) Session(ctx context.Context, token string) (*domain.AuthSession, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return uc.tokens.ValidateToken(ctx, token)
}
