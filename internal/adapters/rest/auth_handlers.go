package rest

import (
	"errors"
	"net/http"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
)

func (h *Handlers) setAuthCookie(w http.ResponseWriter, auth *domain.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    auth.Token,
		Path:     "/",
		Expires:  auth.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// Login обрабатывает POST /api/v1/auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "Login")
	v := visitorFrom(r)

	var req LoginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	auth, err := h.auth.Login(r.Context(), v.ID, domain.Credentials{Role: req.Role, Email: req.Email, Password: req.Password})
	if err != nil {
		writeUseCaseError(w, logger, err, "Login failed")
		return
	}
	h.setAuthCookie(w, auth)
	RespondWithJSON(w, http.StatusOK, toAuthResponse(auth))
}

// Register обрабатывает POST /api/v1/auth/register
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "Register")
	v := visitorFrom(r)

	var req RegisterRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	started, err := h.auth.Register(r.Context(), v.ID, domain.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeUseCaseError(w, logger, err, "Registration failed")
		return
	}
	RespondWithJSON(w, http.StatusCreated, RegistrationResponse{
		Email:             started.Email,
		Message:           started.Message,
		ResendAvailableAt: started.ResendAvailableAt,
	})
}

// GetOTPState обрабатывает GET /api/v1/auth/otp
func (h *Handlers) GetOTPState(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetOTPState")
	v := visitorFrom(r)

	flow, err := h.auth.OTPState(r.Context(), v.ID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to load verification state")
		return
	}
	RespondWithJSON(w, http.StatusOK, toOTPFlowResponse(*flow, h.now()))
}

// VerifyOTP обрабатывает POST /api/v1/auth/otp/verify
func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "VerifyOTP")
	v := visitorFrom(r)

	var req VerifyOTPRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	submission, err := h.auth.VerifyOTP(r.Context(), v.ID, req.OTP)
	if err != nil {
		if submission == nil {
			writeUseCaseError(w, logger, err, "Verification failed")
			return
		}
		// форме нужен и текст ошибки, и текущее состояние (введенный код, таймер)
		status, message := errorStatus(err, domain.OTPFailedFallbackMessage)
		logger.Info("OTP submission rejected", port.Fields{"status_code": status})
		RespondWithJSON(w, status, OTPErrorResponse{Error: message, OTP: toOTPFlowResponse(submission.Flow, h.now())})
		return
	}

	if submission.Auth != nil {
		h.setAuthCookie(w, submission.Auth)
	}
	RespondWithJSON(w, http.StatusOK, OTPSubmissionResponse{
		OTP:  toOTPFlowResponse(submission.Flow, h.now()),
		Auth: toAuthResponse(submission.Auth),
	})
}

// ResendOTP обрабатывает POST /api/v1/auth/otp/resend
func (h *Handlers) ResendOTP(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ResendOTP")
	v := visitorFrom(r)

	flow, err := h.auth.ResendOTP(r.Context(), v.ID)
	if err != nil {
		if flow == nil || errors.Is(err, domain.ErrResendUnavailable) {
			writeUseCaseError(w, logger, err, "Failed to resend code")
			return
		}
		status, message := errorStatus(err, "Failed to resend code")
		RespondWithJSON(w, status, OTPErrorResponse{Error: message, OTP: toOTPFlowResponse(*flow, h.now())})
		return
	}
	RespondWithJSON(w, http.StatusOK, toOTPFlowResponse(*flow, h.now()))
}

// CompleteRegistration обрабатывает POST /api/v1/auth/complete-registration
func (h *Handlers) CompleteRegistration(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "CompleteRegistration")
	v := visitorFrom(r)

	var req CompleteRegistrationRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	auth, err := h.auth.CompleteRegistration(r.Context(), v.ID, domain.RegistrationDetails{
		Name:      req.Name,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		Country:   req.Country,
	})
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to complete registration")
		return
	}
	h.setAuthCookie(w, auth)
	RespondWithJSON(w, http.StatusOK, toAuthResponse(auth))
}

// Logout обрабатывает POST /api/v1/auth/logout
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "Logout")
	v := visitorFrom(r)

	err := h.auth.Logout(r.Context(), v)
	// локальная сессия завершается в любом случае
	h.clearAuthCookie(w)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to log out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession обрабатывает GET /api/v1/auth/session
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session := contextkeys.SessionFromContext(r.Context())
	if session == nil {
		WriteJSONError(w, http.StatusUnauthorized, domain.ErrNotAuthenticated.Error())
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(*session))
}
