package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visitor - браузер, от имени которого выполняется операция.
// Session == nil для анонимного посетителя.
type Visitor struct {
	ID      uuid.UUID
	Session *AuthSession
}

func (v Visitor) Authenticated() bool {
	return v.Session != nil
}

// UserID - id пользователя или пустая строка для анонима.
func (v Visitor) UserID() string {
	if v.Session == nil {
		return ""
	}
	return v.Session.UserID
}

// AuthResult - выданная сессия и токен для UI.
type AuthResult struct {
	Session   AuthSession
	Token     string
	ExpiresAt time.Time
}

// OTPSubmission - итог отправки кода.
type OTPSubmission struct {
	Flow OTPFlow
	// Auth заполняется, если бэкенд сразу вернул пользователя и доп. данные не нужны.
	Auth *AuthResult
}

// RegistrationStarted - регистрация принята, ждем код.
type RegistrationStarted struct {
	Email             string
	Message           string
	ResendAvailableAt time.Time
}
