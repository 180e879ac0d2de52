package rest

import (
	"context"
	"net/http"
	"strings"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
)

// AuthCookieName - HttpOnly cookie с токеном сессии UI.
const AuthCookieName = "rental_auth"

// SessionValidator проверяет токен сессии.
type SessionValidator interface {
	Session(ctx context.Context, token string) (*domain.AuthSession, error)
}

type AuthMiddleware struct {
	validator SessionValidator
}

func NewAuthMiddleware(validator SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// tokenFromRequest - сначала Authorization: Bearer, затем cookie.
func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// OptionalAuth кладет сессию в контекст, если токен есть и валиден.
// Без токена или с просроченным токеном запрос идет дальше как анонимный.
func (am *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		logger := contextkeys.LoggerFromContext(r.Context())
		session, err := am.validator.Session(r.Context(), token)
		if err != nil {
			logger.Debug("Session token rejected, continuing anonymously", port.Fields{"error": err.Error()})
			next.ServeHTTP(w, r)
			return
		}

		ctx := contextkeys.ContextWithSession(r.Context(), session)
		ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"user_id": session.UserID}))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession пропускает только авторизованных пользователей.
func (am *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextkeys.SessionFromContext(r.Context()) == nil {
			WriteJSONError(w, http.StatusUnauthorized, domain.ErrNotAuthenticated.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// visitorFrom собирает посетителя из контекста запроса.
func visitorFrom(r *http.Request) domain.Visitor {
	return domain.Visitor{
		ID:      contextkeys.VisitorIDFromContext(r.Context()),
		Session: contextkeys.SessionFromContext(r.Context()),
	}
}
