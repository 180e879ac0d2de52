package contextkeys

import (
	"context"
	"rental-bff/internal/core/domain"

	"github.com/google/uuid"
)

type visitorIDKeyType struct{}
type sessionKeyType struct{}

var (
	visitorIDKey = visitorIDKeyType{}
	sessionKey   = sessionKeyType{}
)

// ContextWithVisitorID помещает id посетителя (браузера) в контекст.
// По нему API-клиент находит cookie бэкенд-сессии.
func ContextWithVisitorID(ctx context.Context, visitorID uuid.UUID) context.Context {
	return context.WithValue(ctx, visitorIDKey, visitorID)
}

// VisitorIDFromContext возвращает id посетителя или uuid.Nil.
func VisitorIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(visitorIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// ContextWithSession помещает проверенную сессию пользователя в контекст.
func ContextWithSession(ctx context.Context, session *domain.AuthSession) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext возвращает сессию или nil для анонимного посетителя.
func SessionFromContext(ctx context.Context) *domain.AuthSession {
	if s, ok := ctx.Value(sessionKey).(*domain.AuthSession); ok {
		return s
	}
	return nil
}
