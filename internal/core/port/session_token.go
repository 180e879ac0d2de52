package port

import (
	"context"
	"rental-bff/internal/core/domain"
	"time"
)

// SessionTokenPort выпускает и проверяет токен сессии, который хранит UI.
type SessionTokenPort interface {
	GenerateToken(ctx context.Context, session domain.AuthSession, ttl time.Duration) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.AuthSession, error)
}
