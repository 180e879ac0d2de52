package usecases_port

import (
	"context"

	"rental-bff/internal/core/domain"

	"github.com/google/uuid"
)

type SearchDraftUseCasePort interface {
	Get(ctx context.Context, visitorID uuid.UUID) domain.SearchDraft
	Save(ctx context.Context, visitorID uuid.UUID, draft domain.SearchDraft) (domain.SearchDraft, error)
	Clear(ctx context.Context, visitorID uuid.UUID)
}

type ThemeUseCasePort interface {
	Get(ctx context.Context, visitorID uuid.UUID) string
	Set(ctx context.Context, visitorID uuid.UUID, theme string) (string, error)
}
