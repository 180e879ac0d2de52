package usecase

import (
	"context"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"

	"github.com/google/uuid"
)

// SearchDraftUseCase хранит незавершенный поиск посетителя: место, даты и гостей
// под тремя отдельными ключами.
type SearchDraftUseCase struct {
	store jsonStore
}

func NewSearchDraftUseCase(storage port.ClientStoragePort) *SearchDraftUseCase {
	return &SearchDraftUseCase{store: jsonStore{storage: storage}}
}

func (uc *SearchDraftUseCase) Get(ctx context.Context, visitorID uuid.UUID) domain.SearchDraft {
	logger := contextkeys.LoggerFromContext(ctx)
	draft := domain.SearchDraft{Guests: domain.DefaultGuestCount()}

	var location domain.SearchLocation
	if found, err := uc.store.load(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedLocation, &location); err != nil {
		logger.Warn("Failed to read search location", port.Fields{"error": err.Error()})
	} else if found {
		draft.Location = location
	}

	var dates domain.SearchDates
	if found, err := uc.store.load(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedDates, &dates); err != nil {
		logger.Warn("Failed to read search dates", port.Fields{"error": err.Error()})
	} else if found {
		draft.Dates = dates
	}

	var guests domain.GuestCount
	if found, err := uc.store.load(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedGuests, &guests); err != nil {
		logger.Warn("Failed to read search guests", port.Fields{"error": err.Error()})
	} else if found && guests.Adults >= 1 {
		draft.Guests = guests
	}
	return draft
}

// Save проверяет черновик, вычисляет geohash и сохраняет его.
func (uc *SearchDraftUseCase) Save(ctx context.Context, visitorID uuid.UUID, draft domain.SearchDraft) (domain.SearchDraft, error) {
	if err := draft.Normalize(); err != nil {
		return domain.SearchDraft{}, err
	}
	uc.store.savePreference(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedLocation, draft.Location)
	uc.store.savePreference(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedDates, draft.Dates)
	uc.store.savePreference(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedGuests, draft.Guests)
	return draft, nil
}

func (uc *SearchDraftUseCase) Clear(ctx context.Context, visitorID uuid.UUID) {
	for _, key := range []string{domain.KeySelectedLocation, domain.KeySelectedDates, domain.KeySelectedGuests} {
		if err := uc.store.remove(ctx, domain.VisitorNamespace(visitorID), key); err != nil {
			contextkeys.LoggerFromContext(ctx).Warn("Failed to clear search draft", port.Fields{"key": key, "error": err.Error()})
		}
	}
}

// ThemeUseCase - тема оформления, по умолчанию светлая.
type ThemeUseCase struct {
	store jsonStore
}

func NewThemeUseCase(storage port.ClientStoragePort) *ThemeUseCase {
	return &ThemeUseCase{store: jsonStore{storage: storage}}
}

func (uc *ThemeUseCase) Get(ctx context.Context, visitorID uuid.UUID) string {
	var theme string
	found, err := uc.store.load(ctx, domain.VisitorNamespace(visitorID), domain.KeyTheme, &theme)
	if err != nil || !found {
		return domain.ThemeLight
	}
	return theme
}

func (uc *ThemeUseCase) Set(ctx context.Context, visitorID uuid.UUID, theme string) (string, error) {
	if theme != domain.ThemeLight && theme != domain.ThemeDark {
		return "", domain.ErrInvalidTheme
	}
	uc.store.savePreference(ctx, domain.VisitorNamespace(visitorID), domain.KeyTheme, theme)
	return theme, nil
}
