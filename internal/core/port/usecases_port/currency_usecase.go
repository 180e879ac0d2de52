package usecases_port

import (
	"context"

	"rental-bff/internal/core/domain"

	"github.com/google/uuid"
)

type CurrencyUseCasePort interface {
	Rates(ctx context.Context) domain.RatesView
	RefreshRates(ctx context.Context) domain.RatesView
	Selection(ctx context.Context, visitorID uuid.UUID) domain.CurrencySelection
	Select(ctx context.Context, visitorID uuid.UUID, country, code string) (domain.CurrencySelection, error)
	Convert(ctx context.Context, visitorID uuid.UUID, priceUSD float64) domain.Conversion
}
