package port

import (
	"context"
	"rental-bff/internal/core/domain"
)

// ExchangeRatesProviderPort - сторонний сервис курсов валют (курсы относительно USD).
type ExchangeRatesProviderPort interface {
	FetchRates(ctx context.Context) (domain.ExchangeRateTable, error)
}
