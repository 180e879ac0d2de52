package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyUseCase - выбор валюты посетителем и пересчет цен из USD.
// Таблица курсов общая для процесса: загружается один раз при старте
// и обновляется только явным RefreshRates.
type CurrencyUseCase struct {
	store    jsonStore
	provider port.ExchangeRatesProviderPort
	now      func() time.Time

	loadOnce  sync.Once
	mu        sync.RWMutex
	rates     domain.ExchangeRateTable
	status    domain.RatesStatus
	fetchedAt time.Time
}

func NewCurrencyUseCase(storage port.ClientStoragePort, provider port.ExchangeRatesProviderPort) *CurrencyUseCase {
	return &CurrencyUseCase{
		store:    jsonStore{storage: storage},
		provider: provider,
		now:      time.Now,
		rates:    domain.ExchangeRateTable{},
		status:   domain.RatesUnavailable,
	}
}

// LoadRates загружает курсы, если это еще не делалось. Повторные вызовы ничего не запрашивают.
func (uc *CurrencyUseCase) LoadRates(ctx context.Context) domain.RatesView {
	uc.loadOnce.Do(func() {
		uc.RefreshRates(ctx)
	})
	return uc.Rates(ctx)
}

// RefreshRates - одна попытка получить свежие курсы. При сбое берется кэш любой давности,
// без кэша пересчет идет с множителем 1.
func (uc *CurrencyUseCase) RefreshRates(ctx context.Context) domain.RatesView {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "RefreshRates"})

	table, err := uc.provider.FetchRates(ctx)
	if err == nil && len(table) > 0 {
		now := uc.now().UTC()
		uc.setRates(table, domain.RatesFresh, now)
		uc.store.savePreference(ctx, domain.SharedNamespace, domain.KeyExchangeRates, domain.CachedRates{
			Base:      domain.DefaultCurrency,
			Rates:     table,
			FetchedAt: now,
		})
		ucLogger.Info("Exchange rates refreshed", port.Fields{"currencies": len(table)})
		return uc.Rates(ctx)
	}
	if err == nil {
		err = fmt.Errorf("empty rate table")
	}
	ucLogger.Warn("Failed to fetch exchange rates, falling back to cache", port.Fields{"error": err.Error()})

	var cached domain.CachedRates
	found, loadErr := uc.store.load(ctx, domain.SharedNamespace, domain.KeyExchangeRates, &cached)
	if loadErr != nil {
		ucLogger.Warn("Failed to read cached exchange rates", port.Fields{"error": loadErr.Error()})
	}
	if found && len(cached.Rates) > 0 {
		uc.setRates(cached.Rates, domain.RatesCached, cached.FetchedAt)
		ucLogger.Info("Using cached exchange rates", port.Fields{"fetched_at": cached.FetchedAt})
		return uc.Rates(ctx)
	}

	uc.mu.Lock()
	if len(uc.rates) > 0 {
		// Ранее загруженная таблица остается, но уже не считается свежей.
		uc.status = domain.RatesCached
	} else {
		uc.status = domain.RatesUnavailable
	}
	uc.mu.Unlock()
	if uc.Rates(ctx).Status == domain.RatesUnavailable {
		ucLogger.Warn("No exchange rates available, prices are shown in USD values", nil)
	}
	return uc.Rates(ctx)
}

func (uc *CurrencyUseCase) setRates(table domain.ExchangeRateTable, status domain.RatesStatus, fetchedAt time.Time) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.rates = table
	uc.status = status
	uc.fetchedAt = fetchedAt
}

// Rates возвращает копию текущей таблицы.
func (uc *CurrencyUseCase) Rates(ctx context.Context) domain.RatesView {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	table := make(domain.ExchangeRateTable, len(uc.rates))
	for k, v := range uc.rates {
		table[k] = v
	}
	return domain.RatesView{
		Base:      domain.DefaultCurrency,
		Rates:     table,
		Status:    uc.status,
		FetchedAt: uc.fetchedAt,
	}
}

// Selection - выбор посетителя; при первом запуске United States / USD.
func (uc *CurrencyUseCase) Selection(ctx context.Context, visitorID uuid.UUID) domain.CurrencySelection {
	selection := domain.DefaultCurrencySelection()
	logger := contextkeys.LoggerFromContext(ctx)

	var country, code string
	if found, err := uc.store.load(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedCountry, &country); err != nil {
		logger.Warn("Failed to read selected country", port.Fields{"error": err.Error()})
	} else if found && country != "" {
		selection.Country = country
	}
	if found, err := uc.store.load(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedCurrency, &code); err != nil {
		logger.Warn("Failed to read selected currency", port.Fields{"error": err.Error()})
	} else if found && code != "" {
		selection.Currency = code
	}
	return selection
}

// Select сохраняет новый выбор. Курсы при этом не перезапрашиваются.
func (uc *CurrencyUseCase) Select(ctx context.Context, visitorID uuid.UUID, country, code string) (domain.CurrencySelection, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "SelectCurrency",
		"visitor_id": visitorID.String(),
	})

	code = cases.Upper(language.Und).String(strings.TrimSpace(code))
	if _, err := currency.ParseISO(code); err != nil {
		return domain.CurrencySelection{}, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, code)
	}
	country = strings.TrimSpace(country)
	if country == "" {
		country = uc.Selection(ctx, visitorID).Country
	}

	uc.store.savePreference(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedCountry, country)
	uc.store.savePreference(ctx, domain.VisitorNamespace(visitorID), domain.KeySelectedCurrency, code)

	ucLogger.Info("Currency selected", port.Fields{"country": country, "currency": code})
	return domain.CurrencySelection{Country: country, Currency: code}, nil
}

// Convert пересчитывает цену в валюту посетителя. Если курсы еще не загружались, загружает их.
func (uc *CurrencyUseCase) Convert(ctx context.Context, visitorID uuid.UUID, priceUSD float64) domain.Conversion {
	uc.LoadRates(ctx)
	return uc.ConvertTo(ctx, priceUSD, uc.Selection(ctx, visitorID).Currency)
}

// ConvertTo - пересчет в заданную валюту, используется при пакетном пересчете выдачи.
func (uc *CurrencyUseCase) ConvertTo(ctx context.Context, priceUSD float64, code string) domain.Conversion {
	uc.mu.RLock()
	amount := uc.rates.Convert(priceUSD, code)
	status := uc.status
	uc.mu.RUnlock()

	return domain.Conversion{
		AmountUSD:   priceUSD,
		Amount:      amount,
		Currency:    code,
		Display:     uc.format(amount, code),
		RatesStatus: status,
	}
}

func (uc *CurrencyUseCase) format(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, amount)
	}
	return message.NewPrinter(language.English).Sprint(currency.Symbol(unit.Amount(amount)))
}
