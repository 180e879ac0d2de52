package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"rental-bff/internal/core/domain"
)

func TestCurrency_FirstLoadWithoutStorageAndFailingFetch(t *testing.T) {
	storage := newFakeStorage()
	provider := &fakeRatesProvider{err: errors.New("network down")}
	uc := NewCurrencyUseCase(storage, provider)
	ctx := context.Background()

	selection := uc.Selection(ctx, visitorA)
	if selection.Country != "United States" || selection.Currency != "USD" {
		t.Fatalf("default selection = %+v", selection)
	}

	conv := uc.Convert(ctx, visitorA, 100)
	if conv.Amount != 100 || conv.Currency != "USD" {
		t.Errorf("conversion = %+v, want 100 USD", conv)
	}
	if conv.RatesStatus != domain.RatesUnavailable {
		t.Errorf("rates status = %s, want unavailable", conv.RatesStatus)
	}
	if !strings.Contains(conv.Display, "100") {
		t.Errorf("display %q does not show the amount", conv.Display)
	}

	uc.Convert(ctx, visitorA, 250)
	uc.LoadRates(ctx)
	if provider.calls != 1 {
		t.Errorf("rate fetches = %d, want exactly 1", provider.calls)
	}
}

func TestCurrency_FreshRatesAreCachedForFallback(t *testing.T) {
	storage := newFakeStorage()
	provider := &fakeRatesProvider{table: domain.ExchangeRateTable{"USD": 1, "EUR": 0.9}}
	uc := NewCurrencyUseCase(storage, provider)
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	if view := uc.LoadRates(ctx); view.Status != domain.RatesFresh {
		t.Fatalf("status = %s, want fresh", view.Status)
	}
	raw, ok := storage.raw(domain.SharedNamespace, domain.KeyExchangeRates)
	if !ok {
		t.Fatal("rates were not cached")
	}
	var cached domain.CachedRates
	if err := json.Unmarshal([]byte(raw), &cached); err != nil || cached.Rates["EUR"] != 0.9 {
		t.Fatalf("cached = %s (%v)", raw, err)
	}

	// Новый процесс: сервис курсов недоступен, используется кэш.
	next := NewCurrencyUseCase(storage, &fakeRatesProvider{err: errors.New("timeout")})
	if _, err := next.Select(ctx, visitorA, "Germany", "eur"); err != nil {
		t.Fatal(err)
	}
	conv := next.Convert(ctx, visitorA, 10.555)
	if conv.RatesStatus != domain.RatesCached {
		t.Errorf("status = %s, want cached", conv.RatesStatus)
	}
	if conv.Currency != "EUR" || conv.Amount != 9.5 {
		t.Errorf("conversion = %+v, want 9.5 EUR", conv)
	}
}

func TestCurrency_UnknownCodeUsesIdentity(t *testing.T) {
	uc := NewCurrencyUseCase(newFakeStorage(), &fakeRatesProvider{table: domain.ExchangeRateTable{"EUR": 0.9}})
	uc.LoadRates(context.Background())

	conv := uc.ConvertTo(context.Background(), 123.45, "JPY")
	if conv.Amount != 123.45 {
		t.Errorf("amount = %v, want unchanged 123.45", conv.Amount)
	}
}

func TestCurrency_SelectPersistsWithoutRefetch(t *testing.T) {
	storage := newFakeStorage()
	provider := &fakeRatesProvider{table: domain.ExchangeRateTable{"GBP": 0.8}}
	uc := NewCurrencyUseCase(storage, provider)
	ctx := context.Background()
	uc.LoadRates(ctx)

	selection, err := uc.Select(ctx, visitorA, " United Kingdom ", "gbp")
	if err != nil {
		t.Fatal(err)
	}
	if selection.Currency != "GBP" || selection.Country != "United Kingdom" {
		t.Errorf("selection = %+v", selection)
	}
	if provider.calls != 1 {
		t.Errorf("select must not refetch rates, calls = %d", provider.calls)
	}
	if got := uc.Selection(ctx, visitorA); got != selection {
		t.Errorf("persisted selection = %+v, want %+v", got, selection)
	}
	if got := uc.Selection(ctx, visitorB); got.Currency != "USD" {
		t.Errorf("other visitor must keep defaults, got %+v", got)
	}
}

func TestCurrency_SelectRejectsNonISOCode(t *testing.T) {
	uc := NewCurrencyUseCase(newFakeStorage(), &fakeRatesProvider{})
	if _, err := uc.Select(context.Background(), visitorA, "Nowhere", "QQQ"); !errors.Is(err, domain.ErrUnknownCurrency) {
		t.Errorf("err = %v, want ErrUnknownCurrency", err)
	}
}

func TestCurrency_SelectSurvivesStorageFailure(t *testing.T) {
	storage := newFakeStorage()
	storage.setErr = errors.New("disk full")
	uc := NewCurrencyUseCase(storage, &fakeRatesProvider{})

	selection, err := uc.Select(context.Background(), visitorA, "Japan", "JPY")
	if err != nil {
		t.Fatalf("preference write failure must not fail the operation: %v", err)
	}
	if selection.Currency != "JPY" {
		t.Errorf("selection = %+v", selection)
	}
}

func TestCurrency_CorruptStoredSelectionFallsBackToDefault(t *testing.T) {
	storage := newFakeStorage()
	storage.put(visitorA.String(), domain.KeySelectedCurrency, `{"not":"a string"}`)
	uc := NewCurrencyUseCase(storage, &fakeRatesProvider{})

	if got := uc.Selection(context.Background(), visitorA).Currency; got != "USD" {
		t.Errorf("currency = %s, want USD", got)
	}
}

func TestCurrency_RefreshFailureKeepsPreviousTableAsCached(t *testing.T) {
	storage := newFakeStorage()
	provider := &fakeRatesProvider{table: domain.ExchangeRateTable{"EUR": 0.5}}
	uc := NewCurrencyUseCase(storage, provider)
	ctx := context.Background()
	uc.LoadRates(ctx)

	storage.Delete(ctx, domain.SharedNamespace, domain.KeyExchangeRates)
	provider.err = errors.New("down")
	view := uc.RefreshRates(ctx)
	if view.Status != domain.RatesCached || view.Rates["EUR"] != 0.5 {
		t.Errorf("view = %+v", view)
	}
}
