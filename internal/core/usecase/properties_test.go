package usecase

import (
	"context"
	"errors"
	"testing"

	"rental-bff/internal/core/domain"
)

func newPropertiesFixture(api *fakePropertiesAPI) (*PropertiesUseCase, *CurrencyUseCase, *SearchDraftUseCase) {
	storage := newFakeStorage()
	currency := NewCurrencyUseCase(storage, &fakeRatesProvider{table: domain.ExchangeRateTable{"USD": 1, "EUR": 0.5}})
	drafts := NewSearchDraftUseCase(storage)
	return NewPropertiesUseCase(api, currency, drafts), currency, drafts
}

func TestProperties_ListSortsAndConverts(t *testing.T) {
	api := &fakePropertiesAPI{all: []domain.Property{
		{ID: "1", PriceUSD: 300},
		{ID: "2", PriceUSD: 100},
		{ID: "3", PriceUSD: 200},
	}}
	uc, currency, _ := newPropertiesFixture(api)
	ctx := context.Background()
	if _, err := currency.Select(ctx, visitorA, "Germany", "EUR"); err != nil {
		t.Fatal(err)
	}

	listing, err := uc.List(ctx, visitorA, domain.PropertyQuery{Sort: domain.SortPriceAsc})
	if err != nil {
		t.Fatal(err)
	}
	if api.listCalls != 1 || api.filterCalls != 0 {
		t.Errorf("list=%d filter=%d", api.listCalls, api.filterCalls)
	}
	if listing.Currency != "EUR" || listing.RatesStatus != domain.RatesFresh {
		t.Errorf("listing currency=%s status=%s", listing.Currency, listing.RatesStatus)
	}
	wantIDs := []string{"2", "3", "1"}
	wantAmounts := []float64{50, 100, 150}
	for i, p := range listing.Properties {
		if p.ID != wantIDs[i] || p.Price.Amount != wantAmounts[i] {
			t.Errorf("item %d = %s %.2f, want %s %.2f", i, p.ID, p.Price.Amount, wantIDs[i], wantAmounts[i])
		}
	}
}

func TestProperties_ServerFiltersUseFilterEndpoint(t *testing.T) {
	api := &fakePropertiesAPI{filtered: []domain.Property{{ID: "9", PriceUSD: 80}}}
	uc, _, _ := newPropertiesFixture(api)

	listing, err := uc.List(context.Background(), visitorA, domain.PropertyQuery{Location: "Paris", Guests: 2})
	if err != nil {
		t.Fatal(err)
	}
	if api.filterCalls != 1 || len(listing.Properties) != 1 {
		t.Errorf("filter calls = %d, listing = %+v", api.filterCalls, listing)
	}
}

func TestProperties_RejectsInvalidQuery(t *testing.T) {
	uc, _, _ := newPropertiesFixture(&fakePropertiesAPI{})
	queries := []domain.PropertyQuery{
		{Sort: "cheapest"},
		{MinPrice: -1},
		{MinPrice: 200, MaxPrice: 100},
		{Guests: -2},
	}
	for _, q := range queries {
		if _, err := uc.List(context.Background(), visitorA, q); !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("query %+v: err = %v", q, err)
		}
	}
}

func TestProperties_NearDraftKeepsOnlyNearbyProperties(t *testing.T) {
	api := &fakePropertiesAPI{all: []domain.Property{
		{ID: "paris", Location: domain.Location{Latitude: 48.86, Longitude: 2.35}},
		{ID: "london", Location: domain.Location{Latitude: 51.50, Longitude: -0.12}},
		{ID: "nowhere"},
	}}
	uc, _, drafts := newPropertiesFixture(api)
	ctx := context.Background()

	lat, lng := 48.8566, 2.3522
	if _, err := drafts.Save(ctx, visitorA, domain.SearchDraft{
		Location: domain.SearchLocation{Name: "Paris", Latitude: &lat, Longitude: &lng},
		Guests:   domain.DefaultGuestCount(),
	}); err != nil {
		t.Fatal(err)
	}

	listing, err := uc.List(ctx, visitorA, domain.PropertyQuery{NearDraft: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(listing.Properties) != 1 || listing.Properties[0].ID != "paris" {
		t.Errorf("nearby = %+v", listing.Properties)
	}

	// без черновика фильтр не применяется
	all, err := uc.List(ctx, visitorB, domain.PropertyQuery{NearDraft: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Properties) != 3 {
		t.Errorf("got %d properties without a draft", len(all.Properties))
	}
}

func TestProperties_GetUnknownIsNotFound(t *testing.T) {
	uc, _, _ := newPropertiesFixture(&fakePropertiesAPI{all: []domain.Property{{ID: "1", PriceUSD: 10}}})
	ctx := context.Background()

	if _, err := uc.Get(ctx, visitorA, "2"); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("err = %v", err)
	}
	p, err := uc.Get(ctx, visitorA, "1")
	if err != nil || p.Price.Amount != 10 || p.Price.Currency != "USD" {
		t.Errorf("property = %+v, %v", p, err)
	}
}
