package usecase

import (
	"context"
	"fmt"
	"strings"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"

	"github.com/google/uuid"
)

// PriceConverter - пересчет цен в валюту посетителя.
type PriceConverter interface {
	LoadRates(ctx context.Context) domain.RatesView
	Selection(ctx context.Context, visitorID uuid.UUID) domain.CurrencySelection
	ConvertTo(ctx context.Context, priceUSD float64, code string) domain.Conversion
}

// DraftReader - черновик поиска для фильтра "рядом".
type DraftReader interface {
	Get(ctx context.Context, visitorID uuid.UUID) domain.SearchDraft
}

// PropertiesUseCase - выдача объектов, карточки, хозяева и события.
// Фильтры уходят на бэкенд, сортировка и фильтр по близости выполняются локально.
type PropertiesUseCase struct {
	api      port.PropertiesAPIPort
	currency PriceConverter
	drafts   DraftReader
}

func NewPropertiesUseCase(api port.PropertiesAPIPort, currency PriceConverter, drafts DraftReader) *PropertiesUseCase {
	return &PropertiesUseCase{api: api, currency: currency, drafts: drafts}
}

func (uc *PropertiesUseCase) List(ctx context.Context, visitorID uuid.UUID, query domain.PropertyQuery) (*domain.PropertyListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ListProperties",
		"visitor_id": visitorID.String(),
	})

	if !domain.IsValidSort(query.Sort) || query.MinPrice < 0 || query.MaxPrice < 0 ||
		(query.MaxPrice > 0 && query.MinPrice > query.MaxPrice) || query.Guests < 0 {
		return nil, domain.ErrInvalidQuery
	}

	var (
		resp *domain.Response[domain.PropertiesPage]
		err  error
	)
	if query.HasServerFilters() {
		resp, err = uc.api.FilterProperties(ctx, query)
	} else {
		resp, err = uc.api.ListProperties(ctx)
	}
	if err != nil {
		ucLogger.Error("Failed to load properties", err, nil)
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	if err := resp.Data.AsError("list properties"); err != nil {
		return nil, err
	}

	props := resp.Data.Properties
	if query.NearDraft {
		draft := uc.drafts.Get(ctx, visitorID)
		if gh := draft.Location.Geohash; len(gh) >= domain.NearbyGeohashLength {
			props = domain.FilterNear(props, gh[:domain.NearbyGeohashLength])
		}
	}
	domain.SortProperties(props, query.Sort)

	listing := uc.price(ctx, visitorID, props)
	ucLogger.Info("Properties listed", port.Fields{"count": len(listing.Properties)})
	return listing, nil
}

func (uc *PropertiesUseCase) price(ctx context.Context, visitorID uuid.UUID, props []domain.Property) *domain.PropertyListing {
	rates := uc.currency.LoadRates(ctx)
	code := uc.currency.Selection(ctx, visitorID).Currency

	priced := make([]domain.PricedProperty, 0, len(props))
	for _, p := range props {
		priced = append(priced, domain.PricedProperty{Property: p, Price: uc.currency.ConvertTo(ctx, p.PriceUSD, code)})
	}
	return &domain.PropertyListing{Properties: priced, Currency: code, RatesStatus: rates.Status}
}

func (uc *PropertiesUseCase) Get(ctx context.Context, visitorID uuid.UUID, propertyID string) (*domain.PricedProperty, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, domain.ErrPropertyNotFound
	}
	resp, err := uc.api.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if resp.Data.Failed() && resp.Data.Message != "" {
		return nil, resp.Data.AsError("get property")
	}
	if resp.Data.Failed() || resp.Data.Property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	listing := uc.price(ctx, visitorID, []domain.Property{*resp.Data.Property})
	return &listing.Properties[0], nil
}

func (uc *PropertiesUseCase) Relevant(ctx context.Context, visitorID uuid.UUID, propertyID string) (*domain.PropertyListing, error) {
	resp, err := uc.api.ListRelevantProperties(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load relevant properties: %w", err)
	}
	if err := resp.Data.AsError("relevant properties"); err != nil {
		return nil, err
	}
	return uc.price(ctx, visitorID, resp.Data.Properties), nil
}

func (uc *PropertiesUseCase) HostProperties(ctx context.Context, visitorID uuid.UUID, hostID string) (*domain.PropertyListing, error) {
	resp, err := uc.api.ListHostProperties(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load host properties: %w", err)
	}
	if err := resp.Data.AsError("host properties"); err != nil {
		return nil, err
	}
	return uc.price(ctx, visitorID, resp.Data.Properties), nil
}

func (uc *PropertiesUseCase) Host(ctx context.Context, hostID string) (*domain.Host, error) {
	resp, err := uc.api.GetHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load host: %w", err)
	}
	if resp.Data.Failed() || resp.Data.Host == nil {
		return nil, domain.ErrHostNotFound
	}
	return resp.Data.Host, nil
}

func (uc *PropertiesUseCase) Events(ctx context.Context) ([]domain.Event, error) {
	resp, err := uc.api.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	if err := resp.Data.AsError("list events"); err != nil {
		return nil, err
	}
	return resp.Data.Events, nil
}
