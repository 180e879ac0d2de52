package backend_api_client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"rental-bff/internal/core/domain"
)

func (c *Client) ListProperties(ctx context.Context) (*domain.Response[domain.PropertiesPage], error) {
	var dto propertiesResponse
	status, err := c.do(ctx, "ListProperties", http.MethodGet, "/properties/get_properties.php", nil, nil, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.PropertiesPage]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) FilterProperties(ctx context.Context, q domain.PropertyQuery) (*domain.Response[domain.PropertiesPage], error) {
	query := url.Values{}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		query.Set("location", loc)
	}
	if q.MinPrice > 0 {
		query.Set("min_price", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		query.Set("max_price", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.Guests > 0 {
		query.Set("guests", strconv.Itoa(q.Guests))
	}
	if q.Bedrooms > 0 {
		query.Set("bedrooms", strconv.Itoa(q.Bedrooms))
	}
	if len(q.Amenities) > 0 {
		query.Set("amenities", strings.Join(q.Amenities, ","))
	}

	var dto propertiesResponse
	status, err := c.do(ctx, "FilterProperties", http.MethodGet, "/properties/filter_properties.php", query, nil, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.PropertiesPage]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) GetProperty(ctx context.Context, propertyID string) (*domain.Response[domain.PropertyDetails], error) {
	var dto propertyResponse
	status, err := c.do(ctx, "GetProperty", http.MethodGet, "/properties/get_property.php", url.Values{"id": {propertyID}}, nil, &dto)
	if err != nil {
		return nil, err
	}
	details := domain.PropertyDetails{BackendStatus: dto.statusDTO.toDomain()}
	if dto.Property != nil {
		p := dto.Property.toDomain()
		details.Property = &p
	}
	return &domain.Response[domain.PropertyDetails]{Status: status, Data: details}, nil
}

func (c *Client) ListHostProperties(ctx context.Context, hostID string) (*domain.Response[domain.PropertiesPage], error) {
	var dto propertiesResponse
	status, err := c.do(ctx, "ListHostProperties", http.MethodGet, "/properties/get_host_properties.php", url.Values{"host_id": {hostID}}, nil, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.PropertiesPage]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) ListRelevantProperties(ctx context.Context, propertyID string) (*domain.Response[domain.PropertiesPage], error) {
	var dto propertiesResponse
	status, err := c.do(ctx, "ListRelevantProperties", http.MethodGet, "/properties/get_relevant_properties.php", url.Values{"property_id": {propertyID}}, nil, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.PropertiesPage]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) GetHost(ctx context.Context, hostID string) (*domain.Response[domain.HostDetails], error) {
	var dto hostResponse
	status, err := c.do(ctx, "GetHost", http.MethodGet, "/hosts/get_host.php", url.Values{"id": {hostID}}, nil, &dto)
	if err != nil {
		return nil, err
	}
	details := domain.HostDetails{BackendStatus: dto.statusDTO.toDomain()}
	if h := dto.Host; h != nil {
		details.Host = &domain.Host{
			ID:           string(h.ID),
			Name:         h.Name,
			AvatarURL:    h.AvatarURL,
			Bio:          h.Bio,
			Superhost:    bool(h.Superhost),
			ResponseRate: float64(h.ResponseRate),
			JoinedAt:     h.JoinedAt.Time(),
		}
	}
	return &domain.Response[domain.HostDetails]{Status: status, Data: details}, nil
}

func (c *Client) ListEvents(ctx context.Context) (*domain.Response[domain.EventsPage], error) {
	var dto eventsResponse
	status, err := c.do(ctx, "ListEvents", http.MethodGet, "/events/get_events.php", nil, nil, &dto)
	if err != nil {
		return nil, err
	}
	page := domain.EventsPage{BackendStatus: dto.statusDTO.toDomain(), Events: make([]domain.Event, 0, len(dto.Events))}
	for _, e := range dto.Events {
		page.Events = append(page.Events, domain.Event{
			ID:          string(e.ID),
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			ImageURL:    e.ImageURL,
			StartsAt:    e.StartsAt.Time(),
		})
	}
	return &domain.Response[domain.EventsPage]{Status: status, Data: page}, nil
}
