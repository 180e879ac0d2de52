package rest

import (
	"net/http"
	"strconv"
	"strings"

	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// parsePropertyQuery читает фильтры выдачи из query string.
func parsePropertyQuery(r *http.Request) (domain.PropertyQuery, error) {
	q := r.URL.Query()
	query := domain.PropertyQuery{
		Location: strings.TrimSpace(q.Get("location")),
		Sort:     q.Get("sort"),
	}

	var err error
	if s := q.Get("min_price"); s != "" {
		if query.MinPrice, err = strconv.ParseFloat(s, 64); err != nil {
			return query, domain.ErrInvalidQuery
		}
	}
	if s := q.Get("max_price"); s != "" {
		if query.MaxPrice, err = strconv.ParseFloat(s, 64); err != nil {
			return query, domain.ErrInvalidQuery
		}
	}
	if s := q.Get("guests"); s != "" {
		if query.Guests, err = strconv.Atoi(s); err != nil {
			return query, domain.ErrInvalidQuery
		}
	}
	if s := q.Get("bedrooms"); s != "" {
		if query.Bedrooms, err = strconv.Atoi(s); err != nil {
			return query, domain.ErrInvalidQuery
		}
	}
	if s := q.Get("near_draft"); s != "" {
		if query.NearDraft, err = strconv.ParseBool(s); err != nil {
			return query, domain.ErrInvalidQuery
		}
	}
	for _, a := range strings.Split(q.Get("amenities"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			query.Amenities = append(query.Amenities, a)
		}
	}
	return query, nil
}

// ListProperties обрабатывает GET /api/v1/properties
func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ListProperties")
	v := visitorFrom(r)

	query, err := parsePropertyQuery(r)
	if err != nil {
		writeUseCaseError(w, logger, err, "Invalid filters")
		return
	}
	logger.Debug("Processing request to list properties", port.Fields{"location": query.Location, "sort": query.Sort})

	listing, err := h.properties.List(r.Context(), v.ID, query)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve properties")
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingResponse(listing))
}

// GetProperty обрабатывает GET /api/v1/properties/{propertyID}
func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetProperty")
	v := visitorFrom(r)

	property, err := h.properties.Get(r.Context(), v.ID, chi.URLParam(r, "propertyID"))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve property")
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property))
}

// GetRelevantProperties обрабатывает GET /api/v1/properties/{propertyID}/relevant
func (h *Handlers) GetRelevantProperties(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetRelevantProperties")
	v := visitorFrom(r)

	listing, err := h.properties.Relevant(r.Context(), v.ID, chi.URLParam(r, "propertyID"))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve relevant properties")
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingResponse(listing))
}

// GetHost обрабатывает GET /api/v1/hosts/{hostID}
func (h *Handlers) GetHost(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetHost")

	host, err := h.properties.Host(r.Context(), chi.URLParam(r, "hostID"))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve host")
		return
	}
	RespondWithJSON(w, http.StatusOK, HostResponse{
		ID:           host.ID,
		Name:         host.Name,
		AvatarURL:    host.AvatarURL,
		Bio:          host.Bio,
		Superhost:    host.Superhost,
		ResponseRate: host.ResponseRate,
		JoinedAt:     host.JoinedAt,
	})
}

// GetHostProperties обрабатывает GET /api/v1/hosts/{hostID}/properties
func (h *Handlers) GetHostProperties(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetHostProperties")
	v := visitorFrom(r)

	listing, err := h.properties.HostProperties(r.Context(), v.ID, chi.URLParam(r, "hostID"))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve host properties")
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingResponse(listing))
}

// ListEvents обрабатывает GET /api/v1/events
func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ListEvents")

	events, err := h.properties.Events(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve events")
		return
	}
	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, EventResponse{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			ImageURL:    e.ImageURL,
			StartsAt:    e.StartsAt,
		})
	}
	RespondWithJSON(w, http.StatusOK, resp)
}
