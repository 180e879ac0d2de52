package rest

import (
	"net/http"

	"rental-bff/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// ListBookings обрабатывает GET /api/v1/bookings
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ListBookings")

	bookings, err := h.bookings.List(r.Context(), visitorFrom(r))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve bookings")
		return
	}
	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// GetBooking обрабатывает GET /api/v1/bookings/{bookingID}
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetBooking")

	booking, err := h.bookings.Get(r.Context(), visitorFrom(r), chi.URLParam(r, "bookingID"))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve booking")
		return
	}
	RespondWithJSON(w, http.StatusOK, toBookingResponse(*booking))
}

// CreateBooking обрабатывает POST /api/v1/bookings
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "CreateBooking")

	var req CreateBookingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	bookingReq, err := req.toDomain()
	if err != nil {
		writeUseCaseError(w, logger, err, "Invalid booking request")
		return
	}

	id, err := h.bookings.Create(r.Context(), visitorFrom(r), bookingReq)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to create booking")
		return
	}
	RespondWithJSON(w, http.StatusCreated, BookingCreatedResponse{BookingID: id})
}

// GetProfile обрабатывает GET /api/v1/profile
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetProfile")

	profile, err := h.profile.Get(r.Context(), visitorFrom(r))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve profile")
		return
	}
	RespondWithJSON(w, http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile обрабатывает PUT /api/v1/profile
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "UpdateProfile")

	var req UpdateProfileRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile, err := h.profile.Update(r.Context(), visitorFrom(r), domain.ProfileUpdate{
		Name:      req.Name,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to update profile")
		return
	}
	RespondWithJSON(w, http.StatusOK, toProfileResponse(profile))
}
