package rest

import (
	"net/http"

	"rental-bff/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// ListWishlists обрабатывает GET /api/v1/wishlists
func (h *Handlers) ListWishlists(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ListWishlists")
	v := visitorFrom(r)

	lists, err := h.wishlists.List(r.Context(), v)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve wishlists")
		return
	}
	RespondWithJSON(w, http.StatusOK, toWishlistsResponse(lists))
}

// CreateWishlist обрабатывает POST /api/v1/wishlists
func (h *Handlers) CreateWishlist(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "CreateWishlist")
	v := visitorFrom(r)

	var req CreateWishlistRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.wishlists.Create(r.Context(), v, req.ListName)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to create wishlist")
		return
	}
	RespondWithJSON(w, http.StatusCreated, toWishlistResponse(*created))
}

// DeleteWishlist обрабатывает DELETE /api/v1/wishlists/{wishlistID}
func (h *Handlers) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "DeleteWishlist")
	v := visitorFrom(r)

	if err := h.wishlists.Delete(r.Context(), v, chi.URLParam(r, "wishlistID")); err != nil {
		writeUseCaseError(w, logger, err, "Failed to delete wishlist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddToWishlist обрабатывает POST /api/v1/wishlists/{wishlistID}/properties
func (h *Handlers) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "AddToWishlist")
	v := visitorFrom(r)

	var req PropertyRefRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.wishlists.AddProperty(r.Context(), v, chi.URLParam(r, "wishlistID"), req.PropertyID); err != nil {
		writeUseCaseError(w, logger, err, "Failed to add property to wishlist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFromWishlist обрабатывает DELETE /api/v1/wishlists/{wishlistID}/properties/{propertyID}
func (h *Handlers) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "RemoveFromWishlist")
	v := visitorFrom(r)

	err := h.wishlists.RemoveProperty(r.Context(), v, chi.URLParam(r, "wishlistID"), chi.URLParam(r, "propertyID"))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to remove property from wishlist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleWishlist обрабатывает POST /api/v1/wishlists/toggle
func (h *Handlers) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ToggleWishlist")
	v := visitorFrom(r)

	var req PropertyRefRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.wishlists.Toggle(r.Context(), v, req.PropertyID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to update wishlist")
		return
	}
	RespondWithJSON(w, http.StatusOK, WishlistToggleResponse{
		WishlistID: result.WishlistID,
		PropertyID: result.PropertyID,
		Saved:      result.Saved,
	})
}

// IsSaved обрабатывает GET /api/v1/wishlists/contains/{propertyID}
func (h *Handlers) IsSaved(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "IsSaved")
	v := visitorFrom(r)
	propertyID := chi.URLParam(r, "propertyID")

	saved, err := h.wishlists.IsSaved(r.Context(), v, propertyID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to check wishlist")
		return
	}
	RespondWithJSON(w, http.StatusOK, ContainsResponse{PropertyID: propertyID, Saved: saved})
}

// SyncWishlists обрабатывает POST /api/v1/wishlists/sync
func (h *Handlers) SyncWishlists(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "SyncWishlists")
	v := visitorFrom(r)

	lists, err := h.wishlists.Sync(r.Context(), v)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to sync wishlists")
		return
	}
	logger.Info("Wishlists synced", port.Fields{"count": len(lists)})
	RespondWithJSON(w, http.StatusOK, toWishlistsResponse(lists))
}
