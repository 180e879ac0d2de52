package rest

import (
	"net/http"
)

// GetTheme обрабатывает GET /api/v1/preferences/theme
func (h *Handlers) GetTheme(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r)
	RespondWithJSON(w, http.StatusOK, ThemeResponse{Theme: h.theme.Get(r.Context(), v.ID)})
}

// SetTheme обрабатывает PUT /api/v1/preferences/theme
func (h *Handlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "SetTheme")
	v := visitorFrom(r)

	var req ThemeRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	theme, err := h.theme.Set(r.Context(), v.ID, req.Theme)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to save theme")
		return
	}
	RespondWithJSON(w, http.StatusOK, ThemeResponse{Theme: theme})
}

// GetSearchDraft обрабатывает GET /api/v1/search-draft
func (h *Handlers) GetSearchDraft(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r)
	RespondWithJSON(w, http.StatusOK, toSearchDraftDTO(h.drafts.Get(r.Context(), v.ID)))
}

// SaveSearchDraft обрабатывает PUT /api/v1/search-draft
func (h *Handlers) SaveSearchDraft(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "SaveSearchDraft")
	v := visitorFrom(r)

	var req SearchDraftDTO
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	draft, err := req.toDomain()
	if err != nil {
		writeUseCaseError(w, logger, err, "Invalid search draft")
		return
	}
	saved, err := h.drafts.Save(r.Context(), v.ID, draft)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to save search draft")
		return
	}
	RespondWithJSON(w, http.StatusOK, toSearchDraftDTO(saved))
}

// ClearSearchDraft обрабатывает DELETE /api/v1/search-draft
func (h *Handlers) ClearSearchDraft(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r)
	h.drafts.Clear(r.Context(), v.ID)
	w.WriteHeader(http.StatusNoContent)
}
