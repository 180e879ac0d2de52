package rest

import (
	"net/http"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/port"
	"rental-bff/internal/core/port/usecases_port"
)

// Handlers - обработчики REST API поверх use case'ов.
type Handlers struct {
	currency   usecases_port.CurrencyUseCasePort
	theme      usecases_port.ThemeUseCasePort
	drafts     usecases_port.SearchDraftUseCasePort
	properties usecases_port.PropertiesUseCasePort
	auth       usecases_port.AuthUseCasePort
	wishlists  usecases_port.WishlistUseCasePort
	bookings   usecases_port.BookingUseCasePort
	profile    usecases_port.ProfileUseCasePort

	secureCookies bool
	now           func() time.Time
}

type HandlersDeps struct {
	Currency   usecases_port.CurrencyUseCasePort
	Theme      usecases_port.ThemeUseCasePort
	Drafts     usecases_port.SearchDraftUseCasePort
	Properties usecases_port.PropertiesUseCasePort
	Auth       usecases_port.AuthUseCasePort
	Wishlists  usecases_port.WishlistUseCasePort
	Bookings   usecases_port.BookingUseCasePort
	Profile    usecases_port.ProfileUseCasePort
	// SecureCookies выставляет флаг Secure на cookie сессии (HTTPS).
	SecureCookies bool
}

func NewHandlers(deps HandlersDeps) *Handlers {
	return &Handlers{
		currency:      deps.Currency,
		theme:         deps.Theme,
		drafts:        deps.Drafts,
		properties:    deps.Properties,
		auth:          deps.Auth,
		wishlists:     deps.Wishlists,
		bookings:      deps.Bookings,
		profile:       deps.Profile,
		secureCookies: deps.SecureCookies,
		now:           time.Now,
	}
}

func handlerLogger(r *http.Request, name string) port.LoggerPort {
	return contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": name})
}

// Health обрабатывает GET /api/v1/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
