package rest

import (
	"net/http"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/port"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	// VisitorCookieName - подписанная cookie с id браузера.
	VisitorCookieName = "rental_visitor"
	visitorIDField    = "visitor_id"
)

// visitorCookieMaxAge - год: id браузера живет дольше любой сессии входа.
const visitorCookieMaxAge = 365 * 24 * 60 * 60

// NewVisitorStore создает хранилище подписанной cookie посетителя.
// Secure задается явно: по умолчанию gorilla/sessions выставляет его в true,
// и по обычному http браузер не вернул бы cookie.
func NewVisitorStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   visitorCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// VisitorMiddleware находит или выдает id посетителя. Вся клиентская память
// (выбор валюты, избранное, черновик поиска, cookie бэкенда) привязана к нему.
func VisitorMiddleware(store sessions.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := contextkeys.LoggerFromContext(r.Context())

			session, err := store.Get(r, VisitorCookieName)
			if err != nil {
				// подпись не сошлась (сменили ключ или cookie подделана): выдаем новый id
				logger.Warn("Visitor cookie rejected, issuing a new one", port.Fields{"error": err.Error()})
				session = sessions.NewSession(store, VisitorCookieName)
			}

			raw, _ := session.Values[visitorIDField].(string)
			visitorID, err := uuid.Parse(raw)
			if err != nil {
				visitorID = uuid.New()
				session.Values[visitorIDField] = visitorID.String()
				if err := session.Save(r, w); err != nil {
					logger.Error("Failed to save visitor cookie", err, nil)
					WriteJSONError(w, http.StatusInternalServerError, "Failed to initialize visitor session")
					return
				}
				logger.Debug("New visitor", port.Fields{"visitor_id": visitorID.String()})
			}

			ctx := contextkeys.ContextWithVisitorID(r.Context(), visitorID)
			ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"visitor_id": visitorID.String()}))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
