package domain

import "github.com/google/uuid"

// SharedNamespace - пространство хранилища, общее для всех посетителей.
const SharedNamespace = "shared"

// VisitorNamespace - пространство хранилища одного посетителя.
func VisitorNamespace(visitorID uuid.UUID) string {
	return visitorID.String()
}

// Ключи клиентского хранилища. Значения - JSON-строки.
const (
	KeySelectedCountry  = "selected_country"
	KeySelectedCurrency = "selected_currency"
	KeyExchangeRates    = "exchange_rates"
	KeySelectedLocation = "selected_location"
	KeySelectedDates    = "selected_dates"
	KeySelectedGuests   = "selected_guests"
	KeyWishlists        = "wishlists"
	KeyBackendSession   = "backend_session"
	KeyOTPFlow          = "otp_flow"
	KeyTheme            = "theme"
)

// Темы оформления.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
