package port

import (
	"context"
	"rental-bff/internal/core/domain"
)

// Порты PHP-бэкенда маркетплейса. Ошибка возвращается при сбое транспорта или не-2xx статусе,
// бизнес-отказы приходят в success/message внутри Data.

type PropertiesAPIPort interface {
	ListProperties(ctx context.Context) (*domain.Response[domain.PropertiesPage], error)
	FilterProperties(ctx context.Context, query domain.PropertyQuery) (*domain.Response[domain.PropertiesPage], error)
	GetProperty(ctx context.Context, propertyID string) (*domain.Response[domain.PropertyDetails], error)
	ListHostProperties(ctx context.Context, hostID string) (*domain.Response[domain.PropertiesPage], error)
	ListRelevantProperties(ctx context.Context, propertyID string) (*domain.Response[domain.PropertiesPage], error)
	GetHost(ctx context.Context, hostID string) (*domain.Response[domain.HostDetails], error)
	ListEvents(ctx context.Context) (*domain.Response[domain.EventsPage], error)
}

type AuthAPIPort interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Response[domain.LoginResult], error)
	Register(ctx context.Context, reg domain.Registration) (*domain.Response[domain.RegistrationResult], error)
	VerifyOTP(ctx context.Context, email, code string) (*domain.Response[domain.OTPVerification], error)
	ResendOTP(ctx context.Context, email string) (*domain.Response[domain.BackendStatus], error)
	CompleteRegistration(ctx context.Context, email string, details domain.RegistrationDetails) (*domain.Response[domain.LoginResult], error)
	Logout(ctx context.Context) (*domain.Response[domain.BackendStatus], error)
}

type ProfileAPIPort interface {
	GetProfile(ctx context.Context) (*domain.Response[domain.ProfileDetails], error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Response[domain.ProfileDetails], error)
}

type WishlistAPIPort interface {
	ListWishlists(ctx context.Context) (*domain.Response[domain.WishlistsPage], error)
	CreateWishlist(ctx context.Context, name string) (*domain.Response[domain.WishlistDetails], error)
	AddPropertyToWishlist(ctx context.Context, wishlistID, propertyID string) (*domain.Response[domain.BackendStatus], error)
	RemovePropertyFromWishlist(ctx context.Context, wishlistID, propertyID string) (*domain.Response[domain.BackendStatus], error)
	DeleteWishlist(ctx context.Context, wishlistID string) (*domain.Response[domain.BackendStatus], error)
	SyncWishlists(ctx context.Context, items []domain.WishlistSyncItem) (*domain.Response[domain.WishlistsPage], error)
}

type BookingAPIPort interface {
	ListBookings(ctx context.Context) (*domain.Response[domain.BookingsPage], error)
	GetBooking(ctx context.Context, bookingID string) (*domain.Response[domain.BookingDetails], error)
	CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.Response[domain.BookingCreated], error)
}

// BackendSessionPort - управление cookie бэкенд-сессии посетителя.
type BackendSessionPort interface {
	ClearSession(ctx context.Context) error
}
