package usecases_port

import (
	"context"

	"rental-bff/internal/core/domain"

	"github.com/google/uuid"
)

type PropertiesUseCasePort interface {
	List(ctx context.Context, visitorID uuid.UUID, query domain.PropertyQuery) (*domain.PropertyListing, error)
	Get(ctx context.Context, visitorID uuid.UUID, propertyID string) (*domain.PricedProperty, error)
	Relevant(ctx context.Context, visitorID uuid.UUID, propertyID string) (*domain.PropertyListing, error)
	HostProperties(ctx context.Context, visitorID uuid.UUID, hostID string) (*domain.PropertyListing, error)
	Host(ctx context.Context, hostID string) (*domain.Host, error)
	Events(ctx context.Context) ([]domain.Event, error)
}

type BookingUseCasePort interface {
	List(ctx context.Context, v domain.Visitor) ([]domain.Booking, error)
	Get(ctx context.Context, v domain.Visitor, bookingID string) (*domain.Booking, error)
	Create(ctx context.Context, v domain.Visitor, req domain.BookingRequest) (string, error)
}

type ProfileUseCasePort interface {
	Get(ctx context.Context, v domain.Visitor) (*domain.Profile, error)
	Update(ctx context.Context, v domain.Visitor, update domain.ProfileUpdate) (*domain.Profile, error)
}
