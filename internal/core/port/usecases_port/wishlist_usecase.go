package usecases_port

import (
	"context"

	"rental-bff/internal/core/domain"
)

type WishlistUseCasePort interface {
	List(ctx context.Context, v domain.Visitor) (domain.WishlistCollection, error)
	Create(ctx context.Context, v domain.Visitor, name string) (*domain.Wishlist, error)
	Delete(ctx context.Context, v domain.Visitor, wishlistID string) error
	AddProperty(ctx context.Context, v domain.Visitor, wishlistID, propertyID string) error
	RemoveProperty(ctx context.Context, v domain.Visitor, wishlistID, propertyID string) error
	Toggle(ctx context.Context, v domain.Visitor, propertyID string) (domain.WishlistToggle, error)
	IsSaved(ctx context.Context, v domain.Visitor, propertyID string) (bool, error)
	Sync(ctx context.Context, v domain.Visitor) (domain.WishlistCollection, error)
}
