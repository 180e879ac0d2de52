package usecase

import (
	"context"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"

	"github.com/google/uuid"
)

// GetLocalWishlists читает локальную коллекцию посетителя. Отсутствие, испорченный JSON
// или сбой чтения дают пустую коллекцию, ошибки нет.
func GetLocalWishlists(ctx context.Context, storage port.ClientStoragePort, visitorID uuid.UUID) domain.WishlistCollection {
	var collection domain.WishlistCollection
	found, err := jsonStore{storage: storage}.load(ctx, domain.VisitorNamespace(visitorID), domain.KeyWishlists, &collection)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to read local wishlists", port.Fields{"error": err.Error()})
		return domain.WishlistCollection{}
	}
	if !found || collection == nil {
		return domain.WishlistCollection{}
	}
	return collection.Normalize()
}

// SaveLocalWishlists сохраняет коллекцию целиком. Ошибка записи возвращается вызывающему.
func SaveLocalWishlists(ctx context.Context, storage port.ClientStoragePort, visitorID uuid.UUID, collection domain.WishlistCollection) error {
	if collection == nil {
		collection = domain.WishlistCollection{}
	}
	for i := range collection {
		if collection[i].Properties == nil {
			collection[i].Properties = []string{}
		}
	}
	return jsonStore{storage: storage}.save(ctx, domain.VisitorNamespace(visitorID), domain.KeyWishlists, collection)
}
