package backend_api_client

import (
	"context"
	"net/http"

	"rental-bff/internal/core/domain"
)

func (c *Client) ListWishlists(ctx context.Context) (*domain.Response[domain.WishlistsPage], error) {
	var dto wishlistsResponse
	status, err := c.do(ctx, "ListWishlists", http.MethodGet, "/wishlists/get_wishlists.php", nil, nil, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.WishlistsPage]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) CreateWishlist(ctx context.Context, name string) (*domain.Response[domain.WishlistDetails], error) {
	var dto wishlistResponse
	status, err := c.do(ctx, "CreateWishlist", http.MethodPost, "/wishlists/create_wishlist.php", nil, createWishlistRequest{ListName: name}, &dto)
	if err != nil {
		return nil, err
	}
	details := domain.WishlistDetails{BackendStatus: dto.statusDTO.toDomain()}
	if dto.Wishlist != nil {
		w := dto.Wishlist.toDomain()
		details.Wishlist = &w
	}
	return &domain.Response[domain.WishlistDetails]{Status: status, Data: details}, nil
}

func (c *Client) AddPropertyToWishlist(ctx context.Context, wishlistID, propertyID string) (*domain.Response[domain.BackendStatus], error) {
	var dto statusDTO
	req := wishlistPropertyRequest{WishlistID: wishlistID, PropertyID: propertyID}
	status, err := c.do(ctx, "AddPropertyToWishlist", http.MethodPost, "/wishlists/add_to_wishlist.php", nil, req, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.BackendStatus]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) RemovePropertyFromWishlist(ctx context.Context, wishlistID, propertyID string) (*domain.Response[domain.BackendStatus], error) {
	var dto statusDTO
	req := wishlistPropertyRequest{WishlistID: wishlistID, PropertyID: propertyID}
	status, err := c.do(ctx, "RemovePropertyFromWishlist", http.MethodPost, "/wishlists/remove_from_wishlist.php", nil, req, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.BackendStatus]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) DeleteWishlist(ctx context.Context, wishlistID string) (*domain.Response[domain.BackendStatus], error) {
	var dto statusDTO
	status, err := c.do(ctx, "DeleteWishlist", http.MethodPost, "/wishlists/delete_wishlist.php", nil, deleteWishlistRequest{WishlistID: wishlistID}, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.BackendStatus]{Status: status, Data: dto.toDomain()}, nil
}

// SyncWishlists выгружает локальные списки; в ответе бэкенд возвращает итоговое состояние.
func (c *Client) SyncWishlists(ctx context.Context, items []domain.WishlistSyncItem) (*domain.Response[domain.WishlistsPage], error) {
	if items == nil {
		items = []domain.WishlistSyncItem{}
	}
	var dto wishlistsResponse
	status, err := c.do(ctx, "SyncWishlists", http.MethodPost, "/wishlists/sync_wishlists.php", nil, syncWishlistsRequest{Wishlists: items}, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.WishlistsPage]{Status: status, Data: dto.toDomain()}, nil
}
