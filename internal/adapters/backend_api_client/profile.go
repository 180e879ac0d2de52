package backend_api_client

import (
	"context"
	"net/http"

	"rental-bff/internal/core/domain"
)

func (c *Client) GetProfile(ctx context.Context) (*domain.Response[domain.ProfileDetails], error) {
	var dto profileResponse
	status, err := c.do(ctx, "GetProfile", http.MethodGet, "/profile/get_profile.php", nil, nil, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.ProfileDetails]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Response[domain.ProfileDetails], error) {
	var dto profileResponse
	req := updateProfileRequest{Name: update.Name, Phone: update.Phone, AvatarURL: update.AvatarURL, Bio: update.Bio}
	status, err := c.do(ctx, "UpdateProfile", http.MethodPost, "/profile/update_profile.php", nil, req, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.ProfileDetails]{Status: status, Data: dto.toDomain()}, nil
}
