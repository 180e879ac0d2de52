package backend_api_client

import (
	"context"
	"net/http"

	"rental-bff/internal/core/domain"
)

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Response[domain.LoginResult], error) {
	var dto loginResponse
	req := loginRequest{Email: creds.Email, Password: creds.Password, Role: creds.Role}
	status, err := c.do(ctx, "Login", http.MethodPost, "/auth/login.php", nil, req, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.LoginResult]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.Response[domain.RegistrationResult], error) {
	var dto registerResponse
	req := registerRequest{Name: reg.Name, Email: reg.Email, Password: reg.Password, Role: reg.Role}
	status, err := c.do(ctx, "Register", http.MethodPost, "/auth/register.php", nil, req, &dto)
	if err != nil {
		return nil, err
	}
	result := domain.RegistrationResult{
		BackendStatus: dto.statusDTO.toDomain(),
		Email:         dto.Email,
		RequiresOTP:   bool(dto.RequiresOTP),
	}
	if result.Email == "" {
		result.Email = reg.Email
	}
	return &domain.Response[domain.RegistrationResult]{Status: status, Data: result}, nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*domain.Response[domain.OTPVerification], error) {
	var dto verifyOTPResponse
	status, err := c.do(ctx, "VerifyOTP", http.MethodPost, "/auth/verify_otp.php", nil, verifyOTPRequest{Email: email, OTP: code}, &dto)
	if err != nil {
		return nil, err
	}
	result := domain.OTPVerification{
		BackendStatus:             dto.statusDTO.toDomain(),
		RequiresAdditionalDetails: bool(dto.RequiresAdditionalDetails),
	}
	if dto.User != nil {
		result.Session = &domain.AuthSession{
			Role:   dto.User.Role,
			Email:  dto.User.Email,
			Name:   dto.User.Name,
			UserID: string(dto.User.ID),
		}
	}
	return &domain.Response[domain.OTPVerification]{Status: status, Data: result}, nil
}

func (c *Client) ResendOTP(ctx context.Context, email string) (*domain.Response[domain.BackendStatus], error) {
	var dto statusDTO
	status, err := c.do(ctx, "ResendOTP", http.MethodPost, "/auth/resend_otp.php", nil, emailRequest{Email: email}, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.BackendStatus]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) CompleteRegistration(ctx context.Context, email string, details domain.RegistrationDetails) (*domain.Response[domain.LoginResult], error) {
	var dto loginResponse
	req := completeRegistrationRequest{
		Email:     email,
		Name:      details.Name,
		Phone:     details.Phone,
		BirthDate: details.BirthDate,
		Country:   details.Country,
	}
	status, err := c.do(ctx, "CompleteRegistration", http.MethodPost, "/auth/complete_registration.php", nil, req, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.LoginResult]{Status: status, Data: dto.toDomain()}, nil
}

func (c *Client) Logout(ctx context.Context) (*domain.Response[domain.BackendStatus], error) {
	var dto statusDTO
	status, err := c.do(ctx, "Logout", http.MethodPost, "/auth/logout.php", nil, struct{}{}, &dto)
	if err != nil {
		return nil, err
	}
	return &domain.Response[domain.BackendStatus]{Status: status, Data: dto.toDomain()}, nil
}
