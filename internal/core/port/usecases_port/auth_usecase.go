package usecases_port

import (
	"context"

	"rental-bff/internal/core/domain"

	"github.com/google/uuid"
)

type AuthUseCasePort interface {
	Login(ctx context.Context, visitorID uuid.UUID, creds domain.Credentials) (*domain.AuthResult, error)
	Register(ctx context.Context, visitorID uuid.UUID, reg domain.Registration) (*domain.RegistrationStarted, error)
	VerifyOTP(ctx context.Context, visitorID uuid.UUID, code string) (*domain.OTPSubmission, error)
	ResendOTP(ctx context.Context, visitorID uuid.UUID) (*domain.OTPFlow, error)
	OTPState(ctx context.Context, visitorID uuid.UUID) (*domain.OTPFlow, error)
	CompleteRegistration(ctx context.Context, visitorID uuid.UUID, details domain.RegistrationDetails) (*domain.AuthResult, error)
	Logout(ctx context.Context, v domain.Visitor) error
	Session(ctx context.Context, token string) (*domain.AuthSession, error)
}
