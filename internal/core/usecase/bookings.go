package usecase

import (
	"context"
	"fmt"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
)

// BookingUseCase - бронирования авторизованного пользователя.
type BookingUseCase struct {
	api       port.BookingAPIPort
	publisher port.ActivityPublisherPort
	now       func() time.Time
}

func NewBookingUseCase(api port.BookingAPIPort, publisher port.ActivityPublisherPort) *BookingUseCase {
	return &BookingUseCase{api: api, publisher: publisher, now: time.Now}
}

func (uc *BookingUseCase) List(ctx context.Context, v domain.Visitor) ([]domain.Booking, error) {
	if !v.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	resp, err := uc.api.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	if err := resp.Data.AsError("list bookings"); err != nil {
		return nil, err
	}
	return resp.Data.Bookings, nil
}

func (uc *BookingUseCase) Get(ctx context.Context, v domain.Visitor, bookingID string) (*domain.Booking, error) {
	if !v.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	resp, err := uc.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if resp.Data.Failed() || resp.Data.Booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	return resp.Data.Booking, nil
}

// Create проверяет даты и гостей до обращения к бэкенду.
func (uc *BookingUseCase) Create(ctx context.Context, v domain.Visitor, req domain.BookingRequest) (string, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "CreateBooking",
		"user_id":     v.UserID(),
		"property_id": req.PropertyID,
	})
	if !v.Authenticated() {
		return "", domain.ErrNotAuthenticated
	}
	if err := req.Validate(uc.now()); err != nil {
		return "", err
	}

	ucLogger.Info("Use case started", nil)
	resp, err := uc.api.CreateBooking(ctx, req)
	if err != nil {
		ucLogger.Error("Create booking request failed", err, nil)
		return "", fmt.Errorf("failed to create booking: %w", err)
	}
	if err := resp.Data.AsError("create booking"); err != nil {
		ucLogger.Info("Backend rejected booking", port.Fields{"message": resp.Data.Message})
		return "", err
	}

	publishActivity(ctx, uc.publisher, domain.ActivityBookingCreated, v, map[string]any{
		"booking_id":  resp.Data.BookingID,
		"property_id": req.PropertyID,
		"nights":      int(req.CheckOut.Sub(req.CheckIn).Hours() / 24),
	})
	ucLogger.Info("Use case finished successfully", port.Fields{"booking_id": resp.Data.BookingID})
	return resp.Data.BookingID, nil
}

// ProfileUseCase - профиль авторизованного пользователя.
type ProfileUseCase struct {
	api port.ProfileAPIPort
}

func NewProfileUseCase(api port.ProfileAPIPort) *ProfileUseCase {
	return &ProfileUseCase{api: api}
}

func (uc *ProfileUseCase) Get(ctx context.Context, v domain.Visitor) (*domain.Profile, error) {
	if !v.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	resp, err := uc.api.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if err := resp.Data.AsError("get profile"); err != nil {
		return nil, err
	}
	if resp.Data.Profile == nil {
		return nil, fmt.Errorf("get profile: backend returned no profile")
	}
	return resp.Data.Profile, nil
}

func (uc *ProfileUseCase) Update(ctx context.Context, v domain.Visitor, update domain.ProfileUpdate) (*domain.Profile, error) {
	if !v.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if update.IsEmpty() {
		return nil, domain.ErrInvalidProfile
	}
	resp, err := uc.api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := resp.Data.AsError("update profile"); err != nil {
		return nil, err
	}
	if resp.Data.Profile == nil {
		// Бэкенд может не вернуть профиль после обновления, перечитываем.
		return uc.Get(ctx, v)
	}
	return resp.Data.Profile, nil
}
