package backend_api_client

import (
	"context"
	"net/http"
	"net/url"

	"rental-bff/internal/core/domain"
)

func (c *Client) ListBookings(ctx context.Context) (*domain.Response[domain.BookingsPage], error) {
	var dto bookingsResponse
	status, err := c.do(ctx, "ListBookings", http.MethodGet, "/bookings/get_bookings.php", nil, nil, &dto)
	if err != nil {
		return nil, err
	}
	page := domain.BookingsPage{BackendStatus: dto.statusDTO.toDomain(), Bookings: make([]domain.Booking, 0, len(dto.Bookings))}
	for _, b := range dto.Bookings {
		page.Bookings = append(page.Bookings, b.toDomain())
	}
	return &domain.Response[domain.BookingsPage]{Status: status, Data: page}, nil
}

func (c *Client) GetBooking(ctx context.Context, bookingID string) (*domain.Response[domain.BookingDetails], error) {
	var dto bookingResponse
	status, err := c.do(ctx, "GetBooking", http.MethodGet, "/bookings/get_booking.php", url.Values{"id": {bookingID}}, nil, &dto)
	if err != nil {
		return nil, err
	}
	details := domain.BookingDetails{BackendStatus: dto.statusDTO.toDomain()}
	if dto.Booking != nil {
		b := dto.Booking.toDomain()
		details.Booking = &b
	}
	return &domain.Response[domain.BookingDetails]{Status: status, Data: details}, nil
}

func (c *Client) CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.Response[domain.BookingCreated], error) {
	var dto createBookingResponse
	body := createBookingRequest{
		PropertyID: req.PropertyID,
		CheckIn:    req.CheckIn.Format("2006-01-02"),
		CheckOut:   req.CheckOut.Format("2006-01-02"),
		Guests:     req.Guests,
		Message:    req.Message,
	}
	status, err := c.do(ctx, "CreateBooking", http.MethodPost, "/bookings/create_booking.php", nil, body, &dto)
	if err != nil {
		return nil, err
	}
	created := domain.BookingCreated{BackendStatus: dto.statusDTO.toDomain(), BookingID: string(dto.BookingID)}
	return &domain.Response[domain.BookingCreated]{Status: status, Data: created}, nil
}
