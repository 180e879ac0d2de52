package domain

import (
	"strings"
	"time"
)

// Booking - бронирование, как его отдает бэкенд.
type Booking struct {
	ID            string
	PropertyID    string
	PropertyTitle string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	TotalPriceUSD float64
	Status        string
	CreatedAt     time.Time
}

// Nights - число ночей в бронировании.
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// BookingRequest - данные формы бронирования.
type BookingRequest struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	Message    string
}

// Validate - проверка формы до отправки на бэкенд.
func (r BookingRequest) Validate(now time.Time) error {
	if strings.TrimSpace(r.PropertyID) == "" {
		return ErrInvalidBooking
	}
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() || !r.CheckOut.After(r.CheckIn) {
		return ErrInvalidBooking
	}
	today := now.UTC().Truncate(24 * time.Hour)
	if r.CheckIn.UTC().Before(today) {
		return ErrInvalidBooking
	}
	if r.Guests < 1 {
		return ErrInvalidBooking
	}
	return nil
}

// BookingCreated - ответ бэкенда на создание бронирования.
type BookingCreated struct {
	BackendStatus
	BookingID string
}
