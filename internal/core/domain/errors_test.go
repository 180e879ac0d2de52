package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestUserMessageOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"backend", &BackendError{Operation: "login", Message: "Invalid password"}, "Invalid password"},
		{"wrapped backend", fmt.Errorf("%w: %w", ErrAuthenticationFailed, &BackendError{Message: "Nope"}), "Nope"},
		{"http status", &HTTPStatusError{StatusCode: 401, Message: "Unauthorized"}, "Unauthorized"},
		{"empty message", &BackendError{Operation: "login"}, "fallback"},
		{"plain", errors.New("boom"), "fallback"},
	}
	for _, tc := range cases {
		if got := UserMessageOf(tc.err, "fallback"); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRemainingSeconds(t *testing.T) {
	cases := map[time.Duration]int{
		-time.Second:                     0,
		0:                                0,
		time.Millisecond:                 1,
		time.Second:                      1,
		59*time.Second + time.Nanosecond: 60,
	}
	for d, want := range cases {
		if got := RemainingSeconds(d); got != want {
			t.Errorf("RemainingSeconds(%v) = %d, want %d", d, got, want)
		}
	}
}

func TestResendCooldownError(t *testing.T) {
	err := error(&ResendCooldownError{Remaining: 1500 * time.Millisecond})
	if !errors.Is(err, ErrResendUnavailable) {
		t.Error("cooldown must unwrap to ErrResendUnavailable")
	}
	if want := "resend is not available yet: try again in 2 seconds"; err.Error() != want {
		t.Errorf("message = %q", err.Error())
	}
}

func TestBookingRequest_Validate(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }

	ok := BookingRequest{PropertyID: "1", CheckIn: day(1), CheckOut: day(3), Guests: 1}
	if err := ok.Validate(now); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := []BookingRequest{
		{CheckIn: day(2), CheckOut: day(3), Guests: 1},
		{PropertyID: "1", CheckIn: day(3), CheckOut: day(3), Guests: 1},
		{PropertyID: "1", CheckIn: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), CheckOut: day(3), Guests: 1},
		{PropertyID: "1", CheckIn: day(2), CheckOut: day(3)},
	}
	for i, r := range bad {
		if !errors.Is(r.Validate(now), ErrInvalidBooking) {
			t.Errorf("case %d accepted", i)
		}
	}
	if (Booking{CheckIn: day(1), CheckOut: day(4)}).Nights() != 3 {
		t.Error("nights mismatch")
	}
}

func TestSearchDraft_NormalizeComputesGeohash(t *testing.T) {
	lat, lng := 57.64911, 10.40744
	d := SearchDraft{Location: SearchLocation{Name: "Skagen", Latitude: &lat, Longitude: &lng}, Guests: DefaultGuestCount()}
	if err := d.Normalize(); err != nil {
		t.Fatal(err)
	}
	if d.Location.Geohash != "u4pru" {
		t.Errorf("geohash = %q", d.Location.Geohash)
	}

	bad := 91.0
	d.Location.Latitude = &bad
	if err := d.Normalize(); !errors.Is(err, ErrInvalidSearchDraft) {
		t.Errorf("out-of-range latitude: %v", err)
	}
}
