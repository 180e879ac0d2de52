package domain

import (
	"errors"
	"testing"
	"time"
)

func TestValidateOTPCode(t *testing.T) {
	valid := []string{"000000", "123456", "999999"}
	invalid := []string{"", "12345", "1234567", "12345a", " 12345", "１２３４５６"}
	for _, code := range valid {
		if err := ValidateOTPCode(code); err != nil {
			t.Errorf("%q: %v", code, err)
		}
	}
	for _, code := range invalid {
		if err := ValidateOTPCode(code); !errors.Is(err, ErrInvalidOTPFormat) {
			t.Errorf("%q accepted", code)
		}
	}
}

func TestOTPFlow_Transitions(t *testing.T) {
	f := NewOTPFlow(" a@b.c ")
	if f.Email != "a@b.c" || f.State != OTPIdle {
		t.Fatalf("new flow = %+v", f)
	}

	if err := f.BeginSubmit("123"); !errors.Is(err, ErrInvalidOTPFormat) || f.State != OTPIdle {
		t.Errorf("bad code: state = %s, err = %v", f.State, err)
	}
	if err := f.BeginSubmit("123456"); err != nil || f.State != OTPSubmitted || f.Message != "" {
		t.Fatalf("submit: %+v, %v", f, err)
	}
	if err := f.BeginSubmit("123456"); !errors.Is(err, ErrOTPInProgress) {
		t.Errorf("double submit: %v", err)
	}

	f.Fail("")
	if f.State != OTPFailed || f.Message != OTPFailedFallbackMessage || f.Code != "123456" {
		t.Errorf("failed = %+v", f)
	}

	if err := f.BeginSubmit("654321"); err != nil {
		t.Fatal(err)
	}
	f.Verify("ok", true)
	if f.State != OTPVerified || !f.RequiresDetails {
		t.Errorf("verified = %+v", f)
	}
	if err := f.BeginSubmit("654321"); !errors.Is(err, ErrOTPAlreadyVerified) {
		t.Errorf("submit after verify: %v", err)
	}
}

func TestOTPFlow_RecoverOnlyTouchesSubmitted(t *testing.T) {
	deadline := time.Date(2024, 5, 1, 12, 1, 0, 0, time.UTC)
	f := &OTPFlow{Email: "a@b.c", State: OTPSubmitted, Code: "123456", ResendAvailableAt: deadline}
	f.Recover()
	if f.State != OTPFailed || f.Code != "123456" || !f.ResendAvailableAt.Equal(deadline) {
		t.Errorf("recovered = %+v", f)
	}

	verified := &OTPFlow{State: OTPVerified, Message: "ok"}
	verified.Recover()
	if verified.State != OTPVerified || verified.Message != "ok" {
		t.Errorf("verified flow changed: %+v", verified)
	}
}

func TestOTPFlow_ResendTimer(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f := NewOTPFlow("a@b.c")
	if !f.CanResend(now) {
		t.Error("a fresh flow without a timer can resend")
	}

	f.StartResendTimer(now)
	if f.CanResend(now.Add(59 * time.Second)) {
		t.Error("resend allowed before 60s")
	}
	if got := RemainingSeconds(f.ResendRemaining(now.Add(30*time.Second + time.Millisecond))); got != 30 {
		t.Errorf("remaining = %d", got)
	}
	if !f.CanResend(now.Add(ResendCooldown)) {
		t.Error("resend blocked at 60s")
	}

	// повторный запуск переносит единственный дедлайн
	f.StartResendTimer(now.Add(10 * time.Second))
	if f.CanResend(now.Add(ResendCooldown)) {
		t.Error("restart did not move the deadline")
	}
}
