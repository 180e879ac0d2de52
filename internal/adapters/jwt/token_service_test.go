package token_adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-bff/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret", "")
	if err != nil {
		t.Fatal(err)
	}
	session := domain.AuthSession{Role: domain.RoleHost, Email: "h@example.com", Name: "Hal", UserID: "17"}

	token, err := svc.GenerateToken(context.Background(), session, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatal(err)
	}
	if *got != session {
		t.Errorf("got %+v, want %+v", *got, session)
	}
}

func TestTokenService_RejectsExpiredAndForeignTokens(t *testing.T) {
	svc, _ := NewTokenService("secret", "rental-bff")
	other, _ := NewTokenService("another-secret", "rental-bff")
	session := domain.AuthSession{Role: domain.RoleGuest, UserID: "1"}

	foreign, _ := other.GenerateToken(context.Background(), session, time.Hour)
	if _, err := svc.ValidateToken(context.Background(), foreign); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("foreign token: err = %v", err)
	}

	token, _ := svc.GenerateToken(context.Background(), session, time.Minute)
	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("expired token: err = %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), "garbage"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("garbage token: err = %v", err)
	}
}

func TestNewTokenService_EmptyKey(t *testing.T) {
	if _, err := NewTokenService("", ""); err == nil {
		t.Error("expected error for empty signing key")
	}
}
