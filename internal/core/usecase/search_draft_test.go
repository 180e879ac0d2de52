package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-bff/internal/core/domain"
)

func TestSearchDraft_SaveAndReload(t *testing.T) {
	storage := newFakeStorage()
	uc := NewSearchDraftUseCase(storage)
	ctx := context.Background()

	if got := uc.Get(ctx, visitorA); got.Guests.Adults != 1 || got.Location.Name != "" {
		t.Fatalf("default draft = %+v", got)
	}

	lat, lng := 48.8566, 2.3522
	in := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 5)
	saved, err := uc.Save(ctx, visitorA, domain.SearchDraft{
		Location: domain.SearchLocation{Name: " Paris ", Latitude: &lat, Longitude: &lng},
		Dates:    domain.SearchDates{CheckIn: &in, CheckOut: &out},
		Guests:   domain.GuestCount{Adults: 2, Children: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.Location.Name != "Paris" || len(saved.Location.Geohash) != domain.GeohashPrecision {
		t.Errorf("saved = %+v", saved.Location)
	}

	got := uc.Get(ctx, visitorA)
	if got.Location.Geohash != saved.Location.Geohash || got.Guests.Total() != 3 || !got.Dates.CheckOut.Equal(out) {
		t.Errorf("reloaded = %+v", got)
	}

	uc.Clear(ctx, visitorA)
	if got := uc.Get(ctx, visitorA); got.Location.Name != "" || got.Guests.Adults != 1 {
		t.Errorf("after clear = %+v", got)
	}
}

func TestSearchDraft_RejectsInvalid(t *testing.T) {
	uc := NewSearchDraftUseCase(newFakeStorage())
	lat := 10.0
	in := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	drafts := map[string]domain.SearchDraft{
		"latitude only":  {Location: domain.SearchLocation{Latitude: &lat}, Guests: domain.DefaultGuestCount()},
		"no adults":      {Guests: domain.GuestCount{Children: 2}},
		"reversed dates": {Dates: domain.SearchDates{CheckIn: &in, CheckOut: &in}, Guests: domain.DefaultGuestCount()},
	}
	for name, d := range drafts {
		if _, err := uc.Save(context.Background(), visitorA, d); !errors.Is(err, domain.ErrInvalidSearchDraft) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestSearchDraft_StorageFailureIsAcknowledged(t *testing.T) {
	storage := newFakeStorage()
	storage.setErr = errors.New("quota exceeded")
	uc := NewSearchDraftUseCase(storage)

	if _, err := uc.Save(context.Background(), visitorA, domain.SearchDraft{Guests: domain.DefaultGuestCount()}); err != nil {
		t.Errorf("err = %v", err)
	}
	if storage.sets != 3 {
		t.Errorf("sets = %d", storage.sets)
	}
}

func TestTheme_DefaultsAndValidation(t *testing.T) {
	storage := newFakeStorage()
	uc := NewThemeUseCase(storage)
	ctx := context.Background()

	if got := uc.Get(ctx, visitorA); got != domain.ThemeLight {
		t.Errorf("default = %q", got)
	}
	if _, err := uc.Set(ctx, visitorA, "sepia"); !errors.Is(err, domain.ErrInvalidTheme) {
		t.Errorf("err = %v", err)
	}
	if _, err := uc.Set(ctx, visitorA, domain.ThemeDark); err != nil {
		t.Fatal(err)
	}
	if got := uc.Get(ctx, visitorA); got != domain.ThemeDark {
		t.Errorf("theme = %q", got)
	}

	storage.put(visitorB.String(), domain.KeyTheme, `"neon"`)
	if got := uc.Get(ctx, visitorB); got != domain.ThemeLight {
		t.Errorf("corrupt theme = %q", got)
	}
}
