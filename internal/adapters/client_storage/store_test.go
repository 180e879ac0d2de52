package client_storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rental-bff/internal/core/domain"

	"github.com/bradfitz/gomemcache/memcache"
)

type fakeMemcache struct {
	items  map[string][]byte
	setErr error
}

func newFakeMemcache() *fakeMemcache {
	return &fakeMemcache{items: make(map[string][]byte)}
}

func (f *fakeMemcache) Get(key string) (*memcache.Item, error) {
	v, ok := f.items[key]
	if !ok {
		return nil, memcache.ErrCacheMiss
	}
	return &memcache.Item{Key: key, Value: v}, nil
}

func (f *fakeMemcache) Set(item *memcache.Item) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.items[item.Key] = item.Value
	return nil
}

func (f *fakeMemcache) Delete(key string) error {
	if _, ok := f.items[key]; !ok {
		return memcache.ErrCacheMiss
	}
	delete(f.items, key)
	return nil
}

type store interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
}

func exerciseStore(t *testing.T, s store) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "v1", "wishlists"); err != nil || found {
		t.Fatalf("empty store: found=%v err=%v", found, err)
	}
	if err := s.Set(ctx, "v1", "wishlists", `[]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "v2", "wishlists", `[{"id":"x"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found, err := s.Get(ctx, "v1", "wishlists")
	if err != nil || !found || got != `[]` {
		t.Errorf("Get v1 = %q, %v, %v", got, found, err)
	}
	got, _, _ = s.Get(ctx, "v2", "wishlists")
	if got != `[{"id":"x"}]` {
		t.Errorf("namespaces must be isolated, got %q", got)
	}

	if err := s.Delete(ctx, "v1", "wishlists"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "v1", "wishlists"); err != nil {
		t.Errorf("deleting a missing key must not fail: %v", err)
	}
	if _, found, _ := s.Get(ctx, "v1", "wishlists"); found {
		t.Error("value still present after Delete")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(MemoryConfig{})
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStore_SharedNamespaceOutlivesVisitorEviction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(MemoryConfig{MaxEntries: 2, TTL: time.Millisecond})
	defer s.Close()

	rates := `{"base":"USD","rates":{"EUR":0.9}}`
	if err := s.Set(ctx, domain.SharedNamespace, domain.KeyExchangeRates, rates); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if err := s.Set(ctx, fmt.Sprintf("visitor-%d", i), domain.KeyTheme, `"dark"`); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(10 * time.Millisecond)

	got, found, err := s.Get(ctx, domain.SharedNamespace, domain.KeyExchangeRates)
	if err != nil || !found || got != rates {
		t.Fatalf("shared rates = %q, %v, %v", got, found, err)
	}
	if _, found, _ := s.Get(ctx, "visitor-9", domain.KeyTheme); found {
		t.Error("visitor entry must expire by TTL")
	}

	if err := s.Delete(ctx, domain.SharedNamespace, domain.KeyExchangeRates); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := s.Get(ctx, domain.SharedNamespace, domain.KeyExchangeRates); found {
		t.Error("shared entry still present after Delete")
	}
}

func TestMemcacheStore(t *testing.T) {
	s, err := NewMemcacheStore(newFakeMemcache(), "rental:")
	if err != nil {
		t.Fatal(err)
	}
	exerciseStore(t, s)
}

func TestMemcacheStore_SetFailureIsReported(t *testing.T) {
	fake := newFakeMemcache()
	fake.setErr = errors.New("server unavailable")
	s, _ := NewMemcacheStore(fake, "")
	if err := s.Set(context.Background(), "v1", "theme", `"dark"`); err == nil {
		t.Error("expected write error to be returned")
	}
}

func TestNewPostgresStore_NilPool(t *testing.T) {
	if _, err := NewPostgresStore(nil); err == nil {
		t.Error("expected error for nil pool")
	}
}
