package backend_api_client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"

	"github.com/google/uuid"
)

var (
	alice = uuid.MustParse("0c4e7d6a-2b1f-4a3e-8d5c-6f7a8b9c0d01")
	bob   = uuid.MustParse("0c4e7d6a-2b1f-4a3e-8d5c-6f7a8b9c0d02")
)

type fakeStorage struct {
	mu   sync.Mutex
	data map[string]string
	// getDelay растягивает окно между чтением и записью cookie
	getDelay time.Duration
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: make(map[string]string)}
}

func (f *fakeStorage) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	if f.getDelay > 0 {
		time.Sleep(f.getDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[namespace+"/"+key]
	return v, ok, nil
}

func (f *fakeStorage) Set(ctx context.Context, namespace, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[namespace+"/"+key] = value
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, namespace, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, namespace+"/"+key)
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fakeStorage) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	storage := newFakeStorage()
	client, err := NewClient(Config{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}, storage)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, storage
}

func visitorCtx(visitorID uuid.UUID) context.Context {
	return contextkeys.ContextWithVisitorID(context.Background(), visitorID)
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(Config{}, newFakeStorage()); err == nil {
		t.Error("expected error without base URL")
	}
	if _, err := NewClient(Config{BaseURL: "http://x"}, nil); err == nil {
		t.Error("expected error without storage")
	}
}

func TestClient_NonSuccessStatusIsError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"Database is down"}`))
	})

	resp, err := client.ListProperties(context.Background())
	if err == nil {
		t.Fatalf("expected error, got response %+v", resp)
	}
	var statusErr *domain.HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *domain.HTTPStatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError || statusErr.Message != "Database is down" {
		t.Errorf("unexpected error details: %+v", statusErr)
	}
}

func TestClient_BusinessFailureIsNotError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})

	resp, err := client.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "x", Role: "guest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != http.StatusOK || resp.Data.Success || resp.Data.Message != "Invalid credentials" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestClient_ForwardsTraceIDAndJSONHeaders(t *testing.T) {
	var gotTrace, gotContentType string
	var gotBody map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTrace = r.Header.Get("X-Trace-ID")
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"success":true}`))
	})

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-123")
	if _, err := client.VerifyOTP(ctx, "a@b.c", "123456"); err != nil {
		t.Fatal(err)
	}
	if gotTrace != "trace-123" {
		t.Errorf("X-Trace-ID = %q", gotTrace)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody["email"] != "a@b.c" || gotBody["otp"] != "123456" {
		t.Errorf("request body = %v", gotBody)
	}
}

func TestClient_PersistsAndResendsBackendCookiesPerVisitor(t *testing.T) {
	var seen []string
	client, storage := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("PHPSESSID"); err == nil {
			seen = append(seen, ck.Value)
		} else {
			seen = append(seen, "")
		}
		if r.URL.Path == "/auth/login.php" {
			http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "sess-1", Path: "/"})
		}
		if r.URL.Path == "/auth/logout.php" {
			http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "", MaxAge: -1})
		}
		w.Write([]byte(`{"success":true}`))
	})

	aliceCtx := visitorCtx(alice)
	bobCtx := visitorCtx(bob)

	if _, err := client.Login(aliceCtx, domain.Credentials{Email: "a@b.c", Role: "guest"}); err != nil {
		t.Fatal(err)
	}
	if _, err := client.ListWishlists(aliceCtx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.ListWishlists(bobCtx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Logout(aliceCtx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.ListWishlists(aliceCtx); err != nil {
		t.Fatal(err)
	}

	want := []string{"", "sess-1", "", "sess-1", ""}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Errorf("cookies seen by backend = %v, want %v", seen, want)
	}
	if _, found, _ := storage.Get(context.Background(), domain.VisitorNamespace(bob), domain.KeyBackendSession); found {
		t.Error("bob must not receive alice's session")
	}
}

func TestClient_ClearSession(t *testing.T) {
	client, storage := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "s"})
		w.Write([]byte(`{"success":true}`))
	})
	ctx := visitorCtx(alice)
	client.ListEvents(ctx)
	if _, found, _ := storage.Get(ctx, domain.VisitorNamespace(alice), domain.KeyBackendSession); !found {
		t.Fatal("expected cookies to be stored")
	}
	if err := client.ClearSession(ctx); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := storage.Get(ctx, domain.VisitorNamespace(alice), domain.KeyBackendSession); found {
		t.Error("cookies still stored after ClearSession")
	}
}

func TestClient_ConcurrentResponsesKeepAllCookies(t *testing.T) {
	var n atomic.Int32
	client, storage := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		name := "c" + strconv.Itoa(int(n.Add(1)))
		http.SetCookie(w, &http.Cookie{Name: name, Value: "1", Path: "/"})
		w.Write([]byte(`{"success":true}`))
	})
	storage.getDelay = 5 * time.Millisecond

	const requests = 8
	ctx := visitorCtx(alice)
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.ListEvents(ctx); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	raw, found, _ := storage.Get(ctx, domain.VisitorNamespace(alice), domain.KeyBackendSession)
	if !found {
		t.Fatal("no cookies stored")
	}
	var stored []storedCookie
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatal(err)
	}
	if len(stored) != requests {
		t.Errorf("stored %d cookies, want %d: %s", len(stored), requests, raw)
	}
}

func TestClient_DecodesLooseBackendTypes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "42" {
			t.Errorf("id query = %q", r.URL.Query().Get("id"))
		}
		w.Write([]byte(`{
			"success": "1",
			"property": {
				"id": 42, "host_id": "7", "title": "Loft",
				"price": "120.50", "max_guests": "4", "rating": 4.8,
				"location": {"city": "Lisbon", "latitude": "38.72", "longitude": -9.14},
				"reviews": [{"id": 1, "author": "Ann", "rating": "5", "created_at": "2024-03-01 10:00:00"}],
				"created_at": "2024-01-15"
			}
		}`))
	})

	resp, err := client.GetProperty(context.Background(), "42")
	if err != nil {
		t.Fatal(err)
	}
	p := resp.Data.Property
	if !resp.Data.Success || p == nil {
		t.Fatalf("unexpected response %+v", resp.Data)
	}
	if p.ID != "42" || p.HostID != "7" || p.PriceUSD != 120.5 || p.MaxGuests != 4 {
		t.Errorf("unexpected property %+v", p)
	}
	if p.Location.Latitude != 38.72 || len(p.Reviews) != 1 || p.Reviews[0].Rating != 5 {
		t.Errorf("unexpected nested fields %+v", p)
	}
	if p.CreatedAt.Year() != 2024 || p.Reviews[0].CreatedAt.Hour() != 10 {
		t.Errorf("dates not parsed: %v %v", p.CreatedAt, p.Reviews[0].CreatedAt)
	}
}

func TestClient_FilterPropertiesQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/properties/filter_properties.php" || q.Get("location") != "Paris" || q.Get("guests") != "3" || q.Get("max_price") != "200" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		if q.Has("min_price") {
			t.Error("zero min_price must not be sent")
		}
		w.Write([]byte(`{"success":true,"properties":[{"id":"1"},{"id":"2"}]}`))
	})

	resp, err := client.FilterProperties(context.Background(), domain.PropertyQuery{Location: " Paris ", Guests: 3, MaxPrice: 200})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Properties) != 2 {
		t.Errorf("got %d properties", len(resp.Data.Properties))
	}
}

func TestClient_SyncWishlistsNormalizesResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body syncWishlistsRequest
		json.NewDecoder(r.Body).Decode(&body)
		if len(body.Wishlists) != 1 || body.Wishlists[0].ListName != "Summer" {
			t.Errorf("unexpected sync body %+v", body)
		}
		w.Write([]byte(`{"success":true,"wishlists":[{"id":9,"list_name":"Summer","properties":[1,"1",2]}]}`))
	})

	resp, err := client.SyncWishlists(context.Background(), []domain.WishlistSyncItem{{ListName: "Summer", Properties: []string{"1", "2"}}})
	if err != nil {
		t.Fatal(err)
	}
	lists := resp.Data.Wishlists
	if len(lists) != 1 || lists[0].ID != "9" || len(lists[0].Properties) != 2 {
		t.Errorf("unexpected wishlists %+v", lists)
	}
}
