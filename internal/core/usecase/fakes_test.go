package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"rental-bff/internal/core/domain"

	"github.com/google/uuid"
)

var (
	visitorA       = uuid.MustParse("3b6f1e2a-8c1d-4f5e-9a0b-1c2d3e4f5a01")
	visitorB       = uuid.MustParse("3b6f1e2a-8c1d-4f5e-9a0b-1c2d3e4f5a02")
	unknownVisitor = uuid.MustParse("3b6f1e2a-8c1d-4f5e-9a0b-1c2d3e4f5aff")
)

// --- client storage ---

type fakeStorage struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
	sets   int
	// failSetAt > 0 роняет только запись с этим порядковым номером.
	failSetAt int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: make(map[string]string)}
}

func (f *fakeStorage) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[namespace+"/"+key]
	return v, ok, nil
}

func (f *fakeStorage) Set(ctx context.Context, namespace, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	if f.failSetAt > 0 && f.sets == f.failSetAt {
		return errors.New("storage unavailable")
	}
	f.data[namespace+"/"+key] = value
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, namespace, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, namespace+"/"+key)
	return nil
}

func (f *fakeStorage) put(namespace, key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[namespace+"/"+key] = value
}

func (f *fakeStorage) raw(namespace, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[namespace+"/"+key]
	return v, ok
}

// --- exchange rates ---

type fakeRatesProvider struct {
	table domain.ExchangeRateTable
	err   error
	calls int
}

func (f *fakeRatesProvider) FetchRates(ctx context.Context) (domain.ExchangeRateTable, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

// --- auth backend ---

type fakeAuthAPI struct {
	loginResult    domain.LoginResult
	loginErr       error
	registerResult domain.RegistrationResult
	verifyResult   domain.OTPVerification
	verifyErr      error
	resendResult   domain.BackendStatus
	resendErr      error
	completeResult domain.LoginResult
	logoutErr      error

	verifyCalls   int
	resendCalls   int
	completeCalls int
	lastCode      string
}

func (f *fakeAuthAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.Response[domain.LoginResult], error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &domain.Response[domain.LoginResult]{Status: 200, Data: f.loginResult}, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, reg domain.Registration) (*domain.Response[domain.RegistrationResult], error) {
	return &domain.Response[domain.RegistrationResult]{Status: 200, Data: f.registerResult}, nil
}

func (f *fakeAuthAPI) VerifyOTP(ctx context.Context, email, code string) (*domain.Response[domain.OTPVerification], error) {
	f.verifyCalls++
	f.lastCode = code
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &domain.Response[domain.OTPVerification]{Status: 200, Data: f.verifyResult}, nil
}

func (f *fakeAuthAPI) ResendOTP(ctx context.Context, email string) (*domain.Response[domain.BackendStatus], error) {
	f.resendCalls++
	if f.resendErr != nil {
		return nil, f.resendErr
	}
	return &domain.Response[domain.BackendStatus]{Status: 200, Data: f.resendResult}, nil
}

func (f *fakeAuthAPI) CompleteRegistration(ctx context.Context, email string, details domain.RegistrationDetails) (*domain.Response[domain.LoginResult], error) {
	f.completeCalls++
	return &domain.Response[domain.LoginResult]{Status: 200, Data: f.completeResult}, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) (*domain.Response[domain.BackendStatus], error) {
	if f.logoutErr != nil {
		return nil, f.logoutErr
	}
	return &domain.Response[domain.BackendStatus]{Status: 200, Data: domain.BackendStatus{Success: true}}, nil
}

type fakeBackendSession struct {
	cleared int
}

func (f *fakeBackendSession) ClearSession(ctx context.Context) error {
	f.cleared++
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(ctx context.Context, session domain.AuthSession, ttl time.Duration) (string, error) {
	return "token-" + session.UserID, nil
}

func (fakeTokens) ValidateToken(ctx context.Context, token string) (*domain.AuthSession, error) {
	if token == "token-1" {
		return &domain.AuthSession{UserID: "1", Role: domain.RoleGuest}, nil
	}
	return nil, domain.ErrNotAuthenticated
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, event domain.ActivityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeSyncer struct {
	calls     int
	forgotten []uuid.UUID
}

func (f *fakeSyncer) ForgetLocal(ctx context.Context, visitorID uuid.UUID) error {
	f.forgotten = append(f.forgotten, visitorID)
	return nil
}

func (f *fakeSyncer) Sync(ctx context.Context, v domain.Visitor) (domain.WishlistCollection, error) {
	f.calls++
	return nil, errors.New("backend unavailable")
}

// --- wishlists backend ---

type fakeWishlistAPI struct {
	lists    domain.WishlistCollection
	synced   []domain.WishlistSyncItem
	syncResp domain.WishlistCollection
	listErr  error
	nextID   int
}

func (f *fakeWishlistAPI) ListWishlists(ctx context.Context) (*domain.Response[domain.WishlistsPage], error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	copied := make(domain.WishlistCollection, len(f.lists))
	copy(copied, f.lists)
	return &domain.Response[domain.WishlistsPage]{Status: 200, Data: domain.WishlistsPage{
		BackendStatus: domain.BackendStatus{Success: true},
		Wishlists:     copied,
	}}, nil
}

func (f *fakeWishlistAPI) CreateWishlist(ctx context.Context, name string) (*domain.Response[domain.WishlistDetails], error) {
	f.nextID++
	w := domain.Wishlist{ID: "srv-" + string(rune('0'+f.nextID)), ListName: name, Properties: []string{}}
	f.lists = append(f.lists, w)
	return &domain.Response[domain.WishlistDetails]{Status: 200, Data: domain.WishlistDetails{
		BackendStatus: domain.BackendStatus{Success: true},
		Wishlist:      &w,
	}}, nil
}

func (f *fakeWishlistAPI) mutate(wishlistID string, fn func(w *domain.Wishlist)) (*domain.Response[domain.BackendStatus], error) {
	w := f.lists.Find(wishlistID)
	if w == nil {
		return &domain.Response[domain.BackendStatus]{Status: 200, Data: domain.BackendStatus{Message: "Wishlist not found"}}, nil
	}
	fn(w)
	return &domain.Response[domain.BackendStatus]{Status: 200, Data: domain.BackendStatus{Success: true}}, nil
}

func (f *fakeWishlistAPI) AddPropertyToWishlist(ctx context.Context, wishlistID, propertyID string) (*domain.Response[domain.BackendStatus], error) {
	return f.mutate(wishlistID, func(w *domain.Wishlist) { w.Add(propertyID) })
}

func (f *fakeWishlistAPI) RemovePropertyFromWishlist(ctx context.Context, wishlistID, propertyID string) (*domain.Response[domain.BackendStatus], error) {
	return f.mutate(wishlistID, func(w *domain.Wishlist) { w.Remove(propertyID) })
}

func (f *fakeWishlistAPI) DeleteWishlist(ctx context.Context, wishlistID string) (*domain.Response[domain.BackendStatus], error) {
	if !f.lists.Remove(wishlistID) {
		return &domain.Response[domain.BackendStatus]{Status: 200, Data: domain.BackendStatus{Message: "Wishlist not found"}}, nil
	}
	return &domain.Response[domain.BackendStatus]{Status: 200, Data: domain.BackendStatus{Success: true}}, nil
}

func (f *fakeWishlistAPI) SyncWishlists(ctx context.Context, items []domain.WishlistSyncItem) (*domain.Response[domain.WishlistsPage], error) {
	f.synced = items
	return &domain.Response[domain.WishlistsPage]{Status: 200, Data: domain.WishlistsPage{
		BackendStatus: domain.BackendStatus{Success: true},
		Wishlists:     f.syncResp,
	}}, nil
}

// --- properties backend ---

type fakePropertiesAPI struct {
	all         []domain.Property
	filtered    []domain.Property
	listCalls   int
	filterCalls int
}

func (f *fakePropertiesAPI) page(props []domain.Property) *domain.Response[domain.PropertiesPage] {
	copied := make([]domain.Property, len(props))
	copy(copied, props)
	return &domain.Response[domain.PropertiesPage]{Status: 200, Data: domain.PropertiesPage{
		BackendStatus: domain.BackendStatus{Success: true},
		Properties:    copied,
	}}
}

func (f *fakePropertiesAPI) ListProperties(ctx context.Context) (*domain.Response[domain.PropertiesPage], error) {
	f.listCalls++
	return f.page(f.all), nil
}

func (f *fakePropertiesAPI) FilterProperties(ctx context.Context, q domain.PropertyQuery) (*domain.Response[domain.PropertiesPage], error) {
	f.filterCalls++
	return f.page(f.filtered), nil
}

func (f *fakePropertiesAPI) GetProperty(ctx context.Context, propertyID string) (*domain.Response[domain.PropertyDetails], error) {
	for _, p := range f.all {
		if p.ID == propertyID {
			p := p
			return &domain.Response[domain.PropertyDetails]{Status: 200, Data: domain.PropertyDetails{
				BackendStatus: domain.BackendStatus{Success: true}, Property: &p,
			}}, nil
		}
	}
	return &domain.Response[domain.PropertyDetails]{Status: 200, Data: domain.PropertyDetails{}}, nil
}

func (f *fakePropertiesAPI) ListHostProperties(ctx context.Context, hostID string) (*domain.Response[domain.PropertiesPage], error) {
	var props []domain.Property
	for _, p := range f.all {
		if p.HostID == hostID {
			props = append(props, p)
		}
	}
	return f.page(props), nil
}

func (f *fakePropertiesAPI) ListRelevantProperties(ctx context.Context, propertyID string) (*domain.Response[domain.PropertiesPage], error) {
	return f.page(f.all), nil
}

func (f *fakePropertiesAPI) GetHost(ctx context.Context, hostID string) (*domain.Response[domain.HostDetails], error) {
	return &domain.Response[domain.HostDetails]{Status: 200, Data: domain.HostDetails{
		BackendStatus: domain.BackendStatus{Success: true}, Host: &domain.Host{ID: hostID, Name: "Host"},
	}}, nil
}

func (f *fakePropertiesAPI) ListEvents(ctx context.Context) (*domain.Response[domain.EventsPage], error) {
	return &domain.Response[domain.EventsPage]{Status: 200, Data: domain.EventsPage{BackendStatus: domain.BackendStatus{Success: true}}}, nil
}

// --- bookings backend ---

type fakeBookingAPI struct {
	createCalls int
	created     domain.BookingCreated
}

func (f *fakeBookingAPI) ListBookings(ctx context.Context) (*domain.Response[domain.BookingsPage], error) {
	return &domain.Response[domain.BookingsPage]{Status: 200, Data: domain.BookingsPage{BackendStatus: domain.BackendStatus{Success: true}}}, nil
}

func (f *fakeBookingAPI) GetBooking(ctx context.Context, bookingID string) (*domain.Response[domain.BookingDetails], error) {
	return &domain.Response[domain.BookingDetails]{Status: 200, Data: domain.BookingDetails{}}, nil
}

func (f *fakeBookingAPI) CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.Response[domain.BookingCreated], error) {
	f.createCalls++
	return &domain.Response[domain.BookingCreated]{Status: 200, Data: f.created}, nil
}

// fakeClock - управляемое время для таймеров.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
