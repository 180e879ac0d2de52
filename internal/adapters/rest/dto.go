package rest

import (
	"time"

	"rental-bff/internal/core/domain"
)

// dateLayout - формат дат в запросах и ответах (день без времени).
const dateLayout = "2006-01-02"

// --- currency ---

type SelectCurrencyRequest struct {
	Country  string `json:"country"`
	Currency string `json:"currency"`
}

type CurrencySelectionResponse struct {
	Country     string `json:"country"`
	Currency    string `json:"currency"`
	RatesStatus string `json:"rates_status"`
}

type RatesResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Status    string             `json:"status"`
	FetchedAt *time.Time         `json:"fetched_at,omitempty"`
}

type ConversionResponse struct {
	AmountUSD   float64 `json:"amount_usd"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Display     string  `json:"display"`
	RatesStatus string  `json:"rates_status"`
}

func toRatesResponse(v domain.RatesView) RatesResponse {
	resp := RatesResponse{Base: v.Base, Rates: v.Rates, Status: string(v.Status)}
	if resp.Rates == nil {
		resp.Rates = map[string]float64{}
	}
	if !v.FetchedAt.IsZero() {
		t := v.FetchedAt
		resp.FetchedAt = &t
	}
	return resp
}

func toConversionResponse(c domain.Conversion) ConversionResponse {
	return ConversionResponse{
		AmountUSD:   c.AmountUSD,
		Amount:      c.Amount,
		Currency:    c.Currency,
		Display:     c.Display,
		RatesStatus: string(c.RatesStatus),
	}
}

// --- preferences ---

type ThemeRequest struct {
	Theme string `json:"theme"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}

type SearchLocationDTO struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Geohash   string   `json:"geohash,omitempty"`
}

type GuestCountDTO struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
	Pets     int `json:"pets"`
}

type SearchDraftDTO struct {
	Location SearchLocationDTO `json:"location"`
	CheckIn  string            `json:"check_in,omitempty"`
	CheckOut string            `json:"check_out,omitempty"`
	Guests   *GuestCountDTO    `json:"guests,omitempty"`
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, domain.ErrInvalidSearchDraft
	}
	return &t, nil
}

func (d SearchDraftDTO) toDomain() (domain.SearchDraft, error) {
	checkIn, err := parseOptionalDate(d.CheckIn)
	if err != nil {
		return domain.SearchDraft{}, err
	}
	checkOut, err := parseOptionalDate(d.CheckOut)
	if err != nil {
		return domain.SearchDraft{}, err
	}
	guests := domain.DefaultGuestCount()
	if d.Guests != nil {
		guests = domain.GuestCount(*d.Guests)
	}
	return domain.SearchDraft{
		Location: domain.SearchLocation{
			Name:      d.Location.Name,
			Latitude:  d.Location.Latitude,
			Longitude: d.Location.Longitude,
		},
		Dates:  domain.SearchDates{CheckIn: checkIn, CheckOut: checkOut},
		Guests: guests,
	}, nil
}

func toSearchDraftDTO(d domain.SearchDraft) SearchDraftDTO {
	dto := SearchDraftDTO{
		Location: SearchLocationDTO{
			Name:      d.Location.Name,
			Latitude:  d.Location.Latitude,
			Longitude: d.Location.Longitude,
			Geohash:   d.Location.Geohash,
		},
	}
	if d.Dates.CheckIn != nil {
		dto.CheckIn = d.Dates.CheckIn.Format(dateLayout)
	}
	if d.Dates.CheckOut != nil {
		dto.CheckOut = d.Dates.CheckOut.Format(dateLayout)
	}
	g := GuestCountDTO(d.Guests)
	dto.Guests = &g
	return dto
}

// --- properties ---

type LocationResponse struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PoliciesResponse struct {
	CheckInTime  string   `json:"check_in_time"`
	CheckOutTime string   `json:"check_out_time"`
	Cancellation string   `json:"cancellation"`
	HouseRules   []string `json:"house_rules"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type PropertyResponse struct {
	ID        string             `json:"id"`
	HostID    string             `json:"host_id"`
	Title     string             `json:"title"`
	Images    []string           `json:"images"`
	PriceUSD  float64            `json:"price_usd"`
	Price     ConversionResponse `json:"price"`
	Location  LocationResponse   `json:"location"`
	Bedrooms  int                `json:"bedrooms"`
	Bathrooms int                `json:"bathrooms"`
	MaxGuests int                `json:"max_guests"`
	Amenities []string           `json:"amenities"`
	Policies  PoliciesResponse   `json:"policies"`
	Reviews   []ReviewResponse   `json:"reviews"`
	Rating    float64            `json:"rating"`
}

type PropertyListingResponse struct {
	Properties  []PropertyResponse `json:"properties"`
	Count       int                `json:"count"`
	Currency    string             `json:"currency"`
	RatesStatus string             `json:"rates_status"`
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toPropertyResponse(p domain.PricedProperty) PropertyResponse {
	reviews := make([]ReviewResponse, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews = append(reviews, ReviewResponse{ID: r.ID, Author: r.Author, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt})
	}
	return PropertyResponse{
		ID:       p.ID,
		HostID:   p.HostID,
		Title:    p.Title,
		Images:   nonNilStrings(p.Images),
		PriceUSD: p.PriceUSD,
		Price:    toConversionResponse(p.Price),
		Location: LocationResponse{
			Address:   p.Location.Address,
			City:      p.Location.City,
			Country:   p.Location.Country,
			Latitude:  p.Location.Latitude,
			Longitude: p.Location.Longitude,
		},
		Bedrooms:  p.Bedrooms,
		Bathrooms: p.Bathrooms,
		MaxGuests: p.MaxGuests,
		Amenities: nonNilStrings(p.Amenities),
		Policies: PoliciesResponse{
			CheckInTime:  p.Policies.CheckInTime,
			CheckOutTime: p.Policies.CheckOutTime,
			Cancellation: p.Policies.Cancellation,
			HouseRules:   nonNilStrings(p.Policies.HouseRules),
		},
		Reviews: reviews,
		Rating:  p.Rating,
	}
}

func toListingResponse(l *domain.PropertyListing) PropertyListingResponse {
	resp := PropertyListingResponse{
		Properties:  make([]PropertyResponse, len(l.Properties)),
		Count:       len(l.Properties),
		Currency:    l.Currency,
		RatesStatus: string(l.RatesStatus),
	}
	for i, p := range l.Properties {
		resp.Properties[i] = toPropertyResponse(p)
	}
	return resp
}

type HostResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url"`
	Bio          string    `json:"bio"`
	Superhost    bool      `json:"superhost"`
	ResponseRate float64   `json:"response_rate"`
	JoinedAt     time.Time `json:"joined_at"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url"`
	StartsAt    time.Time `json:"starts_at"`
}

// --- auth ---

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

type CompleteRegistrationRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
	Country   string `json:"country"`
}

type SessionResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      SessionResponse `json:"user"`
}

type OTPFlowResponse struct {
	Email             string    `json:"email"`
	State             string    `json:"state"`
	Code              string    `json:"code,omitempty"`
	Message           string    `json:"message,omitempty"`
	ResendAvailableAt time.Time `json:"resend_available_at"`
	ResendInSeconds   int       `json:"resend_in_seconds"`
	CanResend         bool      `json:"can_resend"`
	RequiresDetails   bool      `json:"requires_details"`
}

type RegistrationResponse struct {
	Email             string    `json:"email"`
	Message           string    `json:"message,omitempty"`
	ResendAvailableAt time.Time `json:"resend_available_at"`
}

type OTPSubmissionResponse struct {
	OTP  OTPFlowResponse `json:"otp"`
	Auth *AuthResponse   `json:"auth,omitempty"`
}

// OTPErrorResponse - отказ проверки кода вместе с текущим состоянием формы.
type OTPErrorResponse struct {
	Error string          `json:"error"`
	OTP   OTPFlowResponse `json:"otp"`
}

func toSessionResponse(s domain.AuthSession) SessionResponse {
	return SessionResponse{UserID: s.UserID, Name: s.Name, Email: s.Email, Role: s.Role}
}

func toAuthResponse(a *domain.AuthResult) *AuthResponse {
	if a == nil {
		return nil
	}
	return &AuthResponse{Token: a.Token, ExpiresAt: a.ExpiresAt, User: toSessionResponse(a.Session)}
}

func toOTPFlowResponse(f domain.OTPFlow, now time.Time) OTPFlowResponse {
	return OTPFlowResponse{
		Email:             f.Email,
		State:             string(f.State),
		Code:              f.Code,
		Message:           f.Message,
		ResendAvailableAt: f.ResendAvailableAt,
		ResendInSeconds:   domain.RemainingSeconds(f.ResendRemaining(now)),
		CanResend:         f.CanResend(now) && f.State != domain.OTPVerified,
		RequiresDetails:   f.RequiresDetails,
	}
}

// --- profile ---

type ProfileResponse struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    p.UserID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
		Bio:       p.Bio,
		Role:      p.Role,
	}
}

// --- wishlists ---

type CreateWishlistRequest struct {
	ListName string `json:"list_name"`
}

type PropertyRefRequest struct {
	PropertyID string `json:"property_id"`
}

type WishlistResponse struct {
	ID         string     `json:"id"`
	ListName   string     `json:"list_name"`
	Properties []string   `json:"properties"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

type WishlistToggleResponse struct {
	WishlistID string `json:"wishlist_id"`
	PropertyID string `json:"property_id"`
	Saved      bool   `json:"saved"`
}

type ContainsResponse struct {
	PropertyID string `json:"property_id"`
	Saved      bool   `json:"saved"`
}

func toWishlistResponse(w domain.Wishlist) WishlistResponse {
	resp := WishlistResponse{ID: w.ID, ListName: w.ListName, Properties: nonNilStrings(w.Properties)}
	if !w.CreatedAt.IsZero() {
		t := w.CreatedAt
		resp.CreatedAt = &t
	}
	return resp
}

func toWishlistsResponse(c domain.WishlistCollection) []WishlistResponse {
	resp := make([]WishlistResponse, 0, len(c))
	for _, w := range c {
		resp = append(resp, toWishlistResponse(w))
	}
	return resp
}

// --- bookings ---

type CreateBookingRequest struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	Message    string `json:"message"`
}

func (r CreateBookingRequest) toDomain() (domain.BookingRequest, error) {
	checkIn, err := time.Parse(dateLayout, r.CheckIn)
	if err != nil {
		return domain.BookingRequest{}, domain.ErrInvalidBooking
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOut)
	if err != nil {
		return domain.BookingRequest{}, domain.ErrInvalidBooking
	}
	return domain.BookingRequest{
		PropertyID: r.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     r.Guests,
		Message:    r.Message,
	}, nil
}

type BookingResponse struct {
	ID            string    `json:"id"`
	PropertyID    string    `json:"property_id"`
	PropertyTitle string    `json:"property_title"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Nights        int       `json:"nights"`
	Guests        int       `json:"guests"`
	TotalPriceUSD float64   `json:"total_price_usd"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingCreatedResponse struct {
	BookingID string `json:"booking_id"`
}

func toBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		PropertyID:    b.PropertyID,
		PropertyTitle: b.PropertyTitle,
		CheckIn:       b.CheckIn.Format(dateLayout),
		CheckOut:      b.CheckOut.Format(dateLayout),
		Nights:        b.Nights(),
		Guests:        b.Guests,
		TotalPriceUSD: b.TotalPriceUSD,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}
